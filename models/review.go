package models

import "time"

// Review is an immutable rating tied to a completed booking. At most one
// review exists per booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"bookingId"`
	ServiceID  string    `bson:"service_id" json:"serviceId"`
	ProviderID string    `bson:"provider_id" json:"providerId"`
	ClientID   string    `bson:"client_id" json:"clientId"`
	ClientName string    `bson:"client_name" json:"clientName"`
	Rating     int       `bson:"rating" json:"rating"` // integer 1..5
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// ReviewInput holds the client-suppliable fields for review creation.
type ReviewInput struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// CreatedReview is the review creation result, including the service rating
// average computed inside the same transaction.
type CreatedReview struct {
	Review
	RatingAverage float64 `json:"ratingAverage"`
}

// NewRatingAverage folds one more rating into a running (average, count)
// pair, keeping the average the exact arithmetic mean of count+1 ratings.
func NewRatingAverage(oldAverage float64, oldCount, rating int) float64 {
	return (oldAverage*float64(oldCount) + float64(rating)) / float64(oldCount+1)
}
