package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusDeclined  BookingStatus = "DECLINED"
)

// allowedTransitions is the full transition table. Terminal states map to an
// empty set.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusAccepted, StatusCancelled, StatusDeclined},
	StatusAccepted:  {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusDeclined:  {},
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s BookingStatus) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// IsActive reports whether a booking in this status occupies its slot.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

// CanTransitionTo reports whether the transition s -> to is allowed.
func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses lists the statuses that occupy a service/time slot.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusAccepted}
}

// Urgency levels for a booking. STANDARD is the default.
const (
	UrgencyLow       = "LOW"
	UrgencyStandard  = "STANDARD"
	UrgencyHigh      = "HIGH"
	UrgencyEmergency = "EMERGENCY"
)

// IsValidUrgency reports whether u is a known urgency level.
func IsValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyStandard, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// Booking is an append-only record of a client booking a service. The service
// title and price are snapshots taken at creation time.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	ClientID         string        `bson:"client_id" json:"clientId"`
	ClientName       string        `bson:"client_name" json:"clientName"`
	ProviderID       string        `bson:"provider_id" json:"providerId"`
	ServiceID        string        `bson:"service_id" json:"serviceId"`
	ServiceTitle     string        `bson:"service_title" json:"serviceTitle"`
	ServicePrice     float64       `bson:"service_price" json:"servicePrice"`
	Status           BookingStatus `bson:"status" json:"status"`
	ScheduledDate    time.Time     `bson:"scheduled_date" json:"scheduledDate"`
	ClientLocation   *GeoPoint     `bson:"client_location,omitempty" json:"clientLocation,omitempty"`
	ProviderLocation *GeoPoint     `bson:"provider_location,omitempty" json:"providerLocation,omitempty"`
	Urgency          string        `bson:"urgency" json:"urgency"`
	Description      string        `bson:"description" json:"description"`
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updatedAt"`
}

// BookingInput holds the client-suppliable fields for booking creation.
type BookingInput struct {
	ServiceID      string    `json:"serviceId"`
	ScheduledDate  string    `json:"scheduledDate"`
	ClientLocation *GeoPoint `json:"clientLocation,omitempty"`
	Urgency        string    `json:"urgency,omitempty"`
	Description    string    `json:"description,omitempty"`
}
