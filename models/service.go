package models

import "time"

// ServiceCategories is the closed set of categories a service may belong to.
var ServiceCategories = []string{
	"cleaning",
	"plumbing",
	"electrical",
	"carpentry",
	"painting",
	"landscaping",
	"hvac",
	"appliance-repair",
}

// IsValidCategory reports whether category belongs to the closed set.
func IsValidCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Service represents a provider-owned service listing.
type Service struct {
	ID            string    `bson:"id" json:"id"`
	ProviderID    string    `bson:"provider_id" json:"providerId"`
	ProviderName  string    `bson:"provider_name" json:"providerName"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	Category      string    `bson:"category" json:"category"`
	Price         float64   `bson:"price" json:"price"`
	RatingAverage float64   `bson:"rating_average" json:"ratingAverage"` // arithmetic mean of exactly ReviewsCount ratings
	ReviewsCount  int       `bson:"reviews_count" json:"reviewsCount"`
	IsActive      bool      `bson:"is_active" json:"isActive"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// ServiceInput holds the provider-suppliable fields for service creation.
type ServiceInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// ServiceUpdate is the explicit allowlist of updatable fields. Anything not
// representable here (ratingAverage, reviewsCount, providerId, createdAt) is
// a protected field and must be rejected, not silently dropped.
type ServiceUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// ServiceListFilter carries catalog list filters.
type ServiceListFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	OrderBy  string // "createdAt" or "ratingAverage"
}

// DeleteResult reports how a service delete was carried out.
type DeleteResult struct {
	Deleted     bool   `json:"deleted"`
	SoftDeleted bool   `json:"softDeleted"`
	Message     string `json:"message"`
}
