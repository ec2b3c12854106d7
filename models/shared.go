package models

// GeoPoint is a plain latitude/longitude pair used for client and provider
// locations on bookings.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Pagination limits shared by every list operation.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageOptions carries cursor pagination parameters. StartAfter is the ID of
// the last item of the previous page, or empty for the first page.
type PageOptions struct {
	Limit      int
	StartAfter string
}

// Normalized applies the default limit and reports whether the limit is
// within the accepted 1..100 range.
func (p PageOptions) Normalized() (PageOptions, bool) {
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return p, false
	}
	return p, true
}

// Pagination describes the page boundary returned alongside list results.
type Pagination struct {
	Limit              int    `json:"limit"`
	HasMore            bool   `json:"hasMore"`
	NextPageStartAfter string `json:"nextPageStartAfter,omitempty"`
}
