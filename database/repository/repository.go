package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Sentinel errors shared by the Mongo repositories. The service layer
// translates these into typed API errors; repositories never shape HTTP
// responses themselves.
var (
	// ErrNotFound signals that the referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidCursor signals that a startAfter cursor does not name an
	// existing document.
	ErrInvalidCursor = errors.New("invalid startAfter cursor")
)

// CursorFilter builds the filter continuing a descending (sortField, id)
// ordering after the given cursor document values. The id tiebreak keeps the
// ordering total when several documents share a sort key.
func CursorFilter(sortField string, sortValue interface{}, cursorID string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{sortField: bson.M{"$lt": sortValue}},
			bson.M{sortField: sortValue, "id": bson.M{"$lt": cursorID}},
		},
	}
}
