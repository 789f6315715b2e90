package db

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID converts an external identifier string (24 lowercase hex
// characters) to an ObjectID. Malformed input yields an error wrapping
// ErrInvalidID; storage is never touched. Every store operation that
// accepts an id from outside the core goes through this.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
