package database

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document ids are opaque, store-assigned values. Outside this package they
// travel exclusively in their external form: the stable 24-character hex
// encoding. Session state, URLs and rosters hold the external form and
// compare ids as strings.

// ExternalID renders a document id in its external form.
func ExternalID(id primitive.ObjectID) string {
	return id.Hex()
}

// ParseID converts an external id back to its document form, failing with
// ErrInvalidID on anything that is not a well-formed encoding. Repositories
// call this on every boundary id, so a malformed string never reaches a
// store lookup.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
