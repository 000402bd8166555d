package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned for ids that are not 24-char hex strings.
var ErrInvalidID = errors.New("invalid id")

// ParseID converts a hex id from a path or body into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// ParseIDs converts every hex id in ids. An empty input yields an empty,
// non-nil slice.
func ParseIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, hex := range ids {
		id, err := ParseID(hex)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
