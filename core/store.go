package core

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type (
	// InsertResult is returned to clients after a document insert.
	InsertResult struct {
		Acknowledged bool        `json:"acknowledged"`
		InsertedID   interface{} `json:"insertedId"`
		Message      string      `json:"message,omitempty"`
	}

	UpdateResult struct {
		Acknowledged  bool        `json:"acknowledged"`
		MatchedCount  int64       `json:"matchedCount"`
		ModifiedCount int64       `json:"modifiedCount"`
		UpsertedCount int64       `json:"upsertedCount"`
		UpsertedID    interface{} `json:"upsertedId"`
	}

	DeleteResult struct {
		Acknowledged bool  `json:"acknowledged"`
		DeletedCount int64 `json:"deletedCount"`
	}
)

func NewInsertResult(id primitive.ObjectID) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: id}
}

// NewUpdateResult returns the result of a non-upserting update.
func NewUpdateResult(matched, modified int64) UpdateResult {
	return UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}
}

func NewDeleteResult(deleted int64) DeleteResult {
	return DeleteResult{Acknowledged: true, DeletedCount: deleted}
}

// ParseID decodes a hex document ID, reporting a malformed one against `field`.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(CleanString(hex))
	if err != nil {
		return primitive.NilObjectID, NewValidationError(nil, FieldError{Field: field, Error: field + " must be a valid id"})
	}
	return id, nil
}
