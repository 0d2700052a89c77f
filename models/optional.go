package models

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OptionalID is a tri-state reference field in a JSON patch body:
// absent (leave unchanged), null (clear), or a hex object id (set).
type OptionalID struct {
	Present bool
	Clear   bool
	ID      primitive.ObjectID
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Clear = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("reference must be an id string or null")
	}
	if s == "" {
		return errors.New("reference must not be empty; send null to clear it")
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return errors.New("reference is not a valid id")
	}
	o.ID = id
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Clear {
		return []byte("null"), nil
	}
	return json.Marshal(o.ID.Hex())
}

// Set reports whether the field carries a new value.
func (o OptionalID) Set() bool { return o.Present && !o.Clear }
