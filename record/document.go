package record

import (
	"github.com/google/uuid"
)

// Document is the schemaless record used by the HTTP surface. The identifier
// lives in the "id" field, any other field is opaque application data.
type Document map[string]any

// NewDocument copies fields into a fresh document, assigning an identifier
// when the caller did not provide one.
func NewDocument(fields map[string]any) Document {
	d := Document{}
	for k, v := range fields {
		d[k] = v
	}
	if _, ok := d["id"]; !ok {
		d["id"] = uuid.New().String()
	}
	return d
}

// ID parses the "id" field. A missing or malformed value yields the zero
// uuid, which never matches a generated identifier.
func (d Document) ID() uuid.UUID {
	s, ok := d["id"].(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
