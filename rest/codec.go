package rest

import (
	"encoding/json"
	"fmt"
)

// Serializer converts in-memory values to wire bytes and declares the
// content type of its output.
type Serializer interface {
	Serialize(v any) ([]byte, error)
	ContentType() string
}

// Deserializer converts wire bytes back into a typed value. It fails on
// malformed input; it never silently yields a zero value.
type Deserializer interface {
	Deserialize(data []byte, v any) error
}

// Codec combines both directions of the wire format.
type Codec interface {
	Serializer
	Deserializer
}

// JSONCodec is the default wire format. Absent fields are omitted from output
// through the payload types' omitempty tags.
type JSONCodec struct{}

var _ Codec = JSONCodec{}

// Serialize encodes v as JSON
func (JSONCodec) Serialize(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %T: %w", v, err)
	}
	return data, nil
}

// ContentType declares the media type of serialized output
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Deserialize decodes JSON into v, which must be a pointer
func (JSONCodec) Deserialize(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to deserialize %T: %w", v, err)
	}
	return nil
}
