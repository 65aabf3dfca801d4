package codec

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec encodes responses as JSON
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the media type written by Encode
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Encode writes v as a single line of JSON
func (c *JSONCodec) Encode(w io.Writer, v interface{}) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
