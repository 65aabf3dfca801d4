package codec

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CBORCodec encodes responses as CBOR (RFC 8949)
type CBORCodec struct {
	em cbor.EncMode
}

// NewCBORCodec creates a CBOR codec that writes timestamps as RFC 3339
// text with nanoseconds, matching the JSON representation
func NewCBORCodec() *CBORCodec {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		// Only reachable with invalid static options
		panic(fmt.Sprintf("codec: cbor options: %v", err))
	}
	return &CBORCodec{em: em}
}

// Format returns the codec format identifier
func (c *CBORCodec) Format() string {
	return "cbor"
}

// ContentType returns the media type written by Encode
func (c *CBORCodec) ContentType() string {
	return "application/cbor"
}

// Encode writes v as a single CBOR data item
func (c *CBORCodec) Encode(w io.Writer, v interface{}) error {
	if err := c.em.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode CBOR: %w", err)
	}
	return nil
}
