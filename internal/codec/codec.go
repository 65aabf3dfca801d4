// Package codec encodes API responses in the format a client asks for.
//
// JSON is the default and the only format the endpoints promise. Clients
// may opt into YAML or CBOR with the Accept header.
package codec

import (
	"io"
	"mime"
	"sort"
	"strconv"
	"strings"
)

// Encoder writes a response body in one format
type Encoder interface {
	Encode(w io.Writer, v interface{}) error
	ContentType() string
	Format() string
}

// Negotiator picks an Encoder from an Accept header
type Negotiator struct {
	fallback Encoder
	byType   map[string]Encoder
}

// NewNegotiator creates a negotiator that falls back to the first encoder
func NewNegotiator(encoders ...Encoder) *Negotiator {
	n := &Negotiator{byType: make(map[string]Encoder)}
	for _, enc := range encoders {
		if n.fallback == nil {
			n.fallback = enc
		}
		n.byType[enc.ContentType()] = enc
	}
	return n
}

// Default returns a negotiator for JSON, YAML and CBOR, preferring JSON
func Default() *Negotiator {
	yaml := NewYAMLCodec()
	n := NewNegotiator(NewJSONCodec(), yaml, NewCBORCodec())
	n.byType["application/x-yaml"] = yaml
	n.byType["text/yaml"] = yaml
	return n
}

// Negotiate returns the best encoder for accept, or the fallback
func (n *Negotiator) Negotiate(accept string) Encoder {
	for _, mediaType := range parseAccept(accept) {
		if enc, ok := n.byType[mediaType]; ok {
			return enc
		}
		if mediaType == "*/*" || mediaType == "application/*" {
			return n.fallback
		}
	}
	return n.fallback
}

type acceptRange struct {
	mediaType string
	q         float64
	pos       int
}

// parseAccept returns the media ranges in accept ordered by preference.
// Ranges with q=0 are dropped; malformed ranges are ignored.
func parseAccept(accept string) []string {
	if strings.TrimSpace(accept) == "" {
		return nil
	}

	var ranges []acceptRange
	for i, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q, pos: i})
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].q > ranges[j].q
	})

	types := make([]string, len(ranges))
	for i, r := range ranges {
		types[i] = r.mediaType
	}
	return types
}
