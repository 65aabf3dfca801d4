package domain

// DefaultQuote is served by the quote endpoint unless configured otherwise
const DefaultQuote = "You can do it!"

// Quote is the response body of the quote endpoint
type Quote struct {
	Quote string `json:"quote" yaml:"quote" cbor:"quote"`
}

// NewQuote wraps text in a Quote, falling back to DefaultQuote when empty
func NewQuote(text string) Quote {
	if text == "" {
		text = DefaultQuote
	}
	return Quote{Quote: text}
}
