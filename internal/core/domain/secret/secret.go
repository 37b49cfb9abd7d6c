// Package secret provides a wrapper for sensitive configuration values whose
// default string conversions are redacted, so a secret can only leak through
// an explicit Expose call.
package secret

// String holds a sensitive value.
type String struct {
	value string
}

func New(value string) String {
	return String{value: value}
}

// Expose returns the raw value. Call sites are the audit surface for secret
// usage; keep them few.
func (s String) Expose() string {
	return s.value
}

func (s String) String() string {
	return "[REDACTED]"
}

func (s String) GoString() string {
	return `secret.String("[REDACTED]")`
}

func (s String) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}
