package jwt

import (
	"encoding/json"
)

// Audience is the "aud" claim: either a single string or a non-empty
// set of strings. NewAudienceMany collapses a length-one slice to the
// single-value form so that encode(decode(x)) == x regardless of which
// constructor path produced x.
type Audience struct {
	values []string
	multi  bool
}

// NewAudience builds a single-valued Audience.
func NewAudience(value string) Audience {
	return Audience{values: []string{value}, multi: false}
}

// NewAudienceMany builds an Audience from a non-empty sequence. A
// single-element slice collapses to the single-value form, matching the
// wire contract: a one-element array decodes as Single, not Many.
func NewAudienceMany(values []string) (Audience, error) {
	if len(values) == 0 {
		return Audience{}, malformed("audience must not be empty")
	}

	if len(values) == 1 {
		return NewAudience(values[0]), nil
	}

	cp := make([]string, len(values))
	copy(cp, values)

	return Audience{values: cp, multi: true}, nil
}

// Values returns the audience members, in order.
func (a Audience) Values() []string {
	return a.values
}

// IsMany reports whether the audience was constructed (or decoded) from
// a multi-element array, as opposed to a single string.
func (a Audience) IsMany() bool { return a.multi }

// Contains reports whether value is one of the audience's members.
func (a Audience) Contains(value string) bool {
	for _, v := range a.values {
		if v == value {
			return true
		}
	}

	return false
}

// MarshalJSON encodes a single-valued Audience as a bare string and a
// multi-valued Audience as a JSON array, per RFC 7519 §4.1.3.
func (a Audience) MarshalJSON() ([]byte, error) {
	if !a.multi {
		if len(a.values) == 0 {
			return []byte("null"), nil
		}

		return json.Marshal(a.values[0])
	}

	return json.Marshal(a.values)
}

// UnmarshalJSON accepts either a JSON string or a non-empty JSON array,
// collapsing a single-element array to the single-value form.
func (a *Audience) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = NewAudience(s)
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return malformed("aud must be a string or a non-empty array of strings")
	}

	aud, err := NewAudienceMany(arr)
	if err != nil {
		return err
	}

	*a = aud
	return nil
}
