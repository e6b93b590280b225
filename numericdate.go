package jwt

import (
	"encoding/json"
	"time"
)

// NumericDate is an RFC 7519 §2 epoch-seconds timestamp. It serialises
// as a bare JSON integer, never as an ISO-8601 string, and negative
// values (instants before 1970) are permitted on the wire like anywhere
// else in this package's claim handling.
type NumericDate struct {
	seconds int64
}

// NewNumericDate wraps a time.Time, truncating to whole seconds as
// RFC 7519 requires.
func NewNumericDate(t time.Time) NumericDate {
	return NumericDate{seconds: t.Unix()}
}

// NumericDateFromSeconds wraps a raw epoch-seconds value.
func NumericDateFromSeconds(seconds int64) NumericDate {
	return NumericDate{seconds: seconds}
}

// Time returns the wrapped instant in UTC.
func (d NumericDate) Time() time.Time {
	return time.Unix(d.seconds, 0).UTC()
}

// Seconds returns the raw epoch-seconds value.
func (d NumericDate) Seconds() int64 { return d.seconds }

// MarshalJSON encodes the timestamp as a JSON integer.
func (d NumericDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.seconds)
}

// UnmarshalJSON decodes a JSON integer into the timestamp.
func (d *NumericDate) UnmarshalJSON(data []byte) error {
	var seconds int64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return malformed("numeric date must be a JSON integer: %v", err)
	}

	d.seconds = seconds
	return nil
}
