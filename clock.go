package jwt

import "time"

// Clock is the current-time function used by the validator's temporal
// claim checks and the refresh engine's rate limiter. Tests override it
// to avoid real sleeps; production code leaves it at the default.
var Clock = time.Now
