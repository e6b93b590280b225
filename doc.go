// Package jwt issues and validates JWS-signed JSON Web Tokens (RFC 7515,
// RFC 7519) against keys published as JSON Web Keys and JWK Sets
// (RFC 7517, RFC 7518), and can transparently rotate a remote JWKS over
// HTTP.
//
// The package is split along six seams: primitive opaque types and a
// closed error taxonomy (this file's neighbours), a JWK model, a
// signature engine, a JWK-to-native-key bridge, a key store/resolver and
// its JWKS refresh engine, and finally the token processor (Validator)
// and token issuer (Issuer) that sit on top of all of the above.
//
// There is no support for the "none" algorithm, for key types outside
// {EC P-256/384/521, RSA >= 2048-bit, oct/HMAC}, for nested JWTs, or for
// encrypted JWTs (JWE). This is a library: it has no CLI surface and the
// HTTP middleware that would sit in front of it is an external
// collaborator and is not included in this repository.
package jwt
