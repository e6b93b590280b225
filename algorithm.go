package jwt

import "crypto"

// Family groups algorithms that share a signing primitive.
type Family int

const (
	FamilyHMAC Family = iota
	FamilyRSA
	FamilyRSAPSS
	FamilyEC
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSA:
		return "RSA"
	case FamilyRSAPSS:
		return "RSA-PSS"
	case FamilyEC:
		return "EC"
	default:
		return "unknown"
	}
}

// Algorithm is the closed set of twelve admissible JWS algorithms. There
// is deliberately no "none" variant and no way to construct one outside
// this set: the zero value is an invalid sentinel, not HS256, so a
// caller can never silently sign or accept with an unintended algorithm.
type Algorithm struct {
	name   string
	family Family
	hash   crypto.Hash
	curve  EcCurve // only meaningful when family == FamilyEC
}

// Name returns the JWA algorithm name ("HS256", "RS384", "ES512", ...).
func (a Algorithm) Name() string { return a.name }

// Family returns which signing primitive the algorithm belongs to.
func (a Algorithm) Family() Family { return a.family }

// Hash returns the SHA hash this algorithm uses.
func (a Algorithm) Hash() crypto.Hash { return a.hash }

// Curve returns the elliptic curve this algorithm signs over. It is only
// meaningful when Family() == FamilyEC; it returns the zero EcCurve
// otherwise.
func (a Algorithm) Curve() EcCurve { return a.curve }

// IsZero reports whether a is the invalid zero value rather than one of
// the twelve admissible algorithms.
func (a Algorithm) IsZero() bool { return a.name == "" }

var (
	HS256 = Algorithm{name: "HS256", family: FamilyHMAC, hash: crypto.SHA256}
	HS384 = Algorithm{name: "HS384", family: FamilyHMAC, hash: crypto.SHA384}
	HS512 = Algorithm{name: "HS512", family: FamilyHMAC, hash: crypto.SHA512}

	RS256 = Algorithm{name: "RS256", family: FamilyRSA, hash: crypto.SHA256}
	RS384 = Algorithm{name: "RS384", family: FamilyRSA, hash: crypto.SHA384}
	RS512 = Algorithm{name: "RS512", family: FamilyRSA, hash: crypto.SHA512}

	ES256 = Algorithm{name: "ES256", family: FamilyEC, hash: crypto.SHA256, curve: CurveP256}
	ES384 = Algorithm{name: "ES384", family: FamilyEC, hash: crypto.SHA384, curve: CurveP384}
	ES512 = Algorithm{name: "ES512", family: FamilyEC, hash: crypto.SHA512, curve: CurveP521}

	PS256 = Algorithm{name: "PS256", family: FamilyRSAPSS, hash: crypto.SHA256}
	PS384 = Algorithm{name: "PS384", family: FamilyRSAPSS, hash: crypto.SHA384}
	PS512 = Algorithm{name: "PS512", family: FamilyRSAPSS, hash: crypto.SHA512}
)

var allAlgorithms = []Algorithm{
	HS256, HS384, HS512,
	RS256, RS384, RS512,
	ES256, ES384, ES512,
	PS256, PS384, PS512,
}

// ParseAlgorithm maps a JWA algorithm name to its Algorithm value. It
// rejects "none" (case-insensitively, since RFC 7518 names are
// case-sensitive but a forged "None"/"NONE" header is exactly the kind
// of admission bypass this guards against) and any name outside the
// closed set of twelve.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range allAlgorithms {
		if a.name == name {
			return a, nil
		}
	}

	return Algorithm{}, malformed("unknown or unsupported algorithm %q", name)
}
