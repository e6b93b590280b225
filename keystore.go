package jwt

import "context"

// KeyStore is a source of JWKs. Its single operation, Keys, is
// infallible at this interface: failure modes (a dead remote fetch, a
// stale-but-retained set) live inside whichever implementation backs
// it — see the JWKS refresh engine (jwks_refresh.go) for the one
// implementation whose Keys can suspend the caller.
type KeyStore interface {
	Keys(ctx context.Context) []Jwk
}

// StaticKeyStore is a KeyStore over a fixed sequence, returned
// unchanged on every call.
type StaticKeyStore struct {
	keys []Jwk
}

// NewStaticKeyStore wraps a fixed key sequence.
func NewStaticKeyStore(keys []Jwk) *StaticKeyStore {
	cp := make([]Jwk, len(keys))
	copy(cp, keys)
	return &StaticKeyStore{keys: cp}
}

// Keys returns the fixed sequence this store was constructed with.
func (s *StaticKeyStore) Keys(context.Context) []Jwk {
	return s.keys
}

// NewKeyRegistry builds a StaticKeyStore from a map of kid to Jwk, for
// callers who already manage keys by id rather than by a JWKS document.
// Each Jwk's Kid is set to its map key so resolution by "kid" works
// regardless of what (if anything) the caller had set there already.
func NewKeyRegistry(byKid map[Kid]Jwk) *StaticKeyStore {
	keys := make([]Jwk, 0, len(byKid))
	for kid, j := range byKid {
		k := kid
		j.Kid = &k
		keys = append(keys, j)
	}

	return NewStaticKeyStore(keys)
}

// suitabilityPredicate is the §4.2 suitability check: verification or
// signing, parameterised by which Jwk.KeyOps value the selected key
// must permit when KeyOps is set at all.
type suitabilityPredicate func(Jwk, Algorithm) bool

// resolveKey implements the §4.5 resolution algorithm against a fixed
// key sequence: filter by suitability, then narrow by kid (if present)
// or by uniqueness (if absent).
func resolveKey(keys []Jwk, header JoseHeader, predicate suitabilityPredicate) (Jwk, error) {
	var candidates []Jwk
	for _, k := range keys {
		if predicate(k, header.Alg) {
			candidates = append(candidates, k)
		}
	}

	if header.Kid != nil {
		var matches []Jwk
		for _, k := range candidates {
			if k.Kid != nil && *k.Kid == *header.Kid {
				matches = append(matches, k)
			}
		}

		if len(matches) != 1 {
			return Jwk{}, &KeyNotFoundError{Kid: string(*header.Kid)}
		}

		return matches[0], nil
	}

	if len(candidates) != 1 {
		return Jwk{}, &KeyNotFoundError{}
	}

	return candidates[0], nil
}

// ResolveVerificationKey selects the single suitable Jwk for verifying a
// token with the given header, then converts it to the native key kind
// the header's algorithm family requires (symmetric for HMAC, public
// otherwise).
func ResolveVerificationKey(ctx context.Context, store KeyStore, header JoseHeader) (PublicKey, error) {
	j, err := resolveKey(store.Keys(ctx), header, suitableForVerification)
	if err != nil {
		return nil, err
	}

	if header.Alg.Family() == FamilyHMAC {
		key, _, err := JwkToSymmetricKey(j)
		if err != nil {
			return nil, err
		}
		return key, nil
	}

	return JwkToPublicKey(j)
}

// ResolveSigningKey selects the single suitable Jwk for signing with the
// given algorithm and, when kid is non-nil, that exact kid (no other key
// is considered in that case), then converts it to the
// native key kind the algorithm family requires.
func ResolveSigningKey(ctx context.Context, store KeyStore, alg Algorithm, kid *Kid) (PrivateKey, error) {
	header := JoseHeader{Alg: alg, Kid: kid}

	j, err := resolveKey(store.Keys(ctx), header, suitableForSigning)
	if err != nil {
		return nil, err
	}

	if alg.Family() == FamilyHMAC {
		key, _, err := JwkToSymmetricKey(j)
		if err != nil {
			return nil, err
		}
		return key, nil
	}

	return JwkToPrivateKey(j)
}
