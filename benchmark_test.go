package jwt

import (
	"context"
	"testing"
)

func BenchmarkSign(b *testing.B) {
	secret := []byte("sercrethatmaycontainch@r$32chars")

	data := []byte("eyJhbGciOiJIUzI1NiJ9.eyJmb28iOiJiYXIifQ")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Sign(data, secret, HS256); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	secret := []byte("sercrethatmaycontainch@r$32chars")
	data := []byte("eyJhbGciOiJIUzI1NiJ9.eyJmb28iOiJiYXIifQ")

	sig, err := Sign(data, secret, HS256)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := Verify(data, sig, secret, HS256); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIssue(b *testing.B) {
	kid := Kid("bench")
	store := hmacStoreForBench([]byte("sercrethatmaycontainch@r$32chars"), "bench")
	issuer := NewIssuer[customClaims](IssuerConfig{KeyStore: store, Algorithm: HS256, Kid: &kid})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := issuer.Issue(context.Background(), customClaims{Scope: "bar"}, RegisteredClaims{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	kid := Kid("bench")
	store := hmacStoreForBench([]byte("sercrethatmaycontainch@r$32chars"), "bench")
	issuer := NewIssuer[customClaims](IssuerConfig{KeyStore: store, Algorithm: HS256, Kid: &kid})

	token, err := issuer.Issue(context.Background(), customClaims{Scope: "bar"}, RegisteredClaims{})
	if err != nil {
		b.Fatal(err)
	}

	validator := NewValidator[customClaims](ValidatorConfig{KeyStore: store, AllowedAlgorithms: []Algorithm{HS256}})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := validator.Validate(context.Background(), token.String()); err != nil {
			b.Fatal(err)
		}
	}
}

func hmacStoreForBench(secret []byte, kid string) KeyStore {
	k := Kid(kid)
	return NewStaticKeyStore([]Jwk{SymmetricKeyToJwk(secret, &k, &HS256)})
}
