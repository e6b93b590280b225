package jwt

// KeyUse is the JWK "use" parameter: whether a key is intended for
// signature/MAC operations or encryption.
type KeyUse string

const (
	KeyUseSig KeyUse = "sig"
	KeyUseEnc KeyUse = "enc"
)

// KeyOp is a single JWK "key_ops" entry.
type KeyOp string

const (
	KeyOpSign       KeyOp = "sign"
	KeyOpVerify     KeyOp = "verify"
	KeyOpEncrypt    KeyOp = "encrypt"
	KeyOpDecrypt    KeyOp = "decrypt"
	KeyOpWrapKey    KeyOp = "wrapKey"
	KeyOpUnwrapKey  KeyOp = "unwrapKey"
	KeyOpDeriveKey  KeyOp = "deriveKey"
	KeyOpDeriveBits KeyOp = "deriveBits"
)

func containsKeyOp(ops []KeyOp, want KeyOp) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}

	return false
}
