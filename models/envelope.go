package models

// EnvelopePlain is the key bundle in the clear, as it exists on the client
// between generation and sealing (or between unsealing and use). All fields
// are base64 (std encoding) strings so the bundle serializes canonically.
//
// The sealed form of this bundle is User.EncryptedKeys; IV and Salt travel
// alongside the ciphertext in the clear and are repeated inside the bundle
// so an unsealed envelope is self-describing.
type EnvelopePlain struct {
	// ContentKey is the 256-bit symmetric key protecting the subject's
	// content. Random per registration.
	ContentKey string `json:"contentKey"`

	// PublicKey is the SPKI (PKIX DER) encoding of the signing public key.
	PublicKey string `json:"publicKey"`

	// PrivateKey is the PKCS#8 DER encoding of the signing private key.
	// Exists in the clear only inside an unsealed envelope.
	PrivateKey string `json:"privateKey"`

	// IV is the 12-byte AES-GCM nonce used to seal this envelope.
	IV string `json:"iv"`

	// Salt is the 16-byte KDF salt the wrap key was derived with.
	Salt string `json:"salt"`
}
