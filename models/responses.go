package models

// APIResponse is the uniform JSON body for status-only answers and errors.
// Success responses that carry data use dedicated response types instead.
type APIResponse struct {
	// Success reports whether the request achieved its intended effect.
	Success bool `json:"success"`

	// Message is a short human-readable description. For failures it is an
	// actionable but non-leaky summary ("Permission denied"), never the
	// underlying cause chain.
	Message string `json:"message,omitempty"`
}

// UserKeys is the public portion of a credential record a client needs to
// run the login protocol: the sealed envelope plus its cleartext sealing
// parameters.
type UserKeys struct {
	// Keys is the base64 sealed envelope (User.EncryptedKeys).
	Keys string `json:"keys"`

	// Salt is the base64 KDF salt the wrap key must be derived with.
	Salt string `json:"salt"`

	// IV is the base64 AES-GCM nonce the envelope was sealed under.
	IV string `json:"iv"`
}

// UserResponse is the body of GET /v1/user.
type UserResponse struct {
	User UserKeys `json:"user"`
}

// ContentListResponse is the body of GET /v1/content: every blob the
// authenticated subject has stored, plus a convenience count.
type ContentListResponse struct {
	Items []ContentItem `json:"items"`

	// Length is the total number of entries in Items. Provided so the
	// client can pre-allocate or validate without iterating the slice.
	Length int `json:"length"`
}
