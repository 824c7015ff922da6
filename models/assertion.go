package models

// Attestation is the authenticator's answer to a "create" request: a freshly
// minted passkey registration. It is one arm of the authenticator result
// union (the other being [Assertion]); neither is ever persisted by this
// module — both live only for the duration of a single protocol run.
type Attestation struct {
	// CredentialID is the opaque identifier the authenticator assigned to
	// the new credential. Stable across all later assertions.
	CredentialID string `json:"credentialId"`

	// UserHandle is the byte sequence bound to the credential at creation.
	// It acts as the root secret for wrap-key derivation and never leaves
	// the client in the clear.
	UserHandle []byte `json:"userHandle"`

	// ClientData is the opaque client-data blob produced by the
	// authenticator. Carried for contract completeness; unused by the
	// envelope protocol.
	ClientData []byte `json:"clientData,omitempty"`
}

// Assertion is the authenticator's answer to a "get" request: proof of
// presence of a previously registered passkey.
type Assertion struct {
	// CredentialID identifies which registered credential produced the
	// assertion.
	CredentialID string `json:"credentialId"`

	// UserHandle is the handle bound to the credential at registration,
	// echoed back by the authenticator. The protocol treats this echoed
	// value as authoritative for wrap-key derivation.
	UserHandle []byte `json:"userHandle"`

	// Signature is the authenticator's signature over the supplied
	// challenge. Present only on login-type assertions.
	Signature []byte `json:"signature,omitempty"`

	// ClientData is the opaque client-data blob produced by the
	// authenticator.
	ClientData []byte `json:"clientData,omitempty"`
}
