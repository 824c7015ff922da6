package models

import "time"

// ContentItem describes one opaque content blob a subject stored on the
// server. The payload itself is client-encrypted with the envelope's content
// key; the server sees and records only its name and size.
type ContentItem struct {
	// Name is the caller-chosen identifier of the blob, unique per subject.
	Name string `json:"name"`

	// Size is the stored payload length in bytes (ciphertext size).
	Size int64 `json:"size"`

	// ModifiedAt is the timestamp of the last upload for this name.
	ModifiedAt time.Time `json:"modified_at,omitzero"`
}
