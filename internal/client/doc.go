// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive client application runtime.
//
// It drives the client services from a line-based command loop: one process
// holds the software authenticator, the unsealed key envelope, and the server
// session for the lifetime of the loop, so register, login, and content
// commands all operate on the same in-memory state.
package client
