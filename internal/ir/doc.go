// Package ir provides the canonical JSON encoding and content fingerprints
// used to tie generated artifacts to the port model they came from.
//
// ir imports nothing internal; ports builds on it, not the other way round.
//
// Key constraints:
//   - NO float types and no null
//   - object keys in RFC 8785 order, strings NFC normalized
//   - arrays keep their order; port order is part of the identity
package ir
