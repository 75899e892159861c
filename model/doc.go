// Package model defines the compact record types held by a catalog store.
//
// # Identity Types
//
//   - GID: 64-bit gallery identifier, the key of the record map
//   - OptionalGID: GID that may be absent (current, first, parent)
//
// # Record Types
//
//   - Record: one catalog entry; strings and sub-lists are arena handles
//   - Tag: dictionary id of a tag value plus its Namespace
//   - Torrent: one file-transfer descriptor
//
// # Enumerations
//
// Category and Namespace are closed enumerations parsed from fixed string
// tables. Unknown input is an error, never a fallback value.
package model
