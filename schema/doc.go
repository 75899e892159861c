// Package schema defines the raw JSON shape of ingested catalog records.
//
// Decoding is strict: unknown fields are rejected by the codec, and Validate
// reports missing required fields. Numeric fields that the upstream API
// serializes inconsistently accept either a JSON number or a numeric string.
package schema
