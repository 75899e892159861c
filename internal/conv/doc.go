// Package conv provides checked integer conversions for arena offsets and
// lengths, which are stored as uint32.
package conv
