// Package convert provides some helpers for fast conversion between strings and bytes.
//
// Conversion operations are essentially unsafe and avoid the use of memcpy():
// the returned values share memory with their input and must be treated as read-only.
package convert
