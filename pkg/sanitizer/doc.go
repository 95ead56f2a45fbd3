// Package sanitizer provides input normalization for user-facing fields.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// returning empty strings rather than errors.
package sanitizer
