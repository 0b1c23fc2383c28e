// Package sanitizer provides input normalization for catalog data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings or empty slices rather than errors.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Labels: Lowercase after whitespace normalization - suite types and
//     season names compare case-insensitively
//   - Currencies: Uppercase 3-letter codes
//   - Slices: Remove duplicates and empty values after normalization
//   - Numbers: Clamp to valid ranges
package sanitizer
