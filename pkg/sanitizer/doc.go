// Package sanitizer normalizes free-form input before it is validated or compared.
//
// Every function is idempotent and never fails: empty or whitespace-only input
// comes back as "".
package sanitizer
