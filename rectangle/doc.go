// Package rectangle defines the normalized Latin rectangle data model
// (spec.md §3): the Rectangle type itself, its Sign, the Uint128
// fixed-width accumulator used on the enumeration hot path, and the
// CountResult type returned across the public dispatch API.
package rectangle
