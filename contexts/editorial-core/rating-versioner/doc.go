// Package ratingversioner keeps the append-only verdict chain for
// fact-checks: each rating assignment becomes a new immutable version, with
// exactly one current row per fact-check.
package ratingversioner
