// Package calc evaluates arithmetic expressions by rewriting text.
//
// An expression like "2 + 3*4" is never parsed into a tree. Instead, a
// sequence of operators each find the leftmost occurrence of their pattern,
// compute it, and splice the formatted result back into the string, until
// none remain:
//
//	2 + 3*4    multiplication: 3*4 -> +12
//	2 ++12     addition: 2 ++12 -> +14
//	+14        decode: 14
//
// The standard order is brackets, ^, /, *, -, +. Each operator runs to
// exhaustion before the next starts, and always rewrites the leftmost
// occurrence first, so chains like "8-3-2" and "2^3^2" group from the left.
// Bracketed groups are evaluated innermost first by a pipeline without the
// bracket operator.
//
// Intermediate results are rendered with ten decimal places, trailing zeros
// removed, so results carry that rounding. Numbers are float64: division by
// zero gives inf, and operations with no real result give NaN, neither of
// which is an error.
//
// Numbers may be signed, have a fraction and an exponent, or be inf or NaN. A
// sign directly attached to a number belongs to the number, so "-2^2" is 4.
package calc
