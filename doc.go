// Package symdiff differentiates informally written expressions in x and y.
//
// Input is what a person types: implicit products (2x, x(x+1)), function
// application without brackets (sinx, sin2x), caret powers (x^2) and informal
// function names (ln, tg, sh, arctg, e^x). The pipeline normalises that text
// into a strict expression, validates it with positions that point into the
// original input, computes the total derivative as the sum of the partials by
// every variable present, and renders it back in the same informal notation.
//
// The package is pure: it does no I/O and keeps no mutable state. Symbolic
// work is delegated to an Engine, by default the algebra package.
package symdiff
