// Package formula implements a float64 formula calculator.
//
// A formula is a single arithmetic expression over the operators
// + - * / ^ % with parentheses, named variables, and named functions, e.g.
// "2 * (x + 5)" or "pmt(rate, nper, sqrt(pv))". Evaluate tokenizes the
// formula, reorders it into postfix form with a shunting-yard pass, and
// reduces the postfix sequence on an operand stack. Every operator,
// including ^, associates to the left, so "2 ^ 3 ^ 2" is (2^3)^2 = 64.
//
// Variables let you parse a formula once and evaluate it for many inputs;
// bindings are an ordinary map passed to each evaluation, so the same
// parsed formula is safe to share between goroutines.
package formula
