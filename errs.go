package formula

import "strconv"

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is "(" when an open parenthesis was never closed.
	Left string
	// Right is ")" when a close parenthesis had no open parenthesis.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close paren "+err.Right+" with no open paren")
	}
	return errpos(err.Col, "open paren "+err.Left+" with no close paren")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// UnknownIdentifierError is an error from strict evaluation for a name that
// is neither a bound variable nor a registered function. It implements
// InputError.
type UnknownIdentifierError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the unknown identifier.
	Name string
}

func (err *UnknownIdentifierError) Error() string {
	return errpos(err.Col, "unknown identifier "+strconv.Quote(err.Name))
}

func (err *UnknownIdentifierError) Pos() int {
	return err.Col
}

// UnderflowError is an error indicating that an operator or function found
// fewer operands on the stack than it consumes. A clean conversion never
// produces such a sequence; the error is surfaced rather than asserted. It
// implements InputError.
type UnderflowError struct {
	// Col is the position of the operator or function.
	Col int
	// Tok is the operator or function name.
	Tok string
	// Want and Have are the operand counts needed and available.
	Want, Have int
}

func (err *UnderflowError) Error() string {
	return errpos(err.Col, err.Tok+" needs "+strconv.Itoa(err.Want)+" operands but has "+strconv.Itoa(err.Have))
}

func (err *UnderflowError) Pos() int {
	return err.Col
}

// MalformedExpressionError is an error indicating an empty formula, or a
// formula that reduced to more than one value, such as "1 2".
type MalformedExpressionError struct {
	// Rest is the number of values left after reduction; zero means the
	// formula was empty.
	Rest int
}

func (err *MalformedExpressionError) Error() string {
	if err.Rest == 0 {
		return "empty formula"
	}
	return strconv.Itoa(err.Rest) + " values left after evaluation"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors that can be
// traced to a token in the formula implement InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of
	// the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*UnknownIdentifierError)(nil)
	_ InputError = (*UnderflowError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
)
