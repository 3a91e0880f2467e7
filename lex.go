package formula

import (
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	text string
	kind tokenKind
	num  float64
	pos  int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is a variable or function name. The tokenizer does not
	// decide which; that depends on the registry at evaluation time.
	tokenIdent
	// tokenOp is a single-character operator.
	tokenOp
	// tokenOpen and tokenClose are ( and ).
	tokenOpen
	tokenClose
	// tokenSep is the function argument separator, a comma.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "None"
	}
}

// Operators contains the characters which are considered to be operators.
const Operators = "+-*/^%"

// tokenize scans src into an ordered token sequence. It scans one rune at a
// time, accumulating a buffer: whitespace flushes the buffer, each operator,
// bracket, or separator flushes the buffer and then stands as its own token,
// and every other rune accumulates. A flushed buffer becomes a number token
// if it parses as a floating-point literal and an identifier token
// otherwise; a buffer that is neither a number nor identifier-shaped is a
// *LexError.
func tokenize(src string) ([]token, error) {
	var toks []token
	var buf strings.Builder
	col := 1
	start := 1
	flush := func() error {
		if buf.Len() == 0 {
			return nil
		}
		text := buf.String()
		buf.Reset()
		tok, err := classify(text, start)
		if err != nil {
			return err
		}
		toks = append(toks, tok)
		return nil
	}
	for _, r := range src {
		switch {
		case unicode.IsSpace(r):
			if err := flush(); err != nil {
				return nil, err
			}
		case r == '(':
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, token{text: "(", kind: tokenOpen, pos: col})
		case r == ')':
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, token{text: ")", kind: tokenClose, pos: col})
		case r == ',':
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, token{text: ",", kind: tokenSep, pos: col})
		case strings.ContainsRune(Operators, r):
			if err := flush(); err != nil {
				return nil, err
			}
			toks = append(toks, token{text: string(r), kind: tokenOp, pos: col})
		default:
			if buf.Len() == 0 {
				start = col
			}
			buf.WriteRune(r)
		}
		col++
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return toks, nil
}

// classify turns a flushed buffer into a number or identifier token.
func classify(text string, pos int) (token, error) {
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return token{text: text, kind: tokenNum, num: n, pos: pos}, nil
	}
	// An identifier may not begin with a digit; such a buffer would have
	// been a number if it were well formed.
	if r := text[0]; r < '0' || r > '9' {
		return token{text: text, kind: tokenIdent, pos: pos}, nil
	}
	return token{}, &LexError{Text: text, Col: pos}
}

// LexError indicates a fragment that is neither a number nor an identifier,
// such as "1x". It implements InputError.
type LexError struct {
	// Text is the unclassifiable fragment.
	Text string
	// Col is the rune column at which the fragment starts.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "malformed token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
