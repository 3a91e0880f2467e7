package formula

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		src    string
		tokens []token
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		// numbers
		{"0", []token{{text: "0", kind: tokenNum, pos: 1}}},
		{"9876543210", []token{{text: "9876543210", kind: tokenNum, num: 9876543210, pos: 1}}},
		{"1 0", []token{{text: "1", kind: tokenNum, num: 1, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}},
		{"1.5", []token{{text: "1.5", kind: tokenNum, num: 1.5, pos: 1}}},
		{"1.5e3", []token{{text: "1.5e3", kind: tokenNum, num: 1500, pos: 1}}},
		{".5", []token{{text: ".5", kind: tokenNum, num: 0.5, pos: 1}}},
		{"inf", []token{{text: "inf", kind: tokenNum, num: math.Inf(1), pos: 1}}},
		// no unary minus: - is always an operator token
		{"-1", []token{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, num: 1, pos: 2}}},
		// identifiers
		{"x", []token{{text: "x", kind: tokenIdent, pos: 1}}},
		{"rate", []token{{text: "rate", kind: tokenIdent, pos: 1}}},
		{"_x.y", []token{{text: "_x.y", kind: tokenIdent, pos: 1}}},
		// identifier shape is loose; only evaluation rejects the name
		{"a$", []token{{text: "a$", kind: tokenIdent, pos: 1}}},
		{".", []token{{text: ".", kind: tokenIdent, pos: 1}}},
		// operators and brackets
		{"1+2", []token{
			{text: "1", kind: tokenNum, num: 1, pos: 1},
			{text: "+", kind: tokenOp, pos: 2},
			{text: "2", kind: tokenNum, num: 2, pos: 3},
		}},
		{"1 % 2", []token{
			{text: "1", kind: tokenNum, num: 1, pos: 1},
			{text: "%", kind: tokenOp, pos: 3},
			{text: "2", kind: tokenNum, num: 2, pos: 5},
		}},
		{"2 * (x + 5)", []token{
			{text: "2", kind: tokenNum, num: 2, pos: 1},
			{text: "*", kind: tokenOp, pos: 3},
			{text: "(", kind: tokenOpen, pos: 5},
			{text: "x", kind: tokenIdent, pos: 6},
			{text: "+", kind: tokenOp, pos: 8},
			{text: "5", kind: tokenNum, num: 5, pos: 10},
			{text: ")", kind: tokenClose, pos: 11},
		}},
		// operators terminate the buffer without surrounding spaces
		{"x^2", []token{
			{text: "x", kind: tokenIdent, pos: 1},
			{text: "^", kind: tokenOp, pos: 2},
			{text: "2", kind: tokenNum, num: 2, pos: 3},
		}},
		// calls with separators
		{"pmt(0.05,10,1000)", []token{
			{text: "pmt", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenOpen, pos: 4},
			{text: "0.05", kind: tokenNum, num: 0.05, pos: 5},
			{text: ",", kind: tokenSep, pos: 9},
			{text: "10", kind: tokenNum, num: 10, pos: 10},
			{text: ",", kind: tokenSep, pos: 12},
			{text: "1000", kind: tokenNum, num: 1000, pos: 13},
			{text: ")", kind: tokenClose, pos: 17},
		}},
	}
	for _, c := range cases {
		got, err := tokenize(c.src)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
			continue
		}
		if len(got) != len(c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, got[i])
			}
		}
	}
}

func TestTokenizeMalformed(t *testing.T) {
	cases := []struct {
		src  string
		text string
		col  int
	}{
		{"1x", "1x", 1},
		{"1.2.3", "1.2.3", 1},
		{"4denium", "4denium", 1},
		{"a + 1b", "1b", 5},
		{"(2e)", "2e", 2},
	}
	for _, c := range cases {
		_, err := tokenize(c.src)
		if err == nil {
			t.Errorf("scanning %q: no error", c.src)
			continue
		}
		lerr := new(LexError)
		if !errors.As(err, &lerr) {
			t.Errorf("scanning %q: error %#v is not *LexError", c.src, err)
			continue
		}
		if lerr.Text != c.text {
			t.Errorf("scanning %q: want text %q, got %q", c.src, c.text, lerr.Text)
		}
		if lerr.Col != c.col {
			t.Errorf("scanning %q: want col %d, got %d", c.src, c.col, lerr.Col)
		}
	}
}

// TestTokenizeRoundTrip checks that re-tokenizing the space-joined token
// texts yields the same kinds and texts.
func TestTokenizeRoundTrip(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"2 * (x + 5)",
		"pmt(0.05, 10, 1000)",
		"sqrt(16) ^ 2 % 7",
		"fv(rate, nper, pay, pv)",
	}
	for _, src := range cases {
		first, err := tokenize(src)
		if err != nil {
			t.Fatalf("scanning %q: %v", src, err)
		}
		texts := make([]string, len(first))
		for i, tok := range first {
			texts[i] = tok.text
		}
		second, err := tokenize(strings.Join(texts, " "))
		if err != nil {
			t.Fatalf("rescanning %q: %v", src, err)
		}
		if len(first) != len(second) {
			t.Fatalf("rescanning %q: %d tokens, then %d", src, len(first), len(second))
		}
		for i := range first {
			if first[i].kind != second[i].kind || first[i].text != second[i].text {
				t.Errorf("rescanning %q: token %d: %v then %v", src, i, first[i], second[i])
			}
		}
	}
}
