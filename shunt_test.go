package formula

import (
	"errors"
	"strings"
	"testing"
)

// postfix is a test shortcut from source text to space-joined postfix order.
func postfix(t *testing.T, src string) (string, error) {
	t.Helper()
	toks, err := tokenize(src)
	if err != nil {
		t.Fatalf("scanning %q: %v", src, err)
	}
	rpn, err := toPostfix(toks, defaultFuncs)
	if err != nil {
		return "", err
	}
	texts := make([]string, len(rpn))
	for i, tok := range rpn {
		texts[i] = tok.text
	}
	return strings.Join(texts, " "), nil
}

func TestToPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "1", "1"},
		{"add", "1 + 2", "1 2 +"},
		{"prec", "1 + 2 * 3", "1 2 3 * +"},
		{"prec-rev", "1 * 2 + 3", "1 2 * 3 +"},
		{"parens", "(1 + 2) * 3", "1 2 + 3 *"},
		{"nested", "((1 + 2) * (3 - 4))", "1 2 + 3 4 - *"},
		{"same-prec", "1 - 2 - 3", "1 2 - 3 -"},
		{"mod", "1 % 2 + 3", "1 2 % 3 +"},
		// ^ pops on equal precedence like every other operator, so chains
		// associate left.
		{"pow-chain", "2 ^ 3 ^ 2", "2 3 ^ 2 ^"},
		{"pow-mul", "2 * 3 ^ 2", "2 3 2 ^ *"},
		{"var", "2 * (x + 5)", "2 x 5 + *"},
		{"call", "sqrt(16)", "16 sqrt"},
		{"call-bare", "sqrt 16", "16 sqrt"},
		{"call-bare-op", "sqrt 16 + 1", "16 sqrt 1 +"},
		{"call-nested", "sqrt(abs(0 - 16))", "0 16 - abs sqrt"},
		{"call-args", "pmt(0.05, 10, 1000)", "0.05 10 1000 pmt"},
		{"call-arg-exprs", "pmt(r / 12, n * 12, pv)", "r 12 / n 12 * pv pmt"},
		{"call-in-expr", "1 + sqrt(4) * 2", "1 4 sqrt 2 * +"},
		// unknown identifiers pass through as value references
		{"unknown", "f + 1", "f 1 +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rpn, err := postfix(t, c.src)
			if err != nil {
				t.Fatalf("converting %q: %v", c.src, err)
			}
			if rpn != c.rpn {
				t.Errorf("converting %q: want %q, got %q", c.src, c.rpn, rpn)
			}
		})
	}
}

func TestToPostfixUnbalanced(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		left  string
		right string
	}{
		{"open", "(1 + 2", "(", ""},
		{"open-nested", "((1 + 2)", "(", ""},
		{"close", "1 + 2)", "", ")"},
		{"close-empty", ")", "", ")"},
		{"call-open", "sqrt(16", "(", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := postfix(t, c.src)
			if err == nil {
				t.Fatalf("converting %q: no error", c.src)
			}
			berr := new(BracketError)
			if !errors.As(err, &berr) {
				t.Fatalf("converting %q: error %#v is not *BracketError", c.src, err)
			}
			if berr.Left != c.left || berr.Right != c.right {
				t.Errorf("converting %q: want paren %q%q, got %q%q", c.src, c.left, c.right, berr.Left, berr.Right)
			}
		})
	}
}

func TestToPostfixSeparator(t *testing.T) {
	for _, src := range []string{"1, 2", "1 + 2, 3"} {
		_, err := postfix(t, src)
		if err == nil {
			t.Fatalf("converting %q: no error", src)
		}
		serr := new(SeparatorError)
		if !errors.As(err, &serr) {
			t.Fatalf("converting %q: error %#v is not *SeparatorError", src, err)
		}
	}
}
