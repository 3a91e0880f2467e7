//go:build go1.18
// +build go1.18

package formula_test

import (
	"testing"

	"github.com/calclib/formula"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("2 * (x + 5)")
	f.Add("sqrt(16) ^ 2 % 7")
	f.Add("pmt(0.05, 10, 1000)")
	f.Add("((")
	f.Fuzz(func(t *testing.T, s string) {
		formula.Evaluate(s, map[string]float64{"x": 1})
	})
}
