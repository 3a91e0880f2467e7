package formula

import (
	"math"
	"strconv"
)

// Func describes a registered function: a fixed argument count and the body
// applied to the arguments. Arity is a registry property, not inferred from
// the body; the evaluator pops exactly Arity values per call.
type Func struct {
	// Arity is the number of arguments the function consumes.
	Arity int
	// Apply computes the result. It receives exactly Arity values in
	// left-to-right argument order.
	Apply func(args []float64) (float64, error)
}

// defaultFuncs is the function set preseeded into every registry.
//
// fv takes all four arguments every time. There is no optional trailing
// pv: a postfix evaluator pops a fixed count per call and cannot see how
// many arguments the call site wrote.
var defaultFuncs = map[string]Func{
	"sqrt":  Monadic("sqrt", math.Sqrt),
	"abs":   Monadic("abs", math.Abs),
	"round": Monadic("round", math.Round),
	"floor": Monadic("floor", math.Floor),
	"ceil":  Monadic("ceil", math.Ceil),
	"sin":   Monadic("sin", math.Sin),
	"cos":   Monadic("cos", math.Cos),
	"tan":   Monadic("tan", math.Tan),
	"log":   Monadic("log", math.Log),
	"exp":   Monadic("exp", math.Exp),
	"pmt":   {Arity: 3, Apply: pmt},
	"fv":    {Arity: 4, Apply: fv},
}

// Monadic wraps a function of one variable into a Func. If f maps a real
// argument to NaN, the argument was outside f's domain and the call reports
// a *DomainError naming the function.
func Monadic(name string, f func(float64) float64) Func {
	return Func{
		Arity: 1,
		Apply: func(args []float64) (float64, error) {
			r := f(args[0])
			if math.IsNaN(r) && !math.IsNaN(args[0]) {
				return 0, &DomainError{X: args[0], Func: name, Arg: 1}
			}
			return r, nil
		},
	}
}

// pmt computes the periodic payment on an annuity: pmt(rate, nper, pv).
func pmt(args []float64) (float64, error) {
	rate, nper, pv := args[0], args[1], args[2]
	if nper == 0 {
		return 0, &DomainError{X: nper, Func: "pmt", Arg: 2}
	}
	if rate == 0 {
		return pv / nper, nil
	}
	f := math.Pow(1+rate, -nper)
	r := pv * rate / (1 - f)
	if math.IsNaN(r) {
		return 0, &DomainError{X: rate, Func: "pmt", Arg: 1}
	}
	return r, nil
}

// fv computes the future value of an annuity: fv(rate, nper, pmt, pv).
// Like a spreadsheet FV, the result carries the opposite sign of the cash
// flows paid in.
func fv(args []float64) (float64, error) {
	rate, nper, pay, pv := args[0], args[1], args[2], args[3]
	if rate == 0 {
		return -(pv + pay*nper), nil
	}
	f := math.Pow(1+rate, nper)
	r := -(pv*f + pay*(f-1)/rate)
	if math.IsNaN(r) {
		return 0, &DomainError{X: rate, Func: "fv", Arg: 1}
	}
	return r, nil
}

// DomainError is an error returned when a function or operator is applied
// to arguments outside its domain, for example sqrt(-1) or a negative base
// raised to a fractional power.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument, or 0 for an operator's
	// left operand.
	Arg int
	// Func is the function or operator name.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
