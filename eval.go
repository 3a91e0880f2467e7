package formula

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Registry is the table of named functions a formula may call. A Registry
// is safe for any number of concurrent Evaluate and Parse calls, provided
// Register is not called concurrently with them; build the registry first,
// then share it.
type Registry struct {
	funcs  map[string]Func
	strict bool
}

// NewRegistry creates a registry preseeded with the default function set:
// sqrt, abs, round, floor, ceil, sin, cos, tan, log, exp, pmt, and fv.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{funcs: make(map[string]Func, len(defaultFuncs))}
	// Seeding must happen before any WithFunc overwrites, so scan for
	// WithoutDefaults up front.
	seed := true
	for _, opt := range opts {
		if _, ok := opt.(nodefaultsopt); ok {
			seed = false
			break
		}
	}
	if seed {
		for k, v := range defaultFuncs {
			r.funcs[k] = v
		}
	}
	for _, opt := range opts {
		opt.registryOption(r)
	}
	return r
}

// Register adds or overwrites a function. The evaluator pops exactly arity
// operands for each call of name. Register must not be called concurrently
// with Evaluate or Parse on the same registry.
func (r *Registry) Register(name string, arity int, apply func(args []float64) (float64, error)) {
	r.funcs[name] = Func{Arity: arity, Apply: apply}
}

// Func returns the registered function with the given name.
func (r *Registry) Func(name string) (Func, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Parse tokenizes a formula and reorders it into postfix form. The result
// depends only on the formula and the registry's function names, never on
// variable bindings, so one parsed formula may be evaluated against many
// binding sets, concurrently if desired.
func (r *Registry) Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	rpn, err := toPostfix(toks, r.funcs)
	if err != nil {
		return nil, err
	}
	return &Expr{rpn: rpn, funcs: r.funcs, strict: r.strict}, nil
}

// Evaluate parses a formula and evaluates it with the given variable
// bindings. vars may be nil for a formula with no variables.
func (r *Registry) Evaluate(src string, vars map[string]float64) (float64, error) {
	e, err := r.Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(vars)
}

// Expr is a parsed formula, held as a postfix token sequence. An Expr is
// immutable and safe for concurrent evaluation.
type Expr struct {
	rpn    []token
	funcs  map[string]Func
	strict bool
}

// Eval evaluates the formula with the given variable bindings.
func (e *Expr) Eval(vars map[string]float64) (float64, error) {
	if e.strict {
		for _, t := range e.rpn {
			if t.kind != tokenIdent {
				continue
			}
			if _, ok := e.funcs[t.text]; ok {
				continue
			}
			if _, ok := vars[t.text]; !ok {
				return 0, &UnknownIdentifierError{Col: t.pos, Name: t.text}
			}
		}
	}
	return evalPostfix(e.rpn, vars, e.funcs)
}

// Vars returns the sorted names of the variables the formula references,
// each listed once. Registered function names are not variables.
func (e *Expr) Vars() []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range e.rpn {
		if t.kind != tokenIdent || seen[t.text] {
			continue
		}
		if _, ok := e.funcs[t.text]; ok {
			continue
		}
		seen[t.text] = true
		names = append(names, t.text)
	}
	sort.Strings(names)
	return names
}

// String renders the formula in postfix order, tokens joined with single
// spaces.
func (e *Expr) String() string {
	var b strings.Builder
	for i, t := range e.rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}

// evalPostfix reduces a postfix token sequence on an operand stack. Exactly
// one value must remain when the walk completes.
func evalPostfix(rpn []token, vars map[string]float64, funcs map[string]Func) (float64, error) {
	if len(rpn) == 0 {
		return 0, &MalformedExpressionError{}
	}
	stack := make([]float64, 0, len(rpn))
	for _, t := range rpn {
		switch t.kind {
		case tokenNum:
			stack = append(stack, t.num)
		case tokenIdent:
			fn, ok := funcs[t.text]
			if !ok {
				v, ok := vars[t.text]
				if !ok {
					return 0, &NameError{Name: t.text, Col: t.pos}
				}
				stack = append(stack, v)
				break
			}
			if len(stack) < fn.Arity {
				return 0, &UnderflowError{Col: t.pos, Tok: t.text, Want: fn.Arity, Have: len(stack)}
			}
			// The popped values reverse the call order; slicing the stack
			// keeps the arguments left to right.
			args := make([]float64, fn.Arity)
			copy(args, stack[len(stack)-fn.Arity:])
			stack = stack[:len(stack)-fn.Arity]
			v, err := fn.Apply(args)
			if err != nil {
				return 0, err
			}
			stack = append(stack, v)
		case tokenOp:
			if len(stack) < 2 {
				return 0, &UnderflowError{Col: t.pos, Tok: t.text, Want: 2, Have: len(stack)}
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			var v float64
			switch t.text {
			case "+":
				v = a + b
			case "-":
				v = a - b
			case "*":
				v = a * b
			case "/":
				if b == 0 {
					return 0, &DivisionByZeroError{Col: t.pos, X: a}
				}
				v = a / b
			case "%":
				v = math.Mod(a, b)
			case "^":
				v = math.Pow(a, b)
				if math.IsNaN(v) && !math.IsNaN(a) && !math.IsNaN(b) {
					return 0, &DomainError{X: a, Func: "^"}
				}
			default:
				panic("formula: invalid operator " + strconv.Quote(t.text))
			}
			stack = append(stack, v)
		default:
			panic("formula: invalid postfix token " + t.String())
		}
	}
	if len(stack) != 1 {
		return 0, &MalformedExpressionError{Rest: len(stack)}
	}
	return stack[0], nil
}

// defaultRegistry backs the package-level shortcuts. It is built once at
// startup; Register mutates it and must happen before concurrent use.
var defaultRegistry = NewRegistry()

// Evaluate parses and evaluates a formula using the default registry.
func Evaluate(src string, vars map[string]float64) (float64, error) {
	return defaultRegistry.Evaluate(src, vars)
}

// Parse parses a formula using the default registry.
func Parse(src string) (*Expr, error) {
	return defaultRegistry.Parse(src)
}

// Register adds or overwrites a function in the default registry. It must
// be called before any Evaluate call that could run concurrently with it.
func Register(name string, arity int, apply func(args []float64) (float64, error)) {
	defaultRegistry.Register(name, arity, apply)
}

// NameError is an error from a lookup for a variable that is missing from
// the supplied bindings.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Col is the position of the reference.
	Col int
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Pos() int {
	return err.Col
}

// DivisionByZeroError is an error from dividing by zero. Division never
// produces an infinity or NaN; it fails instead. It implements InputError.
type DivisionByZeroError struct {
	// Col is the position of the / operator.
	Col int
	// X is the numerator.
	X float64
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero")
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}
