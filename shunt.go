package formula

// Formula = Term { op Term }
// Term    = num | name | Call | '(' Formula ')'
// Call    = funcname '(' Formula { ',' Formula } ')'

// precedence ranks the binary operators. The shunting-yard loop pops while
// the stacked operator's precedence is greater than or equal to the incoming
// one, so every operator is left-associative. That includes ^: "2^3^2" is
// (2^3)^2, not 2^(3^2), and callers depend on that reading.
var precedence = map[string]int{
	"^": 4,
	"*": 3,
	"/": 3,
	"%": 3,
	"+": 2,
	"-": 2,
}

// toPostfix reorders an infix token sequence into postfix order. Identifiers
// naming a function in funcs are held on the operator stack and emitted
// after their arguments; all other identifiers pass through as value
// references, with resolution deferred to evaluation. Separators and
// brackets are consumed here and never reach the evaluator.
func toPostfix(toks []token, funcs map[string]Func) ([]token, error) {
	out := make([]token, 0, len(toks))
	var ops []token
	for _, t := range toks {
		switch t.kind {
		case tokenNum:
			out = append(out, t)
		case tokenIdent:
			if _, ok := funcs[t.text]; ok {
				ops = append(ops, t)
				break
			}
			out = append(out, t)
		case tokenOpen:
			ops = append(ops, t)
		case tokenClose:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Col: t.pos, Right: ")"}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.kind == tokenOpen {
					break
				}
				out = append(out, top)
			}
			// A function call's name sits under its open bracket.
			if len(ops) > 0 && ops[len(ops)-1].kind == tokenIdent {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
		case tokenSep:
			for {
				if len(ops) == 0 {
					return nil, &SeparatorError{Col: t.pos, Sep: t.text}
				}
				if ops[len(ops)-1].kind == tokenOpen {
					break
				}
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
		case tokenOp:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind == tokenOpen {
					break
				}
				// Stacked functions always bind tighter than operators.
				if top.kind == tokenOp && precedence[top.text] < precedence[t.text] {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, t)
		default:
			panic("formula: invalid token " + t.String())
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.kind == tokenOpen {
			return nil, &BracketError{Col: top.pos, Left: "("}
		}
		out = append(out, top)
	}
	return out, nil
}
