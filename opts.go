package formula

// RegistryOption is an option used when creating a registry.
type RegistryOption interface {
	registryOption(*Registry)
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt      map[string]Func
	nodefaultsopt struct{}
	strictopt     struct{}
)

// WithFunc sets a function in the new registry, overwriting any default of
// the same name.
func WithFunc(name string, fn Func) RegistryOption {
	return &funcopt{name, fn}
}

func (o *funcopt) registryOption(r *Registry) {
	r.funcs[o.name] = o.fn
}

// WithFuncs sets a group of functions in the new registry.
func WithFuncs(fns map[string]Func) RegistryOption {
	return funcsopt(fns)
}

func (o funcsopt) registryOption(r *Registry) {
	for k, v := range o {
		r.funcs[k] = v
	}
}

// WithoutDefaults creates the registry empty instead of preseeding the
// default function set. Default function names then evaluate as variables.
func WithoutDefaults() RegistryOption {
	return nodefaultsopt{}
}

func (nodefaultsopt) registryOption(*Registry) {}

// Strict makes evaluation fail fast with *UnknownIdentifierError when any
// identifier in the formula is neither a bound variable nor a registered
// function, before any arithmetic runs. Without Strict, an unresolvable
// identifier is reported as *NameError only if evaluation reaches it.
func Strict() RegistryOption {
	return strictopt{}
}

func (strictopt) registryOption(r *Registry) {
	r.strict = true
}
