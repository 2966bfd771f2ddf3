// args.go defines the literal argument values a shortcode tag can carry.
package shortcode

// ArgKind discriminates the closed set of literal value kinds.
type ArgKind int

const (
	ArgBoolean ArgKind = iota
	ArgNumber
	ArgText
	ArgList
)

// ArgValue is one parsed argument literal. Exactly the field selected by
// Kind is meaningful; values are immutable once parsed.
type ArgValue struct {
	Kind    ArgKind
	Boolean bool
	Number  float64
	Text    string
	List    []ArgValue
}

// Boolean wraps a bool literal.
func Boolean(b bool) ArgValue {
	return ArgValue{Kind: ArgBoolean, Boolean: b}
}

// Number wraps a numeric literal.
func Number(n float64) ArgValue {
	return ArgValue{Kind: ArgNumber, Number: n}
}

// Text wraps a string literal.
func Text(s string) ArgValue {
	return ArgValue{Kind: ArgText, Text: s}
}

// List wraps an ordered sequence of literals.
func List(vs ...ArgValue) ArgValue {
	return ArgValue{Kind: ArgList, List: vs}
}

// Interface converts the value to its native Go representation
// (bool, float64, string, or []any), for handing to template data.
func (v ArgValue) Interface() any {
	switch v.Kind {
	case ArgBoolean:
		return v.Boolean
	case ArgNumber:
		return v.Number
	case ArgText:
		return v.Text
	default:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = e.Interface()
		}
		return out
	}
}

// Args is an insertion-ordered mapping from argument name to value.
// Lookup is by name; iteration order is the order arguments appeared in
// the tag, which keeps re-serialization deterministic.
type Args struct {
	keys   []string
	values map[string]ArgValue
}

// Set adds or replaces an argument. Replacing keeps the original position.
func (a *Args) Set(name string, v ArgValue) {
	if a.values == nil {
		a.values = make(map[string]ArgValue)
	}
	if _, ok := a.values[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.values[name] = v
}

// Get returns the value for name.
func (a *Args) Get(name string) (ArgValue, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Keys returns the argument names in insertion order.
func (a *Args) Keys() []string {
	return a.keys
}

// Len returns the number of arguments.
func (a *Args) Len() int {
	return len(a.keys)
}

// Interface converts all arguments to a map of native Go values.
func (a *Args) Interface() map[string]any {
	out := make(map[string]any, len(a.keys))
	for _, k := range a.keys {
		out[k] = a.values[k].Interface()
	}
	return out
}
