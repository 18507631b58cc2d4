package types

import "github.com/dolthub/swiss"

// Registry interns Pointer and Array types by their mangled spelling so
// that repeated occurrences of the same derived type (e.g. `*i32` used as
// several parameters) share one Type value, the way a real compiler's type
// table avoids reallocating identical derived types. It is keyed by a
// swiss-table hash map, which at the scale of a single translation unit's
// type set is mostly about avoiding Go map's amortized-growth pauses on
// repeated insert/lookup churn during codegen.
type Registry struct {
	builtins map[Kind]Builtin
	derived  *swiss.Map[string, Type]
}

// NewRegistry creates an empty Registry pre-populated with the builtin
// scalar kinds.
func NewRegistry() *Registry {
	r := &Registry{
		builtins: make(map[Kind]Builtin, int(Char)+1),
		derived:  swiss.NewMap[string, Type](16),
	}
	for k := Void; k <= Char; k++ {
		r.builtins[k] = Builtin{Kind: k}
	}
	return r
}

// Builtin returns the interned Builtin type for k.
func (r *Registry) Builtin(k Kind) Builtin { return r.builtins[k] }

// PointerTo returns the interned Pointer type wrapping elem.
func (r *Registry) PointerTo(elem Type) Type {
	key := "P" + elem.Mangle()
	if t, ok := r.derived.Get(key); ok {
		return t
	}
	t := Pointer{Elem: elem}
	r.derived.Put(key, t)
	return t
}

// ArrayOf returns the interned Array type of the given element and size.
func (r *Registry) ArrayOf(elem Type, size uint64) Type {
	key := Array{Elem: elem, Size: size}.Mangle()
	if t, ok := r.derived.Get(key); ok {
		return t
	}
	t := Array{Elem: elem, Size: size}
	r.derived.Put(key, t)
	return t
}
