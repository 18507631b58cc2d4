// Package mangle implements the Itanium-style name mangling scheme used to
// give every function a globally unique, type-encoding symbol name.
package mangle

import (
	"fmt"
	"strings"

	"github.com/twk-lang/twk/lang/types"
)

// Mangler produces mangled symbol names. It is stateless; its methods are
// pure functions of their arguments, kept as methods (rather than package
// functions) so callers can hold it alongside the rest of a codegen
// Context without a naming mismatch.
type Mangler struct{}

// Def mangles a function definition/declaration: _Z<len><name><codes...>,
// in declaration order. A variadic tail parameter contributes a single
// trailing 'v' code.
func (Mangler) Def(name string, params []types.Type, variadic bool) string {
	return mangle(name, params, variadic)
}

// Call mangles a call site the same way, using the resolved argument
// types; for the same name and types it returns Def's output.
func (Mangler) Call(callee string, args []types.Type, variadic bool) string {
	return mangle(callee, args, variadic)
}

func mangle(name string, params []types.Type, variadic bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "_Z%d%s", len(name), name)
	for _, p := range params {
		sb.WriteString(p.Mangle())
	}
	if variadic {
		sb.WriteString("v")
	}
	return sb.String()
}
