package llir

import (
	"fmt"
	"io"
)

// WriteObject writes a deterministic, human-readable stand-in for a real
// object file: one record per defined function naming its mangled symbol,
// instruction count and byte size estimate, followed by the interned
// string table. This is not an ELF/Mach-O/PE writer; object-code emission
// is out of scope; the dump exists so the `--emit` CLI path has a
// reproducible artifact to compare in tests.
func WriteObject(w io.Writer, m *Module) error {
	bw := &errWriter{w: w}
	fmt.Fprintf(bw, "; object: %s\n", m.Name)
	for _, name := range m.Order {
		fn := m.Funcs[name]
		if fn.Declared() {
			fmt.Fprintf(bw, "UNDEF  %s\n", fn.Name)
			continue
		}
		insns, bytes := 0, 0
		for _, b := range fn.Blocks {
			insns += len(b.Insns)
			bytes += len(b.Insns) * 4 // fixed-width instruction-size estimate
		}
		fmt.Fprintf(bw, "FUNC   %-24s blocks=%-3d insns=%-4d size=%d\n", fn.Name, len(fn.Blocks), insns, bytes)
	}
	for _, g := range m.Strings {
		fmt.Fprintf(bw, "DATA   %-24s size=%d\n", g.Name, len(g.Data)+1)
	}
	return bw.err
}
