package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/twk-lang/twk/llir"
)

// compile is the default, no-subcommand pipeline: parse and compile every
// file into one module, then emit it as textual IR, pseudo-assembly, or a
// deterministic object dump depending on --emit, or JIT-run main and exit
// with its result when --jit is set.
func (c *Cmd) compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	mod, err := CodegenFiles(ctx, stdio, args...)
	if err != nil {
		return err
	}

	if c.JIT {
		result, err := mod.JIT("main")
		if err != nil {
			return err
		}
		return jitExit(result)
	}

	switch c.Emit {
	case "llvm":
		return llir.WriteIR(stdio.Stdout, mod)
	case "asm":
		return llir.WriteAsm(stdio.Stdout, mod)
	default:
		return llir.WriteObject(stdio.Stdout, mod)
	}
}
