// Package maincmd implements the twk command line: flag parsing and
// dispatch built on github.com/mna/mainer, exposing tokenize, parse and
// codegen subcommands alongside a default compile path.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
)

const binName = "twk"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <file>...
       %[1]s [<option>...] <command> <file>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <file>...
       %[1]s [<option>...] <command> <file>...
       %[1]s -h|--help
       %[1]s -v|--version

Compiler for the %[1]s programming language.

With no <command>, compiles each <file> as one translation unit and, by
default, writes a deterministic object dump of the result to stdout.

The <command> can be one of:
       tokenize                  Run only the scanner and print the
                                 resulting tokens.
       parse                     Run only the parser and print the
                                 resulting syntax tree.
       codegen                   Run the parser and code generator and
                                 print the resulting backend IR.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -O --opt N                Optimization level (default from
                                 TWK_OPT_LEVEL); not used by the backend.
       --emit {llvm|asm}         Print textual IR or assembly instead of
                                 an object dump.
       --jit                     Run main() via the reference backend's
                                 interpreter and exit with its result.
       --relocation-model {pic|static}
                                 Accepted (default from
                                 TWK_RELOCATION_MODEL); not used by the backend.

More information on the %[1]s repository:
       https://github.com/twk-lang/twk
`, binName)
)

// config holds the environment-sourced defaults for flags that accept
// one, loaded once per process via caarlos0/env before flags are parsed
// so that a flag explicitly passed on the command line always wins.
type config struct {
	OptLevel        int    `env:"TWK_OPT_LEVEL" envDefault:"0"`
	RelocationModel string `env:"TWK_RELOCATION_MODEL" envDefault:"pic"`
}

// Cmd is the twk command-line entry point, parsed by mainer.Parser into
// this struct's tagged fields.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	OptLevel        int    `flag:"O,opt"`
	Emit            string `flag:"emit"`
	JIT             bool   `flag:"jit"`
	RelocationModel string `flag:"relocation-model"`

	args     []string
	flags    map[string]bool
	cmdFn    func(context.Context, mainer.Stdio, []string) error
	cmdFiles []string
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("reading environment defaults: %w", err)
	}
	if !c.flags["opt"] && !c.flags["O"] {
		c.OptLevel = cfg.OptLevel
	}
	if !c.flags["relocation-model"] {
		c.RelocationModel = cfg.RelocationModel
	}

	if len(c.args) == 0 {
		return errors.New("no input file specified")
	}

	if cmdFn, ok := buildCmds(c)[c.args[0]]; ok {
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", c.args[0])
		}
		c.cmdFn = cmdFn
		c.cmdFiles = c.args[1:]
		return nil
	}

	switch c.Emit {
	case "", "llvm", "asm":
	default:
		return fmt.Errorf("invalid --emit value: %q", c.Emit)
	}
	switch c.RelocationModel {
	case "pic", "static":
	default:
		return fmt.Errorf("invalid --relocation-model value: %q", c.RelocationModel)
	}
	c.cmdFn = c.compile
	c.cmdFiles = c.args
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.cmdFiles); err != nil {
		if code, ok := err.(exitCoded); ok {
			return mainer.ExitCode(code.ExitCode())
		}
		return mainer.Failure
	}
	return mainer.Success
}

// exitCoded is implemented by errors that carry their own process exit
// code, used by --jit to propagate main's i32 result as the process exit
// status.
type exitCoded interface {
	error
	ExitCode() int
}

// jitExit wraps the result of a --jit run so Main can recover it through
// the exitCoded path even though main returned an i32 rather than a Go
// error.
type jitExit int32

func (e jitExit) Error() string { return fmt.Sprintf("jit exit %d", int32(e)) }
func (e jitExit) ExitCode() int { return int(int32(e)) }

// buildCmds reflects over v's methods to find the tokenize/parse/codegen
// debug subcommands.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		name := strings.ToLower(m.Name)
		cmds[name] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
