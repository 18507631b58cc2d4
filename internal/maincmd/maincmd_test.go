package maincmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "t.twk")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func stdioWith(stdout, stderr *bytes.Buffer) mainer.Stdio {
	return mainer.Stdio{Stdout: stdout, Stderr: stderr}
}

func TestCompileDefaultEmitsObjectDump(t *testing.T) {
	path := writeTempSource(t, `func main() -> i32 { return 0; }`)

	c := &Cmd{}
	var out, errOut bytes.Buffer
	err := c.compile(context.Background(), stdioWith(&out, &errOut), []string{path})
	require.NoError(t, err)
	require.Contains(t, out.String(), "; object: main")
	require.Contains(t, out.String(), "FUNC")
}

func TestCompileEmitLLVM(t *testing.T) {
	path := writeTempSource(t, `func main() -> i32 { return 0; }`)

	c := &Cmd{Emit: "llvm"}
	var out, errOut bytes.Buffer
	err := c.compile(context.Background(), stdioWith(&out, &errOut), []string{path})
	require.NoError(t, err)
	require.Contains(t, out.String(), "define")
}

func TestCompileJITReturnsExitCode(t *testing.T) {
	path := writeTempSource(t, `func main() -> i32 { return 42; }`)

	c := &Cmd{JIT: true}
	var out, errOut bytes.Buffer
	err := c.compile(context.Background(), stdioWith(&out, &errOut), []string{path})
	require.Error(t, err)
	code, ok := err.(exitCoded)
	require.True(t, ok)
	require.Equal(t, 42, code.ExitCode())
}

func TestCodegenSubcommandReportsCompileError(t *testing.T) {
	path := writeTempSource(t, `func main() -> i32 { x = 1; return 0; }`)

	c := &Cmd{}
	var out, errOut bytes.Buffer
	err := c.Codegen(context.Background(), stdioWith(&out, &errOut), []string{path})
	require.Error(t, err)
	require.Contains(t, errOut.String(), "t.twk:1:")
}

func TestValidateDispatchesToSubcommand(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"tokenize", "a.twk"})
	c.SetFlags(map[string]bool{})
	require.NoError(t, c.Validate())
	require.Equal(t, []string{"a.twk"}, c.cmdFiles)
}

func TestValidateRejectsUnknownEmit(t *testing.T) {
	c := &Cmd{Emit: "bogus"}
	c.SetArgs([]string{"a.twk"})
	c.SetFlags(map[string]bool{})
	require.Error(t, c.Validate())
}
