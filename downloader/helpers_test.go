package downloader

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// fakeRunner records the command chains it is asked to execute and returns a
// canned result code.
type fakeRunner struct {
	code     result.Code
	calls    int
	commands [][]string
	env      map[string]string
}

func (f *fakeRunner) Execute(ctx context.Context, commands [][]string, extraEnv map[string]string) result.Code {
	f.calls++
	f.commands = commands
	f.env = extraEnv
	return f.code
}

// testLogger writes into buf at info level, so that debug-only command line
// flags stay off in the built argument vectors.
func testLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf).Level(zerolog.InfoLevel)
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(old)
	})
}

// unsetEnv removes a variable for the duration of the test. Call t.Setenv
// first so the original value is restored on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()

	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.WriteFile(path, bytes.Repeat([]byte{0x46}, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func hasArg(args []string, arg string) bool {
	for _, a := range args {
		if a == arg {
			return true
		}
	}
	return false
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
