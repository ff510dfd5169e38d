// Package subprocess starts external download tools as chains of processes
// connected with pipes and translates their exit status into result codes.
package subprocess

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/internal/utils"
	"github.com/kmosiejczuk/yle-dl/result"
)

type RunnerCtx struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *RunnerCtx {
	return &RunnerCtx{
		logger: logger,
	}
}

// Execute starts every command in the chain, with command i's stdout piped
// into command i+1's stdin and the last command's stdout left attached to
// this process's stdout. It blocks until the head command exits.
//
// extraEnv entries are overlaid on a copy of the current environment; an
// empty map leaves the inherited environment untouched.
//
// Cancelling the context forwards an interrupt to the head command and
// reports Incomplete.
func (r *RunnerCtx) Execute(ctx context.Context, commands [][]string, extraEnv map[string]string) result.Code {
	if len(commands) == 0 {
		return result.Success
	}

	shellString := commandString(commands)
	r.logger.Debug().Str("command", shellString).Msg("executing")

	cmds, closers, err := r.start(commands, combineEnvs(extraEnv))

	// close our copies of the intermediate pipe ends, so that the head
	// command receives SIGPIPE when a downstream command exits
	for _, c := range closers {
		_ = c.Close()
	}

	if err != nil {
		r.logger.Error().Err(err).Str("command", shellString).Msg("failed to execute")
		return result.SubprocessFailed
	}

	head := cmds[0]
	waitCh := make(chan error, 1)
	go func() {
		waitCh <- head.Wait()
	}()

	select {
	case err = <-waitCh:
	case <-ctx.Done():
		// forward the cancellation; the process may already be gone
		_ = head.Process.Signal(os.Interrupt)
		<-waitCh
		r.reap(cmds[1:])
		return result.Incomplete
	}

	r.reap(cmds[1:])
	return r.exitCodeToResult(err)
}

// start builds and spawns the commands. The returned closers are this
// process's copies of the pipe ends and must be closed by the caller even
// when an error is returned.
func (r *RunnerCtx) start(commands [][]string, env []string) ([]*exec.Cmd, []io.Closer, error) {
	cmds := make([]*exec.Cmd, len(commands))
	for i, args := range commands {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Env = env

		if i == 0 {
			// the head command keeps the terminal for its progress
			// display; on supported platforms it also gets a
			// die-with-parent signal so it is not orphaned
			cmd.Stderr = os.Stderr
			cmd.SysProcAttr = dieWithParentAttr()
		} else {
			cmd.Stderr = utils.LogWriter(
				r.logger.With().Str("command", args[0]).Logger())
		}

		cmds[i] = cmd
	}

	var closers []io.Closer
	for i := 0; i < len(cmds)-1; i++ {
		read, write, err := os.Pipe()
		if err != nil {
			return nil, closers, err
		}
		cmds[i].Stdout = write
		cmds[i+1].Stdin = read
		closers = append(closers, read, write)
	}
	cmds[len(cmds)-1].Stdout = os.Stdout

	for i, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			// tear down whatever was already running
			for _, started := range cmds[:i] {
				_ = started.Process.Kill()
				_ = started.Wait()
			}
			return nil, closers, err
		}
	}

	return cmds, closers, nil
}

// reap waits for the remaining commands so they are not left as zombies and
// the tail of a pipe chain has flushed its output before we return.
func (r *RunnerCtx) reap(cmds []*exec.Cmd) {
	for _, cmd := range cmds {
		if err := cmd.Wait(); err != nil {
			r.logger.Debug().Err(err).Str("command", cmd.Path).Msg("chained command exited with an error")
		}
	}
}

func (r *RunnerCtx) exitCodeToResult(err error) result.Code {
	if err == nil {
		return result.Success
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// This works on both Unix and Windows. Although package
		// syscall is generally platform dependent, WaitStatus is
		// defined for both Unix and Windows and in both cases has
		// an ExitStatus() method with the same signature.
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			r.logger.Warn().Int("exit-status", status.ExitStatus()).Msg("the program has exited with an exit code != 0")
		}
	} else {
		r.logger.Err(err).Msg("the program has exited with an error")
	}
	return result.Failed
}

// combineEnvs overlays extraEnv on a copy of the current environment. A nil
// or empty map returns nil, which makes exec inherit the environment as-is.
func combineEnvs(extraEnv map[string]string) []string {
	if len(extraEnv) == 0 {
		return nil
	}

	env := os.Environ()
	for name, value := range extraEnv {
		env = append(env, name+"="+value)
	}
	return env
}

func commandString(commands [][]string) string {
	joined := make([]string, len(commands))
	for i, args := range commands {
		joined[i] = strings.Join(args, " ")
	}
	return strings.Join(joined, " | ")
}
