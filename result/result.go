// Package result defines the terminal status codes reported by download
// backends and the subprocess runner. The CLI maps them to process exit
// codes, so the numeric values are part of the external interface.
package result

// Code is the outcome of one download or pipe attempt.
type Code int

const (
	// Success means the stream was transferred completely, or a prior
	// transfer was detected as already complete.
	Success Code = iota

	// Failed means the transfer did not complete. The caller may try the
	// next backend in its preference order.
	Failed

	// Incomplete means the transfer was interrupted by the user. It is
	// distinct from Failed so that the caller can offer to resume.
	Incomplete

	// SubprocessFailed means an external program could not be started at
	// all, e.g. the binary is missing or not executable.
	SubprocessFailed
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case Incomplete:
		return "incomplete"
	case SubprocessFailed:
		return "subprocess-execute-failed"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the CLI.
func (c Code) ExitCode() int {
	return int(c)
}
