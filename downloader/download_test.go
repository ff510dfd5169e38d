package downloader

import (
	"bytes"
	"context"
	"testing"

	"github.com/kmosiejczuk/yle-dl/result"
)

// scriptedBackend returns canned result codes and records how it was used.
type scriptedBackend struct {
	base
	name      BackendName
	code      result.Code
	saveCalls int
	pipeCalls int
	warnCalls int
}

func newScriptedBackend(name BackendName, code result.Code) *scriptedBackend {
	var buf bytes.Buffer
	return &scriptedBackend{
		base: base{logger: testLogger(&buf)},
		name: name,
		code: code,
	}
}

func (s *scriptedBackend) Name() BackendName {
	return s.name
}

func (s *scriptedBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	s.saveCalls++
	return s.code
}

func (s *scriptedBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	s.pipeCalls++
	return s.code
}

func (s *scriptedBackend) WarnOnUnsupportedFeatures(ioc *IOContext) {
	s.warnCalls++
}

func TestSaveStreamFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := testLogger(&buf)

	t.Run("first success stops the iteration", func(t *testing.T) {
		first := newScriptedBackend(BackendWget, result.Success)
		second := newScriptedBackend(BackendFFmpeg, result.Success)

		code := SaveStream(context.Background(), logger,
			[]Backend{first, second}, "clip", &IOContext{})

		if code != result.Success {
			t.Errorf("SaveStream() = %v, want %v", code, result.Success)
		}
		if first.saveCalls != 1 || second.saveCalls != 0 {
			t.Errorf("calls = %d/%d, want 1/0", first.saveCalls, second.saveCalls)
		}
	})

	t.Run("failure advances to the next backend", func(t *testing.T) {
		first := newScriptedBackend(BackendWget, result.Failed)
		second := newScriptedBackend(BackendFFmpeg, result.Success)

		code := SaveStream(context.Background(), logger,
			[]Backend{first, second}, "clip", &IOContext{})

		if code != result.Success {
			t.Errorf("SaveStream() = %v, want %v", code, result.Success)
		}
		if first.saveCalls != 1 || second.saveCalls != 1 {
			t.Errorf("calls = %d/%d, want 1/1", first.saveCalls, second.saveCalls)
		}
	})

	t.Run("cancellation does not fall back", func(t *testing.T) {
		first := newScriptedBackend(BackendWget, result.Incomplete)
		second := newScriptedBackend(BackendFFmpeg, result.Success)

		code := SaveStream(context.Background(), logger,
			[]Backend{first, second}, "clip", &IOContext{})

		if code != result.Incomplete {
			t.Errorf("SaveStream() = %v, want %v", code, result.Incomplete)
		}
		if second.saveCalls != 0 {
			t.Errorf("second backend called after a cancellation")
		}
	})

	t.Run("all backends fail", func(t *testing.T) {
		first := newScriptedBackend(BackendWget, result.SubprocessFailed)
		second := newScriptedBackend(BackendFFmpeg, result.Failed)

		code := SaveStream(context.Background(), logger,
			[]Backend{first, second}, "clip", &IOContext{})

		if code != result.Failed {
			t.Errorf("SaveStream() = %v, want the last failure code", code)
		}
	})
}

func TestSaveStreamWarnsBeforeEachAttempt(t *testing.T) {
	var buf bytes.Buffer
	first := newScriptedBackend(BackendWget, result.Failed)
	second := newScriptedBackend(BackendFFmpeg, result.Failed)

	SaveStream(context.Background(), testLogger(&buf),
		[]Backend{first, second}, "clip", &IOContext{})

	if first.warnCalls != 1 || second.warnCalls != 1 {
		t.Errorf("warn calls = %d/%d, want 1/1", first.warnCalls, second.warnCalls)
	}
}

func TestPipeStreamUsesPipe(t *testing.T) {
	var buf bytes.Buffer
	b := newScriptedBackend(BackendWget, result.Success)

	code := PipeStream(context.Background(), testLogger(&buf),
		[]Backend{b}, &IOContext{}, "")

	if code != result.Success {
		t.Errorf("PipeStream() = %v, want %v", code, result.Success)
	}
	if b.pipeCalls != 1 || b.saveCalls != 0 {
		t.Errorf("calls = pipe %d / save %d, want 1/0", b.pipeCalls, b.saveCalls)
	}
}
