package downloader

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kmosiejczuk/yle-dl/result"
)

type fakeHDSClient struct {
	calls  int
	output string
	opts   HDSOptions
	err    error
}

func (f *fakeHDSClient) Download(ctx context.Context, output string, opts HDSOptions) error {
	f.calls++
	f.output = output
	f.opts = opts
	return f.err
}

func newTestHDSLib(t *testing.T, client HDSClient, bitrate int) *HDSLibBackend {
	t.Helper()

	var buf bytes.Buffer
	return NewHDSLibBackend(testLogger(&buf), client, "https://example.com/manifest.f4m", bitrate, ".mp4")
}

func TestHDSLibSaveStream(t *testing.T) {
	client := &fakeHDSClient{}
	b := newTestHDSLib(t, client, 1500)

	dir := t.TempDir()
	ioc := &IOContext{
		DestDir: dir,
		Resume:  true,
		Proxy:   "proxy.example.com:8080",
		Limits:  DownloadLimits{Ratelimit: 600},
	}

	code := b.SaveStream(context.Background(), "clip", ioc)
	if code != result.Success {
		t.Fatalf("SaveStream() = %v, want %v", code, result.Success)
	}
	if client.calls != 1 {
		t.Fatalf("client called %d times, want 1", client.calls)
	}
	if client.output != filepath.Join(dir, "clip.mp4") {
		t.Errorf("output = %q, want clip.mp4 under the destdir", client.output)
	}
	if client.opts.Bitrate != 1500 {
		t.Errorf("Bitrate = %d, want 1500", client.opts.Bitrate)
	}
	if client.opts.RatelimitBytes != 600*1024 {
		t.Errorf("RatelimitBytes = %d, want the kB/s limit converted to B/s", client.opts.RatelimitBytes)
	}
	if !client.opts.Resume {
		t.Errorf("Resume = false, want true")
	}
	if client.opts.Proxy != "proxy.example.com:8080" {
		t.Errorf("Proxy = %q, want the requested proxy", client.opts.Proxy)
	}
}

func TestHDSLibPipe(t *testing.T) {
	client := &fakeHDSClient{}
	b := newTestHDSLib(t, client, 0)

	code := b.Pipe(context.Background(), &IOContext{Resume: true}, "https://example.com/subs.srt")
	if code != result.Success {
		t.Fatalf("Pipe() = %v, want %v", code, result.Success)
	}
	if client.output != "-" {
		t.Errorf("output = %q, want -", client.output)
	}
	// resume makes no sense when streaming to stdout
	if client.opts.Resume {
		t.Errorf("Resume = true, want false when piping")
	}
}

func TestHDSLibFailures(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		client := &fakeHDSClient{err: errors.New("HTTP request failed")}
		b := newTestHDSLib(t, client, 0)

		code := b.SaveStream(context.Background(), "clip", &IOContext{DestDir: t.TempDir()})
		if code != result.Failed {
			t.Errorf("SaveStream() = %v, want %v", code, result.Failed)
		}
	})

	t.Run("client not available", func(t *testing.T) {
		b := newTestHDSLib(t, nil, 0)

		code := b.SaveStream(context.Background(), "clip", &IOContext{DestDir: t.TempDir()})
		if code != result.Failed {
			t.Errorf("SaveStream() = %v, want %v", code, result.Failed)
		}
	})
}

func TestHDSLibNoRatelimit(t *testing.T) {
	client := &fakeHDSClient{}
	b := newTestHDSLib(t, client, 0)

	b.SaveStream(context.Background(), "clip", &IOContext{DestDir: t.TempDir()})
	if client.opts.RatelimitBytes != 0 {
		t.Errorf("RatelimitBytes = %d, want 0 when unlimited", client.opts.RatelimitBytes)
	}
}
