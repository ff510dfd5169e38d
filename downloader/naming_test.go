package downloader

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func newTestBase(t *testing.T, ext string, caps CapabilitySet) *base {
	t.Helper()

	var buf bytes.Buffer
	return &base{
		logger: testLogger(&buf),
		ext:    ext,
		caps:   caps,
	}
}

func TestOutputFilenameFromTitle(t *testing.T) {
	dir := t.TempDir()

	t.Run("sanitized title plus destdir plus extension", func(t *testing.T) {
		b := newTestBase(t, ".flv", 0)
		ioc := &IOContext{DestDir: dir, ExcludeChars: "*/|"}

		got := b.OutputFilename("Foo/Bar", ioc)

		name := filepath.Base(got)
		if strings.ContainsAny(name, "/|") {
			t.Errorf("OutputFilename() = %q, contains excluded characters", got)
		}
		if !strings.HasSuffix(got, ".flv") {
			t.Errorf("OutputFilename() = %q, want .flv suffix", got)
		}
		if filepath.Dir(got) != dir {
			t.Errorf("OutputFilename() = %q, want it under %q", got, dir)
		}
	})

	t.Run("missing extension falls back to flv", func(t *testing.T) {
		b := newTestBase(t, "", 0)
		got := b.OutputFilename("clip", &IOContext{DestDir: dir})
		if !strings.HasSuffix(got, ".flv") {
			t.Errorf("OutputFilename() = %q, want .flv suffix", got)
		}
	})
}

func TestOutputFilenameExplicit(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		force    bool
		explicit string
		want     string
	}{
		{"forced extension replaces", ".flv", true, "video.mp4", "video.flv"},
		{"forced extension keeps match", ".flv", true, "video.flv", "video.flv"},
		{"forced extension appends", ".flv", true, "video", "video.flv"},
		{"flexible keeps any extension", ".mkv", false, "video.mp4", "video.mp4"},
		{"flexible appends when missing", ".mkv", false, "video", "video.mkv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBase(t, tt.ext, 0)
			ioc := &IOContext{OutputFilename: tt.explicit}
			got := b.constructOutputFilename("ignored title", ioc, tt.force)
			if got != tt.want {
				t.Errorf("constructOutputFilename(%q) = %q, want %q", tt.explicit, got, tt.want)
			}
		})
	}
}

func TestCollisionAvoidance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "title.flv"), 10)

	t.Run("first collision", func(t *testing.T) {
		b := newTestBase(t, ".flv", 0)
		got := b.OutputFilename("title", &IOContext{DestDir: dir})
		if got != filepath.Join(dir, "title-1.flv") {
			t.Errorf("OutputFilename() = %q, want title-1.flv", got)
		}
	})

	t.Run("second collision", func(t *testing.T) {
		writeFile(t, filepath.Join(dir, "title-1.flv"), 10)

		b := newTestBase(t, ".flv", 0)
		got := b.OutputFilename("title", &IOContext{DestDir: dir})
		if got != filepath.Join(dir, "title-2.flv") {
			t.Errorf("OutputFilename() = %q, want title-2.flv", got)
		}
	})
}

func TestResumeReusesExistingName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "title.flv"), 10)

	b := newTestBase(t, ".flv", CapResume)
	ioc := &IOContext{DestDir: dir, Resume: true}

	got := b.OutputFilename("title", ioc)
	if got != filepath.Join(dir, "title.flv") {
		t.Errorf("OutputFilename() = %q, want the existing title.flv", got)
	}
}

func TestOutputFilenameCached(t *testing.T) {
	dir := t.TempDir()

	b := newTestBase(t, ".flv", 0)
	ioc := &IOContext{DestDir: dir}

	first := b.OutputFilename("title", ioc)

	// a file appearing mid-attempt must not change the decision
	writeFile(t, first, 10)

	second := b.OutputFilename("title", ioc)
	if first != second {
		t.Errorf("cached output filename changed mid-attempt: %q != %q", first, second)
	}
}
