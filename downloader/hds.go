package downloader

import (
	"context"
	"os"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kmosiejczuk/yle-dl/result"
)

// HDSBackend downloads a fragmented HTTP (Adobe HDS) stream by delegating
// to the AdobeHDS.php downloader script.
type HDSBackend struct {
	external
	url      string
	bitrate  int
	flavorID string
}

func NewHDSBackend(logger zerolog.Logger, runner Runner, url string, bitrate int, flavorID, ext string) *HDSBackend {
	return &HDSBackend{
		external: newExternal(logger, runner, ext,
			CapResume|CapProxy|CapDuration|CapRatelimit),
		url:      url,
		bitrate:  bitrate,
		flavorID: flavorID,
	}
}

func (b *HDSBackend) Name() BackendName {
	return BackendAdobeHDS
}

func (b *HDSBackend) SaveStream(ctx context.Context, clipTitle string, ioc *IOContext) result.Code {
	outputFile := b.OutputFilename(clipTitle, ioc)

	// A finished download leaves the final file behind and no fragment
	// files. Resuming it would start over, so report success instead.
	if ioc.Resume && outputFile != "-" &&
		fileExists(outputFile) && !b.fragmentsExist(b.flavorID) {
		b.logger.Info().Str("filename", outputFile).Msg("has already been downloaded")
		return result.Success
	}

	args := b.commandLine(ioc, []string{"--delete", "--outfile", outputFile})
	return b.transfer(ctx, [][]string{args}, nil, outputFile)
}

func (b *HDSBackend) Pipe(ctx context.Context, ioc *IOContext, subtitleURL string) result.Code {
	args := b.commandLine(ioc, []string{"--play"})
	code := b.pipeThrough(ctx, args, nil, ioc.Tools.FFmpeg, subtitleURL)
	b.cleanupCookies()
	return code
}

func (b *HDSBackend) commandLine(ioc *IOContext, extraArgs []string) []string {
	args := append([]string{}, ioc.Tools.HDS...)
	args = append(args, "--manifest", b.url)
	if b.bitrate > 0 {
		args = append(args, "--quality", strconv.Itoa(b.bitrate))
	}
	if ioc.Limits.Ratelimit > 0 {
		args = append(args, "--maxspeed", strconv.Itoa(ioc.Limits.Ratelimit))
	}
	if ioc.Limits.Duration > 0 {
		args = append(args, "--duration", strconv.Itoa(ioc.Limits.Duration))
	}
	if ioc.Proxy != "" {
		args = append(args, "--proxy", ioc.Proxy, "--fproxy")
	}
	if debugEnabled(b.logger) {
		args = append(args, "--debug")
	}
	return append(args, extraArgs...)
}

// fragmentsExist scans the working directory for partially downloaded
// fragment files belonging to this flavor. AdobeHDS.php writes them relative
// to the working directory, which is why the scan is relative too.
func (b *HDSBackend) fragmentsExist(flavorID string) bool {
	pattern, err := regexp.Compile(
		".*_" + regexp.QuoteMeta(flavorID) + "_Seg[0-9]+-Frag[0-9]+$")
	if err != nil {
		return false
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if pattern.MatchString(entry.Name()) {
			return true
		}
	}
	return false
}

// cleanupCookies removes the cookie file AdobeHDS.php leaves behind. Best
// effort; a failure never changes the reported result.
func (b *HDSBackend) cleanupCookies() {
	_ = os.Remove("Cookies.txt")
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}
