package downloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kmosiejczuk/yle-dl/internal/utils"
)

// fallback extension when the stream metadata did not provide one
const defaultExt = ".flv"

// constructOutputFilename applies the output naming precedence: an explicit
// user filename wins, with the variant's extension forced or appended
// depending on forceExtension; otherwise the path is derived from the
// sanitized clip title, the destination directory and the variant extension.
func (b *base) constructOutputFilename(clipTitle string, ioc *IOContext, forceExtension bool) string {
	if ioc.OutputFilename != "" {
		if forceExtension {
			return b.replaceExtension(ioc.OutputFilename, b.ext)
		}
		return appendExtIfMissing(ioc.OutputFilename, b.ext)
	}

	resumeJob := ioc.Resume && b.caps.Has(CapResume)
	return b.outputFileFromClipTitle(clipTitle, ioc, resumeJob)
}

// outputFileFromClipTitle derives and caches the output path. The cached
// decision is reused for the rest of the attempt so that repeated queries
// cannot land on a different collision-avoidance name.
func (b *base) outputFileFromClipTitle(clipTitle string, ioc *IOContext, resume bool) string {
	if b.cachedOutputFile != "" {
		return b.cachedOutputFile
	}

	ext := b.ext
	if ext == "" {
		ext = defaultExt
	}

	filename := utils.SaneFilename(clipTitle, ioc.ExcludeChars) + ext
	if ioc.DestDir != "" {
		filename = filepath.Join(ioc.DestDir, filename)
	}
	if !resume {
		filename = b.nextAvailableFilename(filename)
	}

	b.cachedOutputFile = filename
	return filename
}

// nextAvailableFilename appends -1, -2, ... before the extension until the
// name does not exist yet.
func (b *base) nextAvailableFilename(proposed string) string {
	ext := filepath.Ext(proposed)
	stem := strings.TrimSuffix(proposed, ext)

	filename := proposed
	for i := 1; ; i++ {
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			return filename
		}
		b.logger.Info().Str("filename", filename).Msg("file exists, trying an alternative name")
		filename = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}

// replaceExtension substitutes the variant's fixed extension, warning when
// the user asked for a different one.
func (b *base) replaceExtension(filename, ext string) string {
	if ext == "" {
		ext = defaultExt
	}
	oldExt := filepath.Ext(filename)
	if oldExt == ext {
		return filename
	}
	if oldExt != "" {
		b.logger.Warn().
			Str("extension", oldExt).
			Str("replacement", ext).
			Msg("unsupported extension, replacing it")
	}
	return strings.TrimSuffix(filename, oldExt) + ext
}

func appendExtIfMissing(filename, defaultExtension string) string {
	if strings.Contains(filename, ".") {
		return filename
	}
	if defaultExtension == "" {
		defaultExtension = defaultExt
	}
	return filename + defaultExtension
}
