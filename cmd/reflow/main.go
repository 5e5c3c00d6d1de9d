// Command reflow rewraps every paragraph in a CommonMark document to a
// configured line width, preserving its inline markup exactly.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/inkcheck/reflow/internal/obslog"
	"github.com/inkcheck/reflow/internal/opts"
	"github.com/inkcheck/reflow/internal/pipeline"
	"github.com/inkcheck/reflow/internal/pipelineerr"
	"github.com/inkcheck/reflow/internal/printer"
	"github.com/inkcheck/reflow/internal/superscript"
)

// mdParser mirrors the teacher's own goldmark.New(goldmark.WithExtensions(extension.GFM))
// setup, extended with this program's own superscript syntax.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM, superscript.Extension),
)

func main() {
	o, err := opts.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := obslog.New(o.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(o, logger); err != nil {
		logger.Error("reflow failed",
			zap.String("file", o.File),
			zap.Int("linewidth", o.LineWidth),
			zap.Error(err),
		)
		os.Exit(exitCode(err))
	}
}

func run(o *opts.Options, logger *zap.Logger) error {
	source, err := readInput(o.File)
	if err != nil {
		return pipelineerr.IO("read input", err)
	}

	doc := mdParser.Parser().Parse(text.NewReader(source))

	if err := pipeline.Run(doc, source, o.LineWidth, o.KeepGoing); err != nil {
		if !o.KeepGoing {
			return err
		}
		// With --keep-going, pipeline.Run only returns a non-nil error for
		// the paragraphs it chose to skip; log each and carry on rendering
		// the rest of the document rather than aborting the whole run.
		for _, warning := range multierr.Errors(err) {
			logger.Warn("skipping paragraph with unsupported inline markup", zap.Error(warning))
		}
	}

	var out bytes.Buffer
	if err := printer.Render(&out, source, doc); err != nil {
		return pipelineerr.IO("render output", err)
	}

	if err := writeOutput(o.Outfile, out.Bytes()); err != nil {
		return pipelineerr.IO("write output", err)
	}

	logger.Debug("reflow complete", zap.Int("bytes", out.Len()))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes the whole rendered document only after rendering has
// fully succeeded, so a failure never leaves a truncated file on disk.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, pipelineerr.ErrEncoding), errors.Is(err, pipelineerr.ErrUnsupportedInline):
		return 3
	case errors.Is(err, pipelineerr.ErrInvariant):
		return 70
	default:
		return 1
	}
}
