// Package opts defines reflow's command-line surface, parsed with
// go-flags the same way apple-mail-mcp's internal/opts does.
package opts

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/inkcheck/reflow/internal/obslog"
)

// DefaultLineWidth is used when -l/--linewidth is not given.
const DefaultLineWidth = 80

// Options defines reflow's command-line options.
type Options struct {
	File      string `short:"f" long:"file" description:"Input file; reads standard input if omitted"`
	Outfile   string `short:"o" long:"outfile" description:"Output file; writes standard output if omitted"`
	LineWidth int    `short:"l" long:"linewidth" description:"Target line width" default:"80"`
	LogLevel  string `long:"log-level" env:"REFLOW_LOG_LEVEL" description:"Diagnostic log level: debug, info, warn, error, none" default:"warn"`
	KeepGoing bool   `long:"keep-going" description:"Skip paragraphs with unsupported inline markup instead of aborting, collecting them as warnings"`
}

// Parse parses os.Args[1:] into an Options value. --help exits the process
// with status 0 after printing usage, matching flags.Default's behavior.
func Parse(args []string) (*Options, error) {
	var o Options
	parser := flags.NewParser(&o, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	if o.LineWidth <= 0 {
		return nil, fmt.Errorf("linewidth must be positive, got %d", o.LineWidth)
	}
	if o.LogLevel == "" {
		o.LogLevel = obslog.LevelWarn
	}
	return &o, nil
}
