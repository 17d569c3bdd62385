// pdfgen renders a YAML document description into a PDF file.
//
// The description lists the pages of the document with their size, lines
// of text and an optional picture:
//
//	title: Quarterly report
//	author: Finance
//	pages:
//	  - font_size: 14
//	    lines:
//	      - Revenue grew in every region.
//	    image:
//	      path: chart.png
//	      x: 72
//	      y: 300
//	      width: 451
//
// Pages are rendered in parallel and merged in order, so the same
// description always produces the same file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/tsawler/pdfwriter/core"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	var (
		configPath string
		outPath    string
		version    string
		logFormat  string
		indent     int
		workers    int
		compress   bool
		verbose    bool
	)

	flagSet := pflag.NewFlagSet("pdfgen", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to the YAML document description (required)")
	flagSet.StringVarP(&outPath, "out", "o", "out.pdf", "path of the PDF file to write")
	flagSet.StringVar(&version, "version", "1.7", "PDF version written in the file header")
	flagSet.IntVar(&indent, "indent", core.DefaultIndent, "spaces per dictionary nesting level")
	flagSet.BoolVar(&compress, "compress", false, "Flate-compress page content streams")
	flagSet.IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "number of pages rendered in parallel")
	flagSet.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every rendered page")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	logger, err := newLogger(stderr, logFormat, verbose)
	if err != nil {
		return err
	}

	if configPath == "" {
		return errors.New("--config is required")
	}
	if indent < 0 {
		return fmt.Errorf("--indent must not be negative, got %d", indent)
	}
	if workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", workers)
	}
	major, minor, err := parseVersion(version)
	if err != nil {
		return err
	}

	config, raw, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	out, err := render(ctx, config, raw, renderOptions{
		major:    major,
		minor:    minor,
		indent:   indent,
		compress: compress,
		workers:  workers,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", configPath, err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("wrote document", "path", outPath, "bytes", len(out), "duration", time.Since(start))
	return nil
}

// newLogger creates the structured logger for the given format.
func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q (supported: text, json)", format)
}

// parseVersion splits a header version such as "1.7".
func parseVersion(s string) (major, minor int, err error) {
	before, after, ok := strings.Cut(s, ".")
	if ok {
		major, err = strconv.Atoi(before)
		if err == nil {
			minor, err = strconv.Atoi(after)
		}
	}
	if !ok || err != nil || major < 1 || minor < 0 {
		return 0, 0, fmt.Errorf("invalid PDF version %q", s)
	}
	return major, minor, nil
}
