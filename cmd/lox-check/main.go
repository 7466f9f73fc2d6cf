package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	pflag "github.com/spf13/pflag"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `lox-check - static checking for the Lox programming language

This tool tokenizes, parses and resolves each Lox source file named on the
command line and lists every error found. With --watch it keeps running and
checks a file again whenever it changes.

Usage:
  lox-check [options] FILE...

Options:
`

func main() {
	var showHelp, showVersion, watch bool
	var debounce time.Duration

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.BoolVarP(&watch, "watch", "w", false, "Re-check files when they change")
	pflag.DurationVar(&debounce, "debounce", 250*time.Millisecond, "Delay before re-checking after a change")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("lox-check version %s\n", Version)
		os.Exit(0)
	}

	files := pflag.Args()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one source file is required\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	err := checkFiles(files, os.Stdout)
	if !watch {
		if err != nil {
			fmt.Fprintln(os.Stderr, summarize(err))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = watchFiles(ctx, files, debounce, func(changed []string) {
		if err := checkFiles(changed, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, summarize(err))
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching files: %v\n", err)
		os.Exit(1)
	}
}
