package main

import (
	"fmt"
	"os"

	pflag "github.com/spf13/pflag"

	"github.com/spicery/lox-resolver/pkg/common"
)

// Version is injected at build time via ldflags.
var Version = "dev"

func main() {
	var format = pflag.StringP("format", "f", "ASCIITREE", "Output format (JSON, YAML, ASCIITREE, DOT)")
	var indent = pflag.Int("indent", 2, "Indentation level for display purposes")
	var trim = pflag.Int("trim", 0, "Trim names for display purposes")
	var noSpans = pflag.Bool("no-spans", false, "Suppress span information in output")
	var version = pflag.Bool("version", false, "Print version and exit")
	var help = pflag.BoolP("help", "h", false, "Print help message and exit")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nConverts a Lox program tree from JSON format to various output formats.\n")
		fmt.Fprintf(os.Stderr, "Reads JSON from stdin and writes the converted tree to stdout.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *version {
		fmt.Printf("lox-convert-tree version %s\n", Version)
		os.Exit(0)
	}

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	printFunc, err := common.PickPrintFunc(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tree, err := common.ReadASTJSON(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON input: %v\n", err)
		os.Exit(1)
	}

	options := &common.PrintOptions{
		Format:            *format,
		Indent:            *indent,
		TrimTokenOnOutput: *trim,
		IncludeSpans:      !*noSpans,
	}
	printFunc(tree, options.IndentString(), os.Stdout, options)
}
