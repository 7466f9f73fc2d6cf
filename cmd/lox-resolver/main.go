package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	pflag "github.com/spf13/pflag"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/checker"
	"github.com/spicery/lox-resolver/pkg/common"
	"github.com/spicery/lox-resolver/pkg/resolver"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `lox-resolver - variable resolution for the Lox programming language

This tool reads a Lox program tree in JSON format and annotates every
variable, assign, this and super expression with resolution information:
  - depth: the number of scopes between the reference and its declaration
  - scope: global, for variable references no enclosing scope declares

Static errors are listed on stderr and the exit status is 1.

Usage:
  lox-resolver [options]

Options:
`

func main() {
	var showHelp, showVersion, noSpans, debug bool
	var inputFile, outputFile, format string
	var trim int

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.BoolVar(&debug, "debug", false, "Dump the resolved bindings to stderr")
	pflag.StringVarP(&inputFile, "input", "i", "", "Input file (defaults to stdin)")
	pflag.StringVarP(&outputFile, "output", "o", "", "Output file (defaults to stdout)")
	pflag.StringVarP(&format, "format", "f", common.DEFAULT_FORMAT, "Output format (JSON, YAML, ASCIITREE, DOT)")
	pflag.IntVar(&trim, "trim", 0, "Trim names for display purposes")
	pflag.BoolVar(&noSpans, "no-spans", false, "Suppress span information in output")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("lox-resolver version %s\n", Version)
		os.Exit(0)
	}

	// Reject any positional arguments.
	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	printFunc, err := common.PickPrintFunc(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var input io.Reader = os.Stdin
	if inputFile != "" {
		file, err := os.Open(inputFile) // #nosec G304 - CLI tool reads user-specified input files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	tree, err := common.ReadASTJSON(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	c := checker.NewChecker()
	if !c.Check(tree) {
		c.ReportErrors(os.Stderr)
		os.Exit(1)
	}

	program, err := ast.FromNode(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting tree: %v\n", err)
		os.Exit(1)
	}

	bindings, diags := resolver.Resolve(program)
	if debug {
		fmt.Fprintf(os.Stderr, "Resolved %d local references.\n", bindings.Len())
		spew.Fdump(os.Stderr, bindings)
	}
	if diags.HasErrors() {
		diags.Print(os.Stderr)
		os.Exit(1)
	}

	annotated := ast.ToNode(program, bindings.Annotate)
	if src, ok := tree.Options[common.OptionSrc]; ok {
		annotated.Options[common.OptionSrc] = src
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile) // #nosec G304 - CLI tool writes to user-specified output files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		output = file
	}

	printFunc(annotated, "  ", output, &common.PrintOptions{
		TrimTokenOnOutput: trim,
		IncludeSpans:      !noSpans,
	})
}
