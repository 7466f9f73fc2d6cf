package main

import (
	"fmt"
	"io"
	"os"

	pflag "github.com/spf13/pflag"

	"github.com/spicery/lox-resolver/pkg/ast"
	"github.com/spicery/lox-resolver/pkg/bundler"
	"github.com/spicery/lox-resolver/pkg/common"
	"github.com/spicery/lox-resolver/pkg/parser"
	"github.com/spicery/lox-resolver/pkg/resolver"
	"github.com/spicery/lox-resolver/pkg/tokenizer"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `lox-compiler - integrated Lox front end

This command pipes together tokenization, parsing, resolution and bundling in
memory. The source, every resolved reference and every static error are
stored in a SQLite bundle. Settings may also be given in a YAML config file;
flags on the command line take precedence.

Usage:
  lox-compiler [options]

Options:
`

func main() {
	var showHelp, showVersion, debug bool
	var inputFile, bundleFile, configFile, treeFile, format string

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		pflag.PrintDefaults()
	}

	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.BoolVar(&showVersion, "version", false, "Show version")
	pflag.BoolVar(&debug, "debug", false, "Enable debug output to stderr")
	pflag.StringVarP(&inputFile, "input", "i", "", "Input file (required)")
	pflag.StringVar(&bundleFile, "bundle", "", "Bundle file path (required unless set in the config file)")
	pflag.StringVar(&configFile, "config", "", "YAML configuration file (optional)")
	pflag.StringVar(&treeFile, "tree", "", "Also write the annotated program tree to this file (optional)")
	pflag.StringVarP(&format, "format", "f", common.DEFAULT_FORMAT, "Format of the --tree output (JSON, YAML, ASCIITREE, DOT)")

	pflag.Parse()

	if showHelp {
		pflag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("lox-compiler version %s\n", Version)
		os.Exit(0)
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input flag instead.\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	config := common.DefaultConfig()
	if configFile != "" {
		loaded, err := common.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file '%s': %v\n", configFile, err)
			os.Exit(1)
		}
		config = loaded
	}
	if pflag.CommandLine.Changed("bundle") {
		config.Bundle = bundleFile
	}
	if pflag.CommandLine.Changed("debug") {
		config.Debug = debug
	}
	if pflag.CommandLine.Changed("format") {
		config.Print.Format = format
	}

	if inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --input flag is required\n")
		pflag.Usage()
		os.Exit(1)
	}
	if config.Bundle == "" {
		fmt.Fprintf(os.Stderr, "Error: --bundle flag is required\n")
		pflag.Usage()
		os.Exit(1)
	}

	file, err := os.Open(inputFile) // #nosec G304 - CLI tool reads user-specified input files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
		os.Exit(1)
	}
	inputBytes, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
	source := string(inputBytes)

	// Phase 1: Tokenization.
	tokens, err := tokenizer.NewTokenizer(source).Tokenize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tokenization error: %v\n", err)
		os.Exit(1)
	}
	if config.Debug {
		fmt.Fprintf(os.Stderr, "Read %d tokens.\n", len(tokens))
	}

	// Phase 2: Parsing.
	program, err := parser.NewParserFromTokens(tokens).Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}

	// Phase 3: Resolution.
	bindings, diags := resolver.Resolve(program)
	if config.Debug {
		fmt.Fprintf(os.Stderr, "Resolved %d local references, %d errors.\n", bindings.Len(), len(diags.Diagnostics()))
	}

	// Phase 4: Bundling.
	_, err = os.Stat(config.Bundle)
	fileExists := err == nil

	b, err := bundler.NewBundler(config.Bundle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create bundler: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	upToDate, err := b.CheckMigration()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to check migration status: %v\n", err)
		os.Exit(1)
	}

	if !upToDate {
		if fileExists {
			fmt.Fprintf(os.Stderr, "Error: database schema is not up to date. Please run migration separately.\n")
			os.Exit(1)
		}
		if err := b.Migrate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to migrate database: %v\n", err)
			os.Exit(1)
		}
		if config.Debug {
			fmt.Fprintf(os.Stderr, "Database initialized successfully.\n")
		}
	}

	if err := b.ProcessProgram(inputFile, source, program, bindings, diags.Diagnostics()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to process program: %v\n", err)
		os.Exit(1)
	}

	if diags.HasErrors() {
		diags.Print(os.Stderr)
		b.Close()
		os.Exit(1)
	}

	if treeFile != "" {
		printFunc, err := common.PickPrintFunc(config.Print.Format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		out, err := os.Create(treeFile) // #nosec G304 - CLI tool writes to user-specified output files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating tree file: %v\n", err)
			os.Exit(1)
		}
		tree := ast.ToNode(program, bindings.Annotate)
		tree.Options[common.OptionSrc] = inputFile
		printFunc(tree, config.Print.IndentString(), out, &config.Print)
		out.Close()
	}

	if config.Debug {
		fmt.Fprintf(os.Stderr, "Compilation completed successfully.\n")
	}
}
