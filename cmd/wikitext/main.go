// Command wikitext is a thin CLI over the library: read a source
// file (or stdin), run the full pipeline, and print the resulting
// tree as wire JSON, with warnings summarized to stderr the way the
// teacher's main.go summarizes errors (src/esbuild/main/main.go's
// parseArgs/exitWithError shape, scaled down to this module's much
// smaller flag surface).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wikitext"
	"wikitext/internal/logger"
)

type cliArgs struct {
	debugIncludes bool
	logOptions    logger.StderrOptions
	entryPath     string
}

func (a *cliArgs) exitWithError(text string) {
	colorRed, colorBold, colorReset := "", "", ""
	if logger.GetTerminalInfo(os.Stderr).UseColorEscapes {
		colorRed, colorBold, colorReset = "\033[1;31m", "\033[0;1m", "\033[0m"
	}
	fmt.Fprintf(os.Stderr, "%serror: %s%s%s\n", colorRed, colorBold, text, colorReset)
	os.Exit(1)
}

func parseArgs() cliArgs {
	a := cliArgs{
		logOptions: logger.StderrOptions{IncludeSource: true, ErrorLimit: 10},
	}

	for _, arg := range os.Args[1:] {
		switch {
		case arg == "-h" || arg == "-help" || arg == "--help":
			fmt.Print(`Usage:
  wikitext [options] [file]

Reads wikitext source from file, or stdin if omitted, and prints the
parsed syntax tree as JSON.

Options:
  --debug-includes   Replace [[include ...]] directives with the page
                      reference instead of removing them
  --help             Show this message
`)
			os.Exit(0)

		case arg == "--debug-includes":
			a.debugIncludes = true

		case strings.HasPrefix(arg, "-"):
			a.exitWithError(fmt.Sprintf("invalid flag: %s", arg))

		default:
			if a.entryPath != "" {
				a.exitWithError("only one input file may be given")
			}
			a.entryPath = arg
		}
	}

	return a
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func main() {
	a := parseArgs()

	text, err := readInput(a.entryPath)
	if err != nil {
		a.exitWithError(fmt.Sprintf("failed to read input: %s", err))
	}

	prettyPath := a.entryPath
	if prettyPath == "" {
		prettyPath = "<stdin>"
	} else if abs, err := filepath.Abs(prettyPath); err == nil {
		prettyPath = abs
	}

	var includer wikitext.Includer = wikitext.NullIncluder
	if a.debugIncludes {
		includer = wikitext.DebugIncluder
	}

	resolved, _, err := wikitext.Include(text, includer)
	if err != nil {
		a.exitWithError(fmt.Sprintf("include resolution failed: %s", err))
	}

	// Warning spans index the preprocessed text, so that is the text the
	// logger renders source lines from.
	normalized := wikitext.Preprocess(resolved)
	tree, warnings := wikitext.Parse(wikitext.Tokenize(normalized), normalized)

	log := logger.NewStderrLog(a.logOptions)
	source := &logger.Source{PrettyPath: prettyPath, Contents: normalized}
	for _, w := range warnings {
		log.AddWarning(source, int(w.Span.Start), fmt.Sprintf("%s (%s)", w.Kind, w.RuleName))
	}
	log.Done()

	out, err := json.MarshalIndent(tree.Elements, "", "  ")
	if err != nil {
		a.exitWithError(fmt.Sprintf("failed to marshal tree: %s", err))
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")
}
