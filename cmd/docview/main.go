// Command docview parses a heading-structured document and renders it to
// stdout or a file.
//
// Usage:
//
//	docview [-format text|outline|html] [-out path] [-allow-plain] [file]
//
// With no file argument, input is read from stdin and treated as markdown.
// Exit codes: 0 success, 1 parse failure, 2 unsupported format.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/docview/internal/doctree"
	"github.com/dgallion1/docview/internal/parser"
	"github.com/dgallion1/docview/internal/render"
)

const (
	exitOK                = 0
	exitParseFailure      = 1
	exitUnsupportedFormat = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("docview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", "text", "output format: text, outline, or html")
	outFlag := fs.String("out", "", "write output to a file instead of stdout")
	allowPlain := fs.Bool("allow-plain", false, "accept input without headings as a single section")
	if err := fs.Parse(args); err != nil {
		return exitParseFailure
	}

	format, err := render.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(stderr, "UnsupportedFormatError: %v\n", err)
		return exitUnsupportedFormat
	}

	doc, err := load(fs.Args(), stdin, parser.Options{AllowPlain: *allowPlain, PDFFallbackPdftotext: true})
	if err != nil {
		if errors.Is(err, parser.ErrNoHeadings) {
			fmt.Fprintf(stderr, "MalformedInputError: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "ParseError: %v\n", err)
		}
		return exitParseFailure
	}

	out, err := render.Render(doc, format)
	if err != nil {
		fmt.Fprintf(stderr, "UnsupportedFormatError: %v\n", err)
		return exitUnsupportedFormat
	}

	if *outFlag != "" {
		if err := os.WriteFile(*outFlag, []byte(out+"\n"), 0o644); err != nil {
			fmt.Fprintf(stderr, "WriteError: %v\n", err)
			return exitParseFailure
		}
		return exitOK
	}

	fmt.Fprintln(stdout, out)
	return exitOK
}

func load(args []string, stdin io.Reader, opts parser.Options) (*doctree.Document, error) {
	if len(args) == 0 {
		// Piped content has no extension; treat it as markdown.
		p := &parser.MarkdownParser{Options: opts}
		return p.Parse(stdin, "stdin.md")
	}

	path := args[0]
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, filepath.Base(path))
}
