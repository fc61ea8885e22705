// Package main provides the CLI entry point for mpplc, the MPPL
// front-end toolchain: lex, parse, resolve, and type-check a source
// file, then render any diagnostics to stderr.
//
// Usage:
//
//	mpplc input.mpl
//	mpplc -debug input.mpl
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mppl-lang/mpplc/render"
	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/session"
	"github.com/mppl-lang/mpplc/source"
)

func main() {
	debug := flag.Bool("debug", false, "log internal compiler state to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: mpplc [-debug] <input.mpl>")
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *debug); err != nil {
		fmt.Fprintf(os.Stderr, "mpplc: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string, debug bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", inputPath, err)
	}

	cfg, err := loadConfig(configPath(inputPath))
	if err != nil {
		return fmt.Errorf("cannot read config: %w", err)
	}

	src := source.New(inputPath, string(data))
	sess, reports := session.Compile(src)
	if debug {
		log.Printf("mpplc: compiled %s: root=%v reports=%d", inputPath, sess.Root != nil, len(reports))
	}

	render.RenderAll(os.Stderr, cfg.styleMode(), reports, src, cfg.TabWidth)

	if report.HasErrors(reports) {
		os.Exit(1)
	}
	return nil
}

// configPath looks for .mpplrc.toml alongside the input file.
func configPath(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), ".mpplrc.toml")
}
