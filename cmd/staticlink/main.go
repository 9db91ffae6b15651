package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/build"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/emit"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/manifest"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/probe"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/resolve"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/verify"
)

func main() {
	var (
		manifestFile = flag.String("manifest", "", "Manifest YAML (default: built-in FFmpeg stack)")
		targetStr    = flag.String("target", "x86_64-pc-windows-gnu", "Target triple")
		libDirs      = flag.String("libdirs", "", "Library search directories (comma-separated)")
		allowFile    = flag.String("allowlist", "", "Allow-list YAML for import verification")
		binaryPath   = flag.String("binary", "", "Built binary to verify (requires -allowlist)")
		cc           = flag.String("cc", "", "Compiler to probe (default: $CC, then cc)")
		verbose      = flag.Bool("v", false, "Verbose logging")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *binaryPath != "" && *allowFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: staticlink [-manifest file] [-target triple] [-libdirs d1,d2]")
		fmt.Fprintln(os.Stderr, "       staticlink -binary out.exe -allowlist allow.yaml  (verify mode)")
		fmt.Fprintln(os.Stderr, "       staticlink -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync()
	resolve.SetLogger(logger)
	probe.SetLogger(logger)
	emit.SetLogger(logger)
	verify.SetLogger(logger)

	opts := options{
		manifestFile: *manifestFile,
		target:       *targetStr,
		libDirs:      splitList(*libDirs),
		allowFile:    *allowFile,
		binaryPath:   *binaryPath,
		cc:           *cc,
		logger:       logger,
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	manifestFile string
	target       string
	libDirs      []string
	allowFile    string
	binaryPath   string
	cc           string
	logger       *zap.Logger
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (o options) pipeline() (*build.Pipeline, error) {
	target, err := velocut.ParseTarget(o.target)
	if err != nil {
		return nil, err
	}

	m := manifest.Default()
	if o.manifestFile != "" {
		m, err = manifest.Load(o.manifestFile)
		if err != nil {
			return nil, err
		}
	}

	cc := o.cc
	if cc == "" {
		cc = probe.DefaultCompiler()
	}

	return &build.Pipeline{
		Manifest:    m,
		Target:      target,
		SearchPaths: o.libDirs,
		Probe:       probe.NewCache(cc),
		Logger:      o.logger,
	}, nil
}

func run(o options) error {
	ctx := context.Background()

	p, err := o.pipeline()
	if err != nil {
		return err
	}

	stream, err := p.Plan(ctx)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	if v, err := p.Probe.Version(ctx); err == nil {
		fmt.Printf("Toolchain: %s %s\n", p.Probe.Compiler(), v)
	}
	fmt.Printf("Target: %s\n", p.Target)
	fmt.Printf("Directives: %d\n\n", len(stream))
	for _, d := range stream {
		fmt.Printf("  %s\n", d)
	}
	fmt.Println("\nAppend after all object inputs in the link invocation.")

	if o.binaryPath == "" {
		return nil
	}

	allow, err := verify.LoadAllowList(o.allowFile)
	if err != nil {
		return err
	}
	if err := p.VerifyBinary(o.binaryPath, allow); err != nil {
		return fmt.Errorf("verify %s: %w", o.binaryPath, err)
	}
	fmt.Printf("\n%s: all dynamic imports are allow-listed\n", o.binaryPath)
	return nil
}
