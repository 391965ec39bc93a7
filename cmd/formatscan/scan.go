package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"formatscan/formats"
	"formatscan/internal/decode"
	"formatscan/internal/fsinput"
	"formatscan/internal/render"
	"formatscan/internal/telemetry"
	"formatscan/render/plaintext"
)

func cmdScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	path := fs.String("in", "", "path to the file to scan")
	pos := fs.Int64("pos", 0, "starting position")
	debug := fs.Bool("debug", false, "log decode cache activity to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("--in is required")
	}

	log := telemetry.Noop()
	if *debug {
		log = telemetry.New(os.Stderr, true)
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open %q: %w", *path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %q: %w", *path, err)
	}
	in := fsinput.FromReaderAt(*path, formatOrder(), f, info.Size())

	buf, err := in.CachedRead(*pos, minInt(int(in.Size()-*pos), 4096))
	if err != nil {
		return fmt.Errorf("read prefix: %w", err)
	}
	candidates := formats.Candidates(formats.All(), buf)
	if len(candidates) == 0 {
		return fmt.Errorf("no registered format matches %q at position %d", *path, *pos)
	}

	log.Info("selected format", map[string]any{"format": candidates[0].Format.Name(), "candidates": len(candidates)})

	res, err := decode.Decode(context.Background(), candidates[0].Format, in, *pos, log)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	r := plaintext.New(os.Stdout)
	if err := r.WritePreamble(); err != nil {
		return err
	}
	if err := render.Render(res, r); err != nil {
		return err
	}
	return r.WriteEpilogue()
}

func cmdDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	path := fs.String("in", "", "path to the file to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("--in is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open %q: %w", *path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %q: %w", *path, err)
	}
	in := fsinput.FromReaderAt(*path, formatOrder(), f, info.Size())

	buf, err := in.CachedRead(0, minInt(int(in.Size()), 4096))
	if err != nil {
		return fmt.Errorf("read prefix: %w", err)
	}
	for _, c := range formats.Candidates(formats.All(), buf) {
		fmt.Println(c.Format.Name())
	}
	return nil
}

// formatOrder is the byte order used to address raw file bytes before a
// candidate format (which may declare its own order) is even selected.
func formatOrder() binary.ByteOrder { return binary.BigEndian }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
