// Command trk2gpx converts a compressed tracker telemetry file into GPX.
//
// Usage:
//
//	trk2gpx [options] <file.trk|->
//
// Exit status is 0 on success, 1 when the input cannot be decoded and 2 on
// usage or I/O errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/arloliu/trkdecode"
	"github.com/arloliu/trkdecode/compress"
	"github.com/arloliu/trkdecode/gpx"
	"github.com/arloliu/trkdecode/internal/monitoring"
	"github.com/arloliu/trkdecode/track"
)

const (
	exitOK     = 0
	exitDecode = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "trk2gpx: %v\n", err)

		return exitUsage
	}

	prevLogf := monitoring.Logf
	defer func() { monitoring.Logf = prevLogf }()

	logger := log.New(stderr, "trk2gpx: ", 0)
	if cfg.quiet {
		monitoring.SetLogger(nil)
	} else {
		monitoring.SetLogger(logger.Printf)
	}

	raw, err := readInput(cfg.input, stdin)
	if err != nil {
		logger.Printf("%v", err)

		return exitUsage
	}

	data, err := decompressInput(raw, cfg)
	if err != nil {
		logger.Printf("%s: %v", cfg.input, err)

		return exitDecode
	}

	res, err := trkdecode.Decode(data, cfg.decoderOptions()...)
	if err != nil {
		logger.Printf("%s: %v", cfg.input, err)

		return exitDecode
	}

	tracks, err := selectTracks(res, cfg.tracks)
	if err != nil {
		logger.Printf("%s: %v", cfg.input, err)

		return exitDecode
	}

	if cfg.summary {
		for _, t := range tracks {
			logger.Printf("%s", formatSummary(t))
		}
	}

	w, err := gpx.NewWriter(gpx.WithTrackNames(cfg.names))
	if err != nil {
		logger.Printf("%v", err)

		return exitUsage
	}

	out, err := w.Marshal(tracks)
	if err != nil {
		logger.Printf("%v", err)

		return exitDecode
	}

	out, err = compress.Compress(out, cfg.outCompression)
	if err != nil {
		logger.Printf("compress output: %v", err)

		return exitDecode
	}

	if err := writeOutput(cfg.output, out, stdout); err != nil {
		logger.Printf("%v", err)

		return exitUsage
	}

	return exitOK
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

func decompressInput(raw []byte, cfg *config) ([]byte, error) {
	if cfg.inCompression == trkdecode.AutoDetect {
		data, _, err := compress.DecompressAuto(raw)

		return data, err
	}

	return compress.Decompress(raw, cfg.inCompression)
}

func selectTracks(res *track.Result, ids []string) ([]track.Track, error) {
	if len(ids) == 0 {
		return res.Tracks, nil
	}

	set := res.Set()
	out := make([]track.Track, 0, len(ids))
	for _, id := range ids {
		t, ok := set.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("track %q not found", id)
		}
		out = append(out, t)
	}

	return out, nil
}

func formatSummary(t track.Track) string {
	s := track.Summarize(t.Points)
	if s.Points == 0 {
		return fmt.Sprintf("track %q: no points", t.ID)
	}

	return fmt.Sprintf("track %q: %d points, %s to %s (%s), alt %.1f..%.1f m, speed max %.2f mean %.2f, distance %.1f m",
		t.ID, s.Points,
		s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339), s.Duration,
		s.MinAltitude, s.MaxAltitude, s.MaxSpeed, s.MeanSpeed, s.Distance)
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)

		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
