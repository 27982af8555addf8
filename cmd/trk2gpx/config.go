package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arloliu/trkdecode"
	"github.com/arloliu/trkdecode/format"
	"github.com/arloliu/trkdecode/track"
)

const autoCompression = "auto"

var errUsage = errors.New("usage")

// trackList collects repeated -track flags.
type trackList []string

func (l *trackList) String() string {
	return strings.Join(*l, ",")
}

func (l *trackList) Set(v string) error {
	if v == "" {
		return errors.New("empty track id")
	}
	*l = append(*l, v)

	return nil
}

type config struct {
	input          string
	output         string
	inCompression  format.CompressionType
	outCompression format.CompressionType
	strict         bool
	keepEmpty      bool
	maxPoints      int
	summary        bool
	quiet          bool
	names          bool
	tracks         trackList
}

func (c *config) decoderOptions() []track.DecoderOption {
	policy := track.EmptyTrackSkip
	if c.keepEmpty {
		policy = track.EmptyTrackKeep
	}

	return []track.DecoderOption{
		track.WithStrictLengths(c.strict),
		track.WithMaxPoints(c.maxPoints),
		track.WithEmptyTrackPolicy(policy),
	}
}

// parseConfig parses command-line arguments. Errors wrap errUsage; -h yields flag.ErrHelp.
func parseConfig(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("trk2gpx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.output, "o", "", "output GPX path (default stdout)")
	inComp := fs.String("in-compression", autoCompression, "input compression: auto|none|zstd|s2|lz4|gzip")
	outComp := fs.String("out-compression", autoCompression, "output compression: auto|none|zstd|s2|lz4|gzip (auto picks by -o extension)")
	fs.BoolVar(&cfg.strict, "strict", false, "fail on channel length mismatches")
	fs.BoolVar(&cfg.keepEmpty, "keep-empty", false, "write tracks without points")
	fs.IntVar(&cfg.maxPoints, "max-points", track.DefaultMaxPoints, "largest accepted track size")
	fs.BoolVar(&cfg.summary, "summary", false, "print per-track summaries to stderr")
	fs.BoolVar(&cfg.quiet, "q", false, "suppress diagnostics")
	fs.BoolVar(&cfg.names, "names", false, "write track IDs as GPX <name> elements")
	fs.Var(&cfg.tracks, "track", "only write the track with this ID (repeatable)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: trk2gpx [options] <file.trk|->\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() != 1 {
		fs.Usage()

		return nil, fmt.Errorf("%w: expected exactly one input file, got %d", errUsage, fs.NArg())
	}
	cfg.input = fs.Arg(0)

	if cfg.maxPoints <= 0 {
		return nil, fmt.Errorf("%w: -max-points must be positive", errUsage)
	}

	var err error
	if cfg.inCompression, err = parseCompressionFlag(*inComp, ""); err != nil {
		return nil, fmt.Errorf("%w: -in-compression: %w", errUsage, err)
	}
	if cfg.outCompression, err = parseCompressionFlag(*outComp, cfg.output); err != nil {
		return nil, fmt.Errorf("%w: -out-compression: %w", errUsage, err)
	}
	if cfg.outCompression == trkdecode.AutoDetect {
		cfg.outCompression = format.CompressionNone
	}

	return cfg, nil
}

// parseCompressionFlag maps a flag value to a compression type. For "auto" the
// type is taken from path's extension when path is set, and is otherwise
// trkdecode.AutoDetect.
func parseCompressionFlag(value, path string) (format.CompressionType, error) {
	if !strings.EqualFold(value, autoCompression) {
		return format.ParseCompression(value)
	}
	if path == "" {
		return trkdecode.AutoDetect, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return format.CompressionZstd, nil
	case ".gz":
		return format.CompressionGzip, nil
	case ".lz4":
		return format.CompressionLZ4, nil
	case ".s2":
		return format.CompressionS2, nil
	default:
		return format.CompressionNone, nil
	}
}
