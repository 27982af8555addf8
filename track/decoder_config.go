package track

import (
	"fmt"

	"github.com/arloliu/trkdecode/internal/monitoring"
	"github.com/arloliu/trkdecode/internal/options"
)

// DefaultMaxPoints bounds the declared size of a single track.
const DefaultMaxPoints = 10_000_000

// EmptyTrackPolicy selects how tracks without points are ordered.
type EmptyTrackPolicy uint8

const (
	// EmptyTrackSkip leaves empty tracks out of the ordered output and reports an EmptyTrack diagnostic.
	EmptyTrackSkip EmptyTrackPolicy = iota
	// EmptyTrackKeep keeps empty tracks, ordered with a sort key of 0.
	EmptyTrackKeep
)

// DecoderConfig holds the decoder settings applied by DecoderOption values.
type DecoderConfig struct {
	strictLengths bool
	maxPoints     int
	emptyPolicy   EmptyTrackPolicy
	logf          func(format string, v ...any)
}

func defaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		maxPoints:   DefaultMaxPoints,
		emptyPolicy: EmptyTrackSkip,
		logf:        monitoring.Printf,
	}
}

// DecoderOption represents a functional option for configuring the DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// WithStrictLengths turns channel length mismatches into errs.ErrLengthMismatch failures.
// By default a mismatch is only reported as a diagnostic.
func WithStrictLengths(strict bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.strictLengths = strict
	})
}

// WithMaxPoints sets the largest track size the decoder accepts. It also bounds the
// number of samples any single channel may decode to.
func WithMaxPoints(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("max points must be positive, got %d", n)
		}
		c.maxPoints = n

		return nil
	})
}

// WithEmptyTrackPolicy selects how tracks without points are handled.
func WithEmptyTrackPolicy(p EmptyTrackPolicy) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if p != EmptyTrackSkip && p != EmptyTrackKeep {
			return fmt.Errorf("invalid empty track policy: %d", p)
		}
		c.emptyPolicy = p

		return nil
	})
}

// WithLogf sets the function each diagnostic is logged through. Passing nil disables logging.
// The default logs through the package-level monitoring logger.
func WithLogf(f func(format string, v ...any)) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if f == nil {
			f = func(string, ...any) {}
		}
		c.logf = f
	})
}
