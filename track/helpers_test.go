package track

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/trkdecode/internal/monitoring"
)

func freqSeg(base, step float64, size int) string {
	return fmt.Sprintf(`{"type":"double","encoding":"freq","base":%v,"size":%d,"step":%v}`, base, size, step)
}

func diffSeg(base, factor float64, bitwidth int, data string, size int) string {
	return fmt.Sprintf(`{"type":"double","encoding":"base64/diff","base":%v,"size":%d,"bitwidth":%d,"factor":%v,"data":%q,"signed":true}`,
		base, size, bitwidth, factor, data)
}

func channel(segs ...string) string {
	return `{"segments":[` + strings.Join(segs, ",") + `]}`
}

// trackJSON builds a track body; fields maps channel keys to channel JSON.
func trackJSON(size int, fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for name, ch := range fields {
		parts = append(parts, fmt.Sprintf("%q:%s", name, ch))
	}

	return fmt.Sprintf(`{"size":%d,"data":{%s}}`, size, strings.Join(parts, ","))
}

// uniformTrack builds a complete n-point track whose time starts at t0 with 1s spacing.
func uniformTrack(n int, t0 float64) string {
	return trackJSON(n, map[string]string{
		"alt":   channel(freqSeg(1000, 1, n)),
		"lat":   channel(freqSeg(46, 0.001, n)),
		"lon":   channel(freqSeg(7, 0.001, n)),
		"speed": channel(freqSeg(2, 0, n)),
		"time":  channel(freqSeg(t0, 1, n)),
	})
}

func envelope(tracks ...string) string {
	return "onTrackReady({" + strings.Join(tracks, ",") + "})"
}

func entry(id, body string) string {
	return fmt.Sprintf("%q:%s", id, body)
}

func quietDecoder(t *testing.T, opts ...DecoderOption) *Decoder {
	t.Helper()

	dec, err := NewDecoder(append([]DecoderOption{WithLogf(nil)}, opts...)...)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	return dec
}

func muteMonitoring(t *testing.T) {
	t.Helper()

	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = orig })
}
