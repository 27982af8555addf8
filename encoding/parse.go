package encoding

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/format"
	"github.com/arloliu/trkdecode/internal/bitpack"
)

// Segment object keys.
const (
	keyType     = "type"
	keyEncoding = "encoding"
	keyBase     = "base"
	keySize     = "size"
	keyStep     = "step"
	keyBitwidth = "bitwidth"
	keyFactor   = "factor"
	keyData     = "data"
	keySigned   = "signed"
)

// ParseSegment validates one segment object and converts it to a typed Segment.
//
// Numbers may be json.Number (decoder with UseNumber) or float64 (plain Unmarshal).
// Integer keys ("size", "bitwidth") must hold integral values.
//
// Returns:
//   - Segment: FreqSegment or DiffSegment
//   - error: errs.ErrMissingField, errs.ErrUnsupportedEncoding or errs.ErrUnsupportedBitwidth
func ParseSegment(raw map[string]any) (Segment, error) {
	typeName, err := stringField(raw, keyType)
	if err != nil {
		return nil, err
	}
	if _, ok := format.ParseValueType(typeName); !ok {
		return nil, fmt.Errorf("%w: value type %q", errs.ErrUnsupportedEncoding, typeName)
	}

	encName, err := stringField(raw, keyEncoding)
	if err != nil {
		return nil, err
	}
	enc, ok := format.ParseEncoding(encName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, encName)
	}

	base, err := numberField(raw, keyBase)
	if err != nil {
		return nil, err
	}
	size, err := intField(raw, keySize)
	if err != nil {
		return nil, err
	}

	switch enc {
	case format.EncodingFreq:
		step, err := numberField(raw, keyStep)
		if err != nil {
			return nil, err
		}

		return FreqSegment{Base: base, Step: step, Count: size}, nil

	case format.EncodingBase64Diff:
		return parseDiff(raw, base, size)

	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, enc)
	}
}

func parseDiff(raw map[string]any, base float64, size int64) (Segment, error) {
	if v, present := raw[keySigned]; present {
		signed, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be a boolean", errs.ErrMissingField, keySigned)
		}
		if !signed {
			return nil, fmt.Errorf("%w: unsigned %s", errs.ErrUnsupportedEncoding, format.EncodingBase64Diff)
		}
	}

	width, err := intField(raw, keyBitwidth)
	if err != nil {
		return nil, err
	}
	if width != bitpack.Width8 && width != bitpack.Width12 {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedBitwidth, width)
	}

	factor, err := numberField(raw, keyFactor)
	if err != nil {
		return nil, err
	}
	data, err := stringField(raw, keyData)
	if err != nil {
		return nil, err
	}

	return DiffSegment{
		Base:     base,
		Factor:   factor,
		Bitwidth: int(width),
		Data:     data,
		Size:     size,
	}, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", errs.ErrMissingField, key, v)
	}

	return s, nil
}

func numberField(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrMissingField, key)
	}

	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", errs.ErrMissingField, key, err)
		}

		return f, nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %q must be a number, got %T", errs.ErrMissingField, key, v)
	}
}

func intField(raw map[string]any, key string) (int64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrMissingField, key)
	}

	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q must be an integer, got %s", errs.ErrMissingField, key, n)
		}

		return i, nil
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, fmt.Errorf("%w: %q must be an integer, got %v", errs.ErrMissingField, key, n)
		}

		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %q must be an integer, got %T", errs.ErrMissingField, key, v)
	}
}
