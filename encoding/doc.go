// Package encoding reconstructs floating-point channel samples from segment descriptions.
//
// A channel (altitude, latitude, longitude, speed or time) is described by an ordered
// list of segments. Each segment declares how a contiguous run of samples is encoded:
//
//   - freq: an arithmetic series. Emits size samples base, base+step, base+2*step, ...
//     computed by repeated addition.
//   - base64/diff: a base64 string carrying bit-packed signed deltas. Emits base followed
//     by one running sum per unpacked integer, each integer sign-extended and scaled by factor.
//
// # Parsing
//
// ParseSegment converts one segment object from a generic JSON tree (as produced by
// encoding/json with UseNumber) into a typed Segment, validating every key on the way.
// Absent or mistyped parameters yield errs.ErrMissingField; an unknown encoding name or
// value type yields errs.ErrUnsupportedEncoding; a bitwidth other than 8 or 12 yields
// errs.ErrUnsupportedBitwidth.
//
// # Decoding
//
//	segs := make([]encoding.Segment, 0, len(raw))
//	for _, r := range raw {
//	    seg, err := encoding.ParseSegment(r)
//	    if err != nil {
//	        return err
//	    }
//	    segs = append(segs, seg)
//	}
//	values, err := encoding.DecodeChannel(segs)
//
// Segment outputs are concatenated in declared order. Any failing segment fails the
// whole channel; no partial output is returned, since dropping samples would shift
// every later sample out of alignment with the other channels.
package encoding
