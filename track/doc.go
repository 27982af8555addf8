// Package track assembles decoded channels into ordered point sequences.
//
// A track document maps opaque track identifiers to a declared point count and five
// channels (alt, lat, lon, speed, time), each described by encoding.Segment lists.
// Decoding proceeds in three stages:
//
//  1. ParseDocument strips the onTrackReady(...) envelope and validates the JSON tree
//     into typed TrackRecords.
//  2. Decoder decodes each channel and Assemble distributes the samples into Points,
//     reporting channel length mismatches as Diagnostics.
//  3. Tracks are ordered by floor of their first point's time.
//
// Example:
//
//	dec, err := track.NewDecoder(track.WithStrictLengths(false))
//	if err != nil {
//	    return err
//	}
//	res, err := dec.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics {
//	    log.Print(d)
//	}
//	for _, tr := range res.Tracks {
//	    fmt.Println(tr.ID, len(tr.Points))
//	}
package track
