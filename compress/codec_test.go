package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/trkdecode/errs"
	"github.com/arloliu/trkdecode/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
	format.CompressionGzip,
}

func samplePayload(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`onTrackReady({"tracks":{`)
	for i := range n {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `"t%d":{"size":3,"lat":[{"type":"double","encoding":"freq","base":%d.5,"step":0.001,"size":3}]}`, i, i)
	}
	sb.WriteString("}});")

	return []byte(sb.String())
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "input")
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7f), "output")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid output compression")
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported compression type")
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	for _, size := range []int{1, 10, 1000} {
		payload := samplePayload(size)
		for _, ct := range allTypes {
			t.Run(fmt.Sprintf("%s/%d", ct, size), func(t *testing.T) {
				compressed, err := Compress(payload, ct)
				require.NoError(t, err)

				restored, err := Decompress(compressed, ct)
				require.NoError(t, err)
				require.Equal(t, payload, restored)
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		out, err := codec.Decompress(nil)
		require.NoError(t, err, ct.String())
		require.Empty(t, out)
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0x28, 0xB5, 0x2F, 0xFD, 0xFF, 0xFF, 0x00, 0x01, 0x02}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionGzip, format.CompressionS2} {
		_, err := Decompress(garbage, ct)
		require.Error(t, err, ct.String())
		require.Contains(t, err.Error(), ct.String()+" input")
	}
}

func TestGzipCompressor_MagicBytes(t *testing.T) {
	out, err := NewGzipCompressor().Compress([]byte("hello"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte{0x1F, 0x8B}))
}

func TestZstdCompressor_MagicBytes(t *testing.T) {
	out, err := NewZstdCompressor().Compress([]byte("hello"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte{0x28, 0xB5, 0x2F, 0xFD}))
}

func TestNoOpCompressor_SharesMemory(t *testing.T) {
	data := []byte("abc")
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestLZ4Compressor_HighExpansion(t *testing.T) {
	payload := bytes.Repeat([]byte{'a'}, 1<<20)
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed)*4, len(payload))

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func TestDecompressAuto(t *testing.T) {
	payload := samplePayload(5)

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionGzip} {
		compressed, err := Compress(payload, ct)
		require.NoError(t, err)

		restored, detected, err := DecompressAuto(compressed)
		require.NoError(t, err)
		require.Equal(t, ct, detected)
		require.Equal(t, payload, restored)
	}
}

func TestDecompressAuto_CorruptGzip(t *testing.T) {
	_, detected, err := DecompressAuto([]byte{0x1F, 0x8B, 0x00})
	require.Error(t, err)
	require.Equal(t, format.CompressionGzip, detected)
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	payload := samplePayload(50)

	var wg sync.WaitGroup
	errCh := make(chan error, len(allTypes)*8)
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				compressed, err := codec.Compress(payload)
				if err != nil {
					errCh <- err

					return
				}
				restored, err := codec.Decompress(compressed)
				if err != nil {
					errCh <- err

					return
				}
				if !bytes.Equal(payload, restored) {
					errCh <- fmt.Errorf("%s: round trip mismatch", ct)
				}
			}()
		}
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
}

func withDecompressLimit(t *testing.T, n int) {
	t.Helper()

	orig := decompressLimit
	decompressLimit = n
	t.Cleanup(func() { decompressLimit = orig })
}

func TestCodecs_DecompressLimit(t *testing.T) {
	payload := samplePayload(40)

	for _, ct := range []format.CompressionType{format.CompressionS2, format.CompressionLZ4, format.CompressionGzip} {
		t.Run(ct.String(), func(t *testing.T) {
			compressed, err := Compress(payload, ct)
			require.NoError(t, err)

			withDecompressLimit(t, len(payload))
			restored, err := Decompress(compressed, ct)
			require.NoError(t, err)
			require.Equal(t, payload, restored)

			withDecompressLimit(t, len(payload)-1)
			_, err = Decompress(compressed, ct)
			require.ErrorIs(t, err, errs.ErrInputTooLarge)
		})
	}
}

func TestS2Compressor_Decompress_OversizedHeader(t *testing.T) {
	forged := binary.AppendUvarint(nil, uint64(MaxDecompressedSize)+1)
	forged = append(forged, 0x00)

	_, err := NewS2Compressor().Decompress(forged)
	require.ErrorIs(t, err, errs.ErrInputTooLarge)
}
