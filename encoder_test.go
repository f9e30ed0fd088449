package jpegenc

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidRGB(width, height int, r, g, b byte) []byte {
	buf := make([]byte, 3*width*height)
	for i := 0; i < width*height; i++ {
		buf[3*i], buf[3*i+1], buf[3*i+2] = r, g, b
	}
	return buf
}

func TestNewEncoderDefaultsQuality(t *testing.T) {
	enc := NewEncoder(nil, nil)
	require.Equal(t, DefaultQuality, enc.quality)
}

func TestNewEncoderClampsQuality(t *testing.T) {
	low := NewEncoder(nil, &Options{Quality: -5})
	require.Equal(t, 1, low.quality)
	high := NewEncoder(nil, &Options{Quality: 500})
	require.Equal(t, 100, high.quality)
}

func TestEncodeRejectsZeroDimensions(t *testing.T) {
	enc := NewEncoder(nil, nil)
	err := enc.Encode(solidRGB(1, 1, 0, 0, 0), 0, 1, io.Discard)
	require.Error(t, err)
	var jerr *Error
	require.True(t, errors.As(err, &jerr))
	require.Equal(t, InvalidArgs, jerr.Code)
}

func TestEncodeRejectsMismatchedBufferLength(t *testing.T) {
	enc := NewEncoder(nil, nil)
	err := enc.Encode(make([]byte, 5), 4, 4, io.Discard)
	require.Error(t, err)
	var jerr *Error
	require.True(t, errors.As(err, &jerr))
	require.Equal(t, InvalidArgs, jerr.Code)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWrapsSinkWriteFailure(t *testing.T) {
	enc := NewEncoder(nil, nil)
	err := enc.Encode(solidRGB(8, 8, 128, 128, 128), 8, 8, failingWriter{})
	require.Error(t, err)
	var jerr *Error
	require.True(t, errors.As(err, &jerr))
	require.Equal(t, IoFailure, jerr.Code)
}

func TestEncodeProducesWellFormedContainer(t *testing.T) {
	enc := NewEncoder(nil, nil)
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(solidRGB(16, 16, 60, 120, 200), 16, 16, &buf))
	out := buf.Bytes()

	require.True(t, len(out) > 4)
	require.Equal(t, []byte{0xFF, 0xD8}, out[:2]) // SOI
	require.Equal(t, []byte{0xFF, 0xD9}, out[len(out)-2:]) // EOI

	var markerCounts = map[byte]int{}
	for i := 0; i+1 < len(out); i++ {
		if out[i] != 0xFF {
			continue
		}
		m := out[i+1]
		if m == 0x00 || m == 0xFF {
			continue // stuffed byte or fill byte, not a marker
		}
		markerCounts[m]++
	}
	require.Equal(t, 1, markerCounts[0xE0]) // APP0
	require.Equal(t, 2, markerCounts[0xDB]) // DQT x2
	require.Equal(t, 4, markerCounts[0xC4]) // DHT x4
	require.Equal(t, 1, markerCounts[0xC0]) // SOF0
	require.Equal(t, 1, markerCounts[0xDA]) // SOS
}

func TestEncodeIsDeterministic(t *testing.T) {
	enc := NewEncoder(nil, nil)
	rgb := solidRGB(20, 11, 17, 200, 90)
	var a, b bytes.Buffer
	require.NoError(t, enc.Encode(rgb, 20, 11, &a))
	require.NoError(t, enc.Encode(rgb, 20, 11, &b))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncodeSinglePixelImage(t *testing.T) {
	enc := NewEncoder(nil, nil)
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(solidRGB(1, 1, 255, 0, 0), 1, 1, &buf))
	out := buf.Bytes()
	require.Equal(t, []byte{0xFF, 0xD8}, out[:2])
	require.Equal(t, []byte{0xFF, 0xD9}, out[len(out)-2:])
}

func TestEncodeNonMultipleOfSixteenDimensions(t *testing.T) {
	enc := NewEncoder(nil, nil)
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(solidRGB(17, 33, 10, 20, 30), 17, 33, &buf))
	out := buf.Bytes()
	require.Equal(t, []byte{0xFF, 0xD8}, out[:2])
	require.Equal(t, []byte{0xFF, 0xD9}, out[len(out)-2:])
}

func TestEncodeWithBackendNilFallsBackToConfigured(t *testing.T) {
	enc := NewEncoder(nil, nil)
	rgb := solidRGB(16, 16, 5, 6, 7)
	var a, b bytes.Buffer
	require.NoError(t, enc.Encode(rgb, 16, 16, &a))
	require.NoError(t, enc.EncodeWithBackend(nil, rgb, 16, 16, &b))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestEncodeWithBackendUsesGivenBackend(t *testing.T) {
	enc := NewEncoder(nil, nil)
	rgb := solidRGB(16, 16, 1, 2, 3)
	var a, b bytes.Buffer
	require.NoError(t, enc.Encode(rgb, 16, 16, &a))
	require.NoError(t, enc.EncodeWithBackend(newCPUBackend(), rgb, 16, 16, &b))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestFixupEdgeDCCopiesY1IntoY2Y3OnShortBottomRow(t *testing.T) {
	grid := newBlockGrid(16, 17) // nsbh=2, bottom MCU row has 1 real block row
	yCoef := make([][4][blockSize]int16, grid.mcuCount())
	bottom := grid.nsbh - 1
	for gx := 0; gx < grid.nsbw; gx++ {
		idx := bottom*grid.nsbw + gx
		yCoef[idx][1][0] = 42
	}
	fixupEdgeDC(yCoef, grid)
	for gx := 0; gx < grid.nsbw; gx++ {
		idx := bottom*grid.nsbw + gx
		require.Equal(t, int16(42), yCoef[idx][2][0])
		require.Equal(t, int16(42), yCoef[idx][3][0])
	}
}

func TestFixupEdgeDCNoOpWhenBottomRowFullyReal(t *testing.T) {
	grid := newBlockGrid(16, 32) // nsbh=2, both block rows of bottom MCU row real
	yCoef := make([][4][blockSize]int16, grid.mcuCount())
	for gx := 0; gx < grid.nsbw; gx++ {
		idx := (grid.nsbh-1)*grid.nsbw + gx
		yCoef[idx][1][0] = 99
	}
	fixupEdgeDC(yCoef, grid)
	for gx := 0; gx < grid.nsbw; gx++ {
		idx := (grid.nsbh-1)*grid.nsbw + gx
		require.Equal(t, int16(0), yCoef[idx][2][0])
		require.Equal(t, int16(0), yCoef[idx][3][0])
	}
}
