package jpegenc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteMarker(t *testing.T) {
	out := writeMarker(nil, 0xD9)
	require.Equal(t, []byte{0xFF, 0xD9}, out)
}

func TestWrite2Byte(t *testing.T) {
	out := write2Byte(nil, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, out)
}

func TestWriteFileHeader(t *testing.T) {
	out := writeFileHeader(nil)
	require.Equal(t, []byte{
		0xFF, 0xD8, // SOI
		0xFF, 0xE0, // APP0
		0x00, 0x10, // length 16
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, // version 1.01
		0x00,             // no density units
		0x00, 0x01, 0x00, 0x01, // Xdensity=1, Ydensity=1
		0x00, 0x00, // no thumbnail
	}, out)
}

func TestWriteQuantTableEmitsZigZagOrder(t *testing.T) {
	var qt quantTable
	for i := range qt.value {
		qt.value[i] = byte(i + 1)
	}
	out := writeQuantTable(nil, 0, &qt)
	require.Equal(t, byte(0xFF), out[0])
	require.Equal(t, byte(0xDB), out[1])
	require.Equal(t, byte(0x00), out[2])
	require.Equal(t, byte(blockSize+1+2), out[3])
	require.Equal(t, byte(0), out[4]) // table index
	for i := 0; i < blockSize; i++ {
		require.Equal(t, qt.value[zigzagToNatural[i]], out[5+i])
	}
	require.Len(t, out, 5+blockSize)
}

func TestWriteHuffmanTableDCVsAC(t *testing.T) {
	spec := standardHuffmanSpecs[huffDCLuminance]
	out := writeHuffmanTable(nil, 0, false, &spec)
	require.Equal(t, byte(0xFF), out[0])
	require.Equal(t, byte(0xC4), out[1])
	require.Equal(t, byte(0x00), out[4]) // class 0 (DC), index 0

	out = writeHuffmanTable(nil, 1, true, &spec)
	require.Equal(t, byte(0x11), out[4]) // class 1 (AC), index 1
}

func TestWriteHuffmanTableLength(t *testing.T) {
	spec := standardHuffmanSpecs[huffACLuminance]
	out := writeHuffmanTable(nil, 0, true, &spec)
	sum := 0
	for i := 1; i <= 16; i++ {
		sum += int(spec.bits[i])
	}
	wantLen := sum + 2 + 1 + 16
	require.Equal(t, byte(wantLen>>8), out[2])
	require.Equal(t, byte(wantLen), out[3])
	require.Len(t, out, 2+wantLen)
}

func TestWriteSOS(t *testing.T) {
	out := writeSOS(nil)
	require.Equal(t, []byte{
		0xFF, 0xDA,
		0x00, 0x0C, // length 12
		0x03,             // 3 components
		0x01, 0x00, // Y: DC table 0, AC table 0
		0x02, 0x11, // Cb: DC table 1, AC table 1
		0x03, 0x11, // Cr: DC table 1, AC table 1
		0x00, 0x3F, 0x00, // Ss, Se, Ah/Al
	}, out)
}

func TestWriteSOF(t *testing.T) {
	out := writeSOF(nil, 320, 240)
	require.Equal(t, []byte{
		0xFF, 0xC0,
		0x00, 0x11, // length 17
		0x08,       // 8-bit precision
		0x00, 0xF0, // height 240
		0x01, 0x40, // width 320
		0x03,             // 3 components
		0x01, 0x22, 0x00, // Y: 2h 2v, qtable 0
		0x02, 0x11, 0x01, // Cb: 1h 1v, qtable 1
		0x03, 0x11, 0x01, // Cr: 1h 1v, qtable 1
	}, out)
}

func TestWriteFrameHeaderOrdersQuantTablesThenSOF(t *testing.T) {
	var luma, chroma quantTable
	out := writeFrameHeader(nil, 64, 64, &luma, &chroma)
	require.Equal(t, byte(0xDB), out[1]) // first DQT
	dqtLen := blockSize + 1 + 2 // the DQT length field's own value, which already counts itself
	secondMarkerOffset := 2 + dqtLen
	require.Equal(t, byte(0xDB), out[secondMarkerOffset+1]) // second DQT
	sofOffset := secondMarkerOffset + 2 + dqtLen
	require.Equal(t, byte(0xC0), out[sofOffset+1])
}

func TestWriteEOI(t *testing.T) {
	require.Equal(t, []byte{0xFF, 0xD9}, writeEOI(nil))
}

func TestWriteScanHeaderOrderAndMarkerCount(t *testing.T) {
	out := writeScanHeader(nil)
	var markers []byte
	for i := 0; i+1 < len(out); i++ {
		if out[i] == 0xFF && out[i+1] != 0x00 {
			markers = append(markers, out[i+1])
		}
	}
	require.Equal(t, []byte{0xC4, 0xC4, 0xC4, 0xC4, 0xDA}, markers)
}
