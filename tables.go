package jpegenc

// blockSize is the number of samples in one 8x8 DCT block.
const blockSize = 64

// zigzagToNatural maps a zig-zag scan position to its natural
// (row-major) index within an 8x8 block. Position 0 is the DC term.
// Values 1..63 are the AC walk order used by both the entropy coder's
// run-length scan and the container writer's DQT export.
var zigzagToNatural = [blockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// naturalToZigzag is the inverse of zigzagToNatural, computed once at
// package init. No code in the package reads it: the
// container writer emits the DQT in zig-zag order by indexing the
// natural-order table through zigzagToNatural.
var naturalToZigzag [blockSize]int

func init() {
	for zig, nat := range zigzagToNatural {
		naturalToZigzag[nat] = zig
	}
}

// nbitsTable[v] is the number of bits needed to represent the unsigned
// value v, for v in [0,255]. Used both to size AC/DC magnitude fields
// and, via compute_reciprocal's `b = nbits(q8) - 1`, to build the
// fast-divide reciprocal quads.
var nbitsTable = [256]byte{
	0, 1, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4,
	5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
	8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
}

// nbits returns the number of bits needed to represent |v|, for v of
// any magnitude the encoder ever produces (DC/AC coefficients up to
// 16 bits, quantization divisors up to 3925). It extends nbitsTable's
// 8-bit range by splitting v into bytes, the same trick progjpeg's
// emitHuffRLE uses for its bitCount table.
func nbits(v int32) int {
	if v < 0 {
		v = -v
	}
	switch {
	case v < 0x100:
		return int(nbitsTable[v])
	case v < 0x10000:
		return 8 + int(nbitsTable[v>>8])
	default:
		return 16 + int(nbitsTable[v>>16])
	}
}

// quantIndex selects between the two quantization tables this encoder
// ever builds: one for luma, one shared by Cb and Cr.
type quantIndex int

const (
	quantLuminance quantIndex = iota
	quantChrominance
	numQuantTables
)

// baseQuantTable holds the unscaled Annex K quantization tables, in
// natural (row-major) order. buildQuantTable (quant.go) scales a
// copy of these by the quality factor.
var baseQuantTable = [numQuantTables][blockSize]byte{
	quantLuminance: {
		16, 11, 10, 16, 24, 40, 51, 61,
		12, 12, 14, 19, 26, 58, 60, 55,
		14, 13, 16, 24, 40, 57, 69, 56,
		14, 17, 22, 29, 51, 87, 80, 62,
		18, 22, 37, 56, 68, 109, 103, 77,
		24, 35, 55, 64, 81, 104, 113, 92,
		49, 64, 78, 87, 103, 121, 120, 101,
		72, 92, 95, 98, 112, 100, 103, 99,
	},
	quantChrominance: {
		17, 18, 24, 47, 99, 99, 99, 99,
		18, 21, 26, 66, 99, 99, 99, 99,
		24, 26, 56, 99, 99, 99, 99, 99,
		47, 66, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
	},
}

// huffIndex selects one of the four canonical Huffman table slots.
type huffIndex int

const (
	huffDCLuminance huffIndex = iota
	huffACLuminance
	huffDCChrominance
	huffACChrominance
	numHuffTables
)

// huffmanSpec is a (BITS, VALUES) pair as laid out in Annex C.
type huffmanSpec struct {
	// bits[i] (i in 1..16) is the count of codes of length i.
	// bits[0] is reserved and always 0.
	bits [17]byte
	// values lists the symbols in canonical order; len(values) == sum(bits).
	values []byte
}

// standardHuffmanSpecs are the Annex K.3 Huffman specifications. Every
// encoder built by this package uses these tables; there is no support
// for custom Huffman tables.
var standardHuffmanSpecs = [numHuffTables]huffmanSpec{
	huffDCLuminance: {
		bits:   [17]byte{0, 0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		values: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	},
	huffACLuminance: {
		bits: [17]byte{0, 0, 2, 1, 3, 3, 2, 4, 3, 5, 5, 4, 4, 0, 0, 1, 125},
		values: []byte{
			0x01, 0x02, 0x03, 0x00, 0x04, 0x11, 0x05, 0x12,
			0x21, 0x31, 0x41, 0x06, 0x13, 0x51, 0x61, 0x07,
			0x22, 0x71, 0x14, 0x32, 0x81, 0x91, 0xa1, 0x08,
			0x23, 0x42, 0xb1, 0xc1, 0x15, 0x52, 0xd1, 0xf0,
			0x24, 0x33, 0x62, 0x72, 0x82, 0x09, 0x0a, 0x16,
			0x17, 0x18, 0x19, 0x1a, 0x25, 0x26, 0x27, 0x28,
			0x29, 0x2a, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
			0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
			0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
			0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
			0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79,
			0x7a, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89,
			0x8a, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
			0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6,
			0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3, 0xc4, 0xc5,
			0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2, 0xd3, 0xd4,
			0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xe1, 0xe2,
			0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea,
			0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
	huffDCChrominance: {
		bits:   [17]byte{0, 0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		values: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	},
	huffACChrominance: {
		bits: [17]byte{0, 0, 2, 1, 2, 4, 4, 3, 4, 7, 5, 4, 4, 0, 1, 2, 119},
		values: []byte{
			0x00, 0x01, 0x02, 0x03, 0x11, 0x04, 0x05, 0x21,
			0x31, 0x06, 0x12, 0x41, 0x51, 0x07, 0x61, 0x71,
			0x13, 0x22, 0x32, 0x81, 0x08, 0x14, 0x42, 0x91,
			0xa1, 0xb1, 0xc1, 0x09, 0x23, 0x33, 0x52, 0xf0,
			0x15, 0x62, 0x72, 0xd1, 0x0a, 0x16, 0x24, 0x34,
			0xe1, 0x25, 0xf1, 0x17, 0x18, 0x19, 0x1a, 0x26,
			0x27, 0x28, 0x29, 0x2a, 0x35, 0x36, 0x37, 0x38,
			0x39, 0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
			0x49, 0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58,
			0x59, 0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
			0x69, 0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78,
			0x79, 0x7a, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
			0x88, 0x89, 0x8a, 0x92, 0x93, 0x94, 0x95, 0x96,
			0x97, 0x98, 0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5,
			0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4,
			0xb5, 0xb6, 0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3,
			0xc4, 0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2,
			0xd3, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda,
			0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9,
			0xea, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		},
	},
}

// AA&N (Arai-Agui-Nakajima) fast integer forward DCT constants, as
// used by IJG's jpeg_fdct_ifast. CONST_BITS governs the fixed-point
// multiplies in fdctAAN: each product with a constant is shifted right
// by aanConstBits.
const aanConstBits = 8

const (
	fix0_382683433 int32 = 98
	fix0_541196100 int32 = 139
	fix0_707106781 int32 = 181
	fix1_306562965 int32 = 334
)

// aanScaleFactor[k] is the per-axis AA&N output scale factor for DCT
// frequency k. fdctAAN's raw output at natural index row*8+col is scaled
// by aanScaleFactor[row]*aanScaleFactor[col] relative to the uniform
// "times 8" scale the reciprocal quantizer expects; buildQuantTable
// (quant.go) folds this factor directly into each position's reciprocal
// quad divisor, so fdctAAN's raw output can be quantized with no
// separate descale step.
var aanScaleFactor = [8]float64{
	1.0, 1.387039845, 1.306562965, 1.175875602,
	1.0, 0.785694958, 0.541196100, 0.275899379,
}
