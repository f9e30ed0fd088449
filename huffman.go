package jpegenc

// derivedHuffmanTable maps an 8-bit symbol (a coefficient's bit-length
// category, or the combined run/size byte for AC) to its canonical
// Huffman code and bit length. Unlike progjpeg's packed
// (length<<24|code) word, this keeps them as two parallel arrays, matching
// jpeg_encoder.cpp's derived_huffman_table split code/length layout.
type derivedHuffmanTable struct {
	code   [256]uint32
	length [256]byte
}

// deriveHuffmanTable builds a canonical Huffman code assignment from a
// BITS/VALUES pair (Annex C Figures C.1-C.3): BITS[l] gives the count of
// symbols with code length l (1..16), VALUES lists the symbols in
// ascending-code order. Assigned code lengths are structurally bounded
// by huffsize's byte values taken from l in [1,16]; what can't be
// bounded that way is the code value itself, so this panics if a BITS
// distribution packs more symbols into a length than that length's code
// space holds, which can only happen for a malformed spec (never for
// the four standard tables in tables.go).
func deriveHuffmanTable(spec huffmanSpec) derivedHuffmanTable {
	var huffsize [257]byte
	p := 0
	for l := 1; l <= 16; l++ {
		for i := 0; i < int(spec.bits[l]); i++ {
			huffsize[p] = byte(l)
			p++
		}
	}
	lastp := p
	huffsize[lastp] = 0

	var huffcode [257]uint32
	code := uint32(0)
	si := huffsize[0]
	p = 0
	for huffsize[p] != 0 {
		for huffsize[p] == si {
			if code >= uint32(1)<<si {
				panic("jpegenc: huffman code overflowed its bit length")
			}
			huffcode[p] = code
			code++
			p++
		}
		code <<= 1
		si++
	}

	var dt derivedHuffmanTable
	for p = 0; p < lastp; p++ {
		sym := spec.values[p]
		dt.code[sym] = huffcode[p]
		dt.length[sym] = huffsize[p]
	}
	return dt
}

// buildHuffmanTables derives all four canonical tables (DC/AC x
// luminance/chrominance) from standardHuffmanSpecs, in huffIndex order.
func buildHuffmanTables() [numHuffTables]derivedHuffmanTable {
	var tbls [numHuffTables]derivedHuffmanTable
	for i, spec := range standardHuffmanSpecs {
		tbls[i] = deriveHuffmanTable(spec)
	}
	return tbls
}
