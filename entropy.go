package jpegenc

// bitWriter is the serial bit-packing state threaded across an entire
// scan: a shift-register buffer, its fill count, and the byte sink.
// Ported from jpeg_encoder.cpp's PUT_BITS/EMIT_BITS/EMIT_CODE/
// CHECKBUF15 macros (credited there to libjpeg-turbo).
type bitWriter struct {
	out    []byte
	buffer uint64
	bits   int
}

// emitByte pulls the top 8 bits off the buffer and appends them to out,
// doubling any 0xFF byte per the JPEG bitstream's stuffing rule.
func (w *bitWriter) emitByte() {
	w.bits -= 8
	c := byte(w.buffer >> uint(w.bits))
	w.out = append(w.out, c)
	if c == 0xFF {
		w.out = append(w.out, 0)
	}
}

// checkBuf15 flushes two bytes once more than 15 bits are buffered,
// matching CHECKBUF15's "only flush when comfortably full" policy
// rather than flushing every time a byte is available.
func (w *bitWriter) checkBuf15() {
	if w.bits > 15 {
		w.emitByte()
		w.emitByte()
	}
}

// putBits appends the low size bits of code to the buffer without
// flushing.
func (w *bitWriter) putBits(code uint32, size byte) {
	w.bits += int(size)
	w.buffer = (w.buffer << uint(size)) | uint64(code)
}

// emitBits appends code/size then flushes if the buffer has grown past
// 15 bits.
func (w *bitWriter) emitBits(code uint32, size byte) {
	w.putBits(code, size)
	w.checkBuf15()
}

// flush pads the buffer out to a byte boundary with 1-bits (the
// standard's required stuffing pattern) and drains every remaining
// byte, including 0xFF-stuffing.
func (w *bitWriter) flush() {
	w.bits += 7
	w.buffer = (w.buffer << 7) | 0x7F
	for w.bits > 7 {
		w.emitByte()
	}
}

// entropyState is the cross-MCU serial state: one DC predictor per
// component (Y, Cb, Cr).
type entropyState struct {
	lastDC [3]int16
}

// mcuComponent and mcuHuffSet mirror jpeg_encoder.cpp's
// mcu_membership/table_index arrays: the 6 blocks of an MCU in scan
// order are 4 luma blocks (component 0, table set 0), one Cb block
// (component 1, table set 1) and one Cr block (component 2, table
// set 1).
var mcuComponent = [6]int{0, 0, 0, 0, 1, 2}
var mcuHuffSet = [6]int{0, 0, 0, 0, 1, 1}

// signAndMagnitude splits a DC difference or AC coefficient into its
// bit-length category and the n-bit magnitude word the standard's
// variable-length-integer encoding uses: non-negative values encode
// as their own low bits, negative values encode as (v-1)'s low bits.
func signAndMagnitude(v int32) (n int, magnitude uint32) {
	if v < 0 {
		absV := -v
		n = nbits(absV)
		magnitude = uint32(v-1) & uint32((int64(1)<<uint(n))-1)
		return n, magnitude
	}
	n = nbits(v)
	magnitude = uint32(v) & uint32((int64(1)<<uint(n))-1)
	return n, magnitude
}

// encodeBlock entropy-codes one quantized 8x8 block (natural order):
// DC as a differential against lastDC, AC via zig-zag run-length coding
// with ZRL (0xF0) for runs longer than 15 and an EOB (symbol 0) once
// all trailing coefficients are zero.
func encodeBlock(w *bitWriter, block *[blockSize]int16, dc, ac *derivedHuffmanTable, lastDC *int16) {
	diff := int32(block[0]) - int32(*lastDC)
	*lastDC = block[0]

	n, mag := signAndMagnitude(diff)
	w.emitBits(dc.code[n], byte(dc.length[n]))
	if n > 0 {
		w.emitBits(mag, byte(n))
	}

	run := 0
	zrlCode, zrlLen := ac.code[0xF0], ac.length[0xF0]
	for z := 1; z < blockSize; z++ {
		coef := int32(block[zigzagToNatural[z]])
		if coef == 0 {
			run++
			continue
		}
		for run > 15 {
			w.emitBits(zrlCode, byte(zrlLen))
			run -= 16
		}
		n, mag = signAndMagnitude(coef)
		sym := byte(run<<4 | n)
		w.emitBits(ac.code[sym], byte(ac.length[sym]))
		w.emitBits(mag, byte(n))
		run = 0
	}
	if run > 0 {
		w.emitBits(ac.code[0], byte(ac.length[0]))
	}
}

// encodeMCU entropy-codes the six blocks of one MCU (4 luma, Cb, Cr) in
// scan order, threading state.lastDC across blocks and MCUs.
func encodeMCU(w *bitWriter, blocks [6]*[blockSize]int16, huff *[numHuffTables]derivedHuffmanTable, state *entropyState) {
	for i, block := range blocks {
		component := mcuComponent[i]
		set := mcuHuffSet[i]
		dc := &huff[huffDCLuminance+huffIndex(set)*2]
		ac := &huff[huffACLuminance+huffIndex(set)*2]
		encodeBlock(w, block, dc, ac, &state.lastDC[component])
	}
}
