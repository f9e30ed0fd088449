package jpegenc

// writeMarker appends a two-byte 0xFF,marker pair.
func writeMarker(out []byte, marker byte) []byte {
	return append(out, 0xFF, marker)
}

// write2Byte appends v as a big-endian 16-bit word.
func write2Byte(out []byte, v int) []byte {
	return append(out, byte(v>>8), byte(v))
}

// writeFileHeader appends SOI and the JFIF 1.01 APP0 segment.
func writeFileHeader(out []byte) []byte {
	out = append(out, 0xFF, 0xD8, 0xFF, 0xE0)
	out = append(out, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01,
		0x00,
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x00)
	return out
}

// writeQuantTable appends a DQT segment for quant table index (0 for Y,
// 1 for Cb/Cr), in zig-zag order as the standard requires regardless of
// this repo's natural-order internal storage.
func writeQuantTable(out []byte, index int, qt *quantTable) []byte {
	out = writeMarker(out, 0xDB)
	out = write2Byte(out, blockSize+1+2)
	out = append(out, byte(index))
	for i := 0; i < blockSize; i++ {
		out = append(out, qt.value[zigzagToNatural[i]])
	}
	return out
}

// writeHuffmanTable appends one DHT segment for a single BITS/VALUES
// spec, using Annex B's table-class-and-index byte (isAC<<4 | index).
func writeHuffmanTable(out []byte, index int, isAC bool, spec *huffmanSpec) []byte {
	out = writeMarker(out, 0xC4)
	length := 0
	for i := 1; i <= 16; i++ {
		length += int(spec.bits[i])
	}
	out = write2Byte(out, length+2+1+16)
	classAndIndex := byte(index)
	if isAC {
		classAndIndex = byte(index) | 0x10
	}
	out = append(out, classAndIndex)
	for i := 1; i <= 16; i++ {
		out = append(out, spec.bits[i])
	}
	out = append(out, spec.values[:length]...)
	return out
}

// writeScanHeader appends the four DHT segments (DC/AC x luma/chroma)
// followed by the SOS marker.
func writeScanHeader(out []byte) []byte {
	out = writeHuffmanTable(out, 0, false, &standardHuffmanSpecs[huffDCLuminance])
	out = writeHuffmanTable(out, 0, true, &standardHuffmanSpecs[huffACLuminance])
	out = writeHuffmanTable(out, 1, false, &standardHuffmanSpecs[huffDCChrominance])
	out = writeHuffmanTable(out, 1, true, &standardHuffmanSpecs[huffACChrominance])
	out = writeSOS(out)
	return out
}

// writeSOS appends the start-of-scan marker for the fixed 3-component
// Y/Cb/Cr layout (Y uses table set 0, Cb/Cr use table set 1).
func writeSOS(out []byte) []byte {
	out = writeMarker(out, 0xDA)
	out = write2Byte(out, 2*3+2+1+3)
	out = append(out, 3)
	out = append(out, 1, (0<<4)+0)
	out = append(out, 2, (1<<4)+1)
	out = append(out, 3, (1<<4)+1)
	out = append(out, 0, 0x3F, 0)
	return out
}

// writeSOF appends the baseline start-of-frame segment: 8-bit samples,
// height/width, 3 components with 4:2:0 sampling factors (Y is 2h/2v,
// Cb/Cr are 1h/1v) and quant table assignment (Y uses table 0, Cb/Cr
// share table 1).
func writeSOF(out []byte, width, height int) []byte {
	out = writeMarker(out, 0xC0)
	out = write2Byte(out, 3*3+2+5+1)
	out = append(out, 8)
	out = write2Byte(out, height)
	out = write2Byte(out, width)
	out = append(out, 3)
	out = append(out, 1, (2<<4)+2, 0)
	out = append(out, 2, (1<<4)+1, 1)
	out = append(out, 3, (1<<4)+1, 1)
	return out
}

// writeFrameHeader appends both DQT segments followed by SOF0.
func writeFrameHeader(out []byte, width, height int, luma, chroma *quantTable) []byte {
	out = writeQuantTable(out, 0, luma)
	out = writeQuantTable(out, 1, chroma)
	out = writeSOF(out, width, height)
	return out
}

// writeEOI appends the end-of-image marker.
func writeEOI(out []byte) []byte {
	return writeMarker(out, 0xD9)
}
