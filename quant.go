package jpegenc

// reciprocalQuad is the fast-divide form of a single quantization
// divisor, adapted from libjpeg-turbo's jcdctmgr.c compute_reciprocal.
// quantizeBlock (fdct.go) uses it to replace
// "coefficient / (qval*8*aanScaleFactor[row]*aanScaleFactor[col])" with a
// multiply-add-shift; buildQuantTable folds the AA&N factor into the
// divisor once per table so that single divide already removes both the
// quantization scale and the AA&N DCT output scale.
type reciprocalQuad struct {
	// reciprocal is normalized into [2^15,2^16), which overruns an
	// int16's range (a prior version of this field stored it as int16
	// and silently wrapped negative for every power-of-two divisor,
	// flipping the sign of the quantized result); uint16 is the
	// narrowest type that actually holds it.
	reciprocal uint16
	correction int16
	scale      int16
	shift      int16
}

// quantTable is a built quantization table: the clamped 8-bit values in
// natural order plus the reciprocal quad derived from each value's
// AA&N-folded divisor.
type quantTable struct {
	value [blockSize]byte
	div   [blockSize]reciprocalQuad
}

// qualityToScale maps a clamped quality factor to the linear scale
// percentage used to derive each quant table entry (IJG's standard
// quality-to-scale curve).
func qualityToScale(quality int) int {
	if quality < 50 {
		return 5000 / quality
	}
	return 200 - 2*quality
}

// buildQuantTable scales base by the quality-derived factor, clamps
// every entry to [1,255], and derives the reciprocal quad for each
// scaled value's divisor. quality must already be clamped to [1,100].
//
// The stored quant value (qt.value, written verbatim into the DQT
// segment) is the plain scaled-and-clamped value; the divisor handed to
// computeReciprocal additionally folds in aanScaleFactor[row]*
// aanScaleFactor[col] (rounded to the nearest integer here, once per
// table build) so that quantizeCoefficient can quantize fdctAAN's raw,
// non-uniformly-scaled output directly, in one multiply-add-shift, with
// no separate floating-point descale step and no second rounding per
// block.
func buildQuantTable(base *[blockSize]byte, quality int) quantTable {
	scale := qualityToScale(quality)
	var qt quantTable
	for i, b := range base {
		v := (int(b)*scale + 50) / 100
		if v < 1 {
			v = 1
		} else if v > 255 {
			v = 255
		}
		qt.value[i] = byte(v)

		row, col := i/8, i%8
		aanDivisor := float64(v) * 8 * aanScaleFactor[row] * aanScaleFactor[col]
		qt.div[i] = computeReciprocal(uint16(aanDivisor + 0.5))
	}
	return qt
}

// computeReciprocal derives (reciprocal, correction, scale, shift) for
// the given divisor, exactly matching jpeg_encoder.cpp's
// compute_reciprocal / libjpeg-turbo's jcdctmgr.c version of the same
// routine. divisor is qval*8*aanScaleFactor[row]*aanScaleFactor[col]
// rounded to the nearest integer, for qval in [1,255] and row,col in
// [0,7]; that range keeps divisor in [1,3925], so it is never 0 and the
// resulting shift stays at 11 or below.
func computeReciprocal(divisor uint16) reciprocalQuad {
	if divisor == 1 {
		return reciprocalQuad{reciprocal: 1, correction: 0, scale: 1, shift: -16}
	}

	b := nbits(int32(divisor)) - 1
	r := 16 + b

	fq := (uint32(1) << uint(r)) / uint32(divisor)
	fr := (uint32(1) << uint(r)) % uint32(divisor)

	c := divisor >> 1

	switch {
	case fr == 0:
		fq >>= 1
		r--
	case fr <= uint32(divisor)/2:
		c++
	default:
		fq++
	}

	shift := r - 16
	// divisor in this encoder's actual range ([1,3925], see buildQuantTable)
	// keeps shift below 12. The bound checked here is wider: shift > 16
	// means r > 32, past which scale's 1<<(32-r) has no meaning. No uint16
	// divisor gets there (r is at most 31), so the panic marks a broken
	// internal invariant, not an input this encoder can produce.
	if shift > 16 {
		panic("jpegenc: quantization reciprocal out of range (shift > 16)")
	}

	return reciprocalQuad{
		reciprocal: uint16(fq),
		correction: int16(c),
		scale:      int16(int32(1) << uint(32-r)),
		shift:      int16(shift),
	}
}
