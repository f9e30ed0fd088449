package jpegenc

// fdctAAN applies IJG's jpeg_fdct_ifast butterfly (the public-domain
// "AA&N" fast integer forward DCT) to block in place, row pass then
// column pass. Its output is scaled up non-uniformly: coefficient
// [u][v] comes out at 8*aanScaleFactor[u]*aanScaleFactor[v] times the
// true DCT value. quantizeBlock removes that scale and the
// quantization divide together, in one step, using reciprocal quads
// that buildQuantTable (quant.go) already built with the AA&N factor
// folded in.
func fdctAAN(block *[blockSize]int32) {
	for row := 0; row < 8; row++ {
		o := row * 8
		tmp0 := block[o+0] + block[o+7]
		tmp7 := block[o+0] - block[o+7]
		tmp1 := block[o+1] + block[o+6]
		tmp6 := block[o+1] - block[o+6]
		tmp2 := block[o+2] + block[o+5]
		tmp5 := block[o+2] - block[o+5]
		tmp3 := block[o+3] + block[o+4]
		tmp4 := block[o+3] - block[o+4]

		tmp10 := tmp0 + tmp3
		tmp13 := tmp0 - tmp3
		tmp11 := tmp1 + tmp2
		tmp12 := tmp1 - tmp2

		block[o+0] = tmp10 + tmp11
		block[o+4] = tmp10 - tmp11

		z1 := ((tmp12 + tmp13) * fix0_707106781) >> aanConstBits
		block[o+2] = tmp13 + z1
		block[o+6] = tmp13 - z1

		tmp10 = tmp4 + tmp5
		tmp11 = tmp5 + tmp6
		tmp12 = tmp6 + tmp7

		z5 := ((tmp10 - tmp12) * fix0_382683433) >> aanConstBits
		z2 := (tmp10*fix0_541196100)>>aanConstBits + z5
		z4 := (tmp12*fix1_306562965)>>aanConstBits + z5
		z3 := (tmp11 * fix0_707106781) >> aanConstBits

		z11 := tmp7 + z3
		z13 := tmp7 - z3

		block[o+5] = z13 + z2
		block[o+3] = z13 - z2
		block[o+1] = z11 + z4
		block[o+7] = z11 - z4
	}

	for col := 0; col < 8; col++ {
		tmp0 := block[col+0*8] + block[col+7*8]
		tmp7 := block[col+0*8] - block[col+7*8]
		tmp1 := block[col+1*8] + block[col+6*8]
		tmp6 := block[col+1*8] - block[col+6*8]
		tmp2 := block[col+2*8] + block[col+5*8]
		tmp5 := block[col+2*8] - block[col+5*8]
		tmp3 := block[col+3*8] + block[col+4*8]
		tmp4 := block[col+3*8] - block[col+4*8]

		tmp10 := tmp0 + tmp3
		tmp13 := tmp0 - tmp3
		tmp11 := tmp1 + tmp2
		tmp12 := tmp1 - tmp2

		block[col+0*8] = tmp10 + tmp11
		block[col+4*8] = tmp10 - tmp11

		z1 := ((tmp12 + tmp13) * fix0_707106781) >> aanConstBits
		block[col+2*8] = tmp13 + z1
		block[col+6*8] = tmp13 - z1

		tmp10 = tmp4 + tmp5
		tmp11 = tmp5 + tmp6
		tmp12 = tmp6 + tmp7

		z5 := ((tmp10 - tmp12) * fix0_382683433) >> aanConstBits
		z2 := (tmp10*fix0_541196100)>>aanConstBits + z5
		z4 := (tmp12*fix1_306562965)>>aanConstBits + z5
		z3 := (tmp11 * fix0_707106781) >> aanConstBits

		z11 := tmp7 + z3
		z13 := tmp7 - z3

		block[col+5*8] = z13 + z2
		block[col+3*8] = z13 - z2
		block[col+1*8] = z11 + z4
		block[col+7*8] = z11 - z4
	}
}

// quantizeCoefficient divides a raw fdctAAN coefficient by a
// quantization divisor using libjpeg-turbo's reciprocal/correction
// quad instead of an actual integer division: take the magnitude, add
// the rounding correction, multiply by the precomputed reciprocal and
// shift down by shift+16, then restore the sign. The division itself
// runs entirely on a non-negative value so the final right shift is a
// plain truncation, not a floor — negating before shifting instead
// (shifting x-corr directly for negative x) would floor a negative
// quotient and round half a ULP too far for any input that isn't an
// exact multiple of the divisor. rq's divisor already has
// buildQuantTable's AA&N row/col scale factor folded in, so this single
// multiply-add-shift both removes fdctAAN's non-uniform output scale
// and applies the quantization divide — there is no separate descale
// pass, and so no second, independently-rounded step. libjpeg-turbo's
// SIMD version splits the final shift into a second
// multiply-by-scale-then-shift pair because its lanes are 16 bits wide;
// this combines them since Go arithmetic on int32 has no such width
// limit, and scale is carried on reciprocalQuad purely for parity with
// the quad's four-field shape.
func quantizeCoefficient(x int32, rq reciprocalQuad) int16 {
	neg := x < 0
	if neg {
		x = -x
	}
	x += int32(rq.correction)
	prod := (x * int32(rq.reciprocal)) >> uint(16+rq.shift)
	if neg {
		prod = -prod
	}
	return int16(prod)
}

// quantizeBlock quantizes every coefficient of a raw fdctAAN output
// block against qt, producing the final natural-order quantized block.
func quantizeBlock(block *[blockSize]int32, qt *quantTable) (out [blockSize]int16) {
	for i := range out {
		out[i] = quantizeCoefficient(block[i], qt.div[i])
	}
	return
}

// levelShiftAndFDCTQuantize runs the full per-block pipeline: subtract
// 128 from every sample (level shift), AA&N FDCT, reciprocal-quantize.
func levelShiftAndFDCTQuantize(px *pixelBlock, qt *quantTable) [blockSize]int16 {
	var work [blockSize]int32
	for i, v := range px {
		work[i] = int32(v) - 128
	}
	fdctAAN(&work)
	return quantizeBlock(&work, qt)
}
