package jpegenc

// Fixed-point BT.601 coefficients (Q16) and rounding/offset constants,
// matching jpeg_encoder.hpp's color_conversion_table layout: three
// 256-entry partial-sum tables per output channel (one per input
// channel), summed and shifted at conversion time instead of doing the
// multiply-accumulate per pixel.
const (
	oneHalf    = 1 << 15
	cbcrOffset = 128 << 16
)

var (
	yTabR, yTabG, yTabB    [256]int32
	cbTabR, cbTabG, cbTabB [256]int32
	crTabR, crTabG, crTabB [256]int32
)

func init() {
	for i := 0; i < 256; i++ {
		v := int32(i)
		yTabR[i] = 19595 * v
		yTabG[i] = 38470*v + oneHalf
		yTabB[i] = 7471 * v

		cbTabR[i] = -11059 * v
		cbTabG[i] = -21709*v + cbcrOffset + oneHalf - 1
		cbTabB[i] = 32768 * v

		crTabR[i] = 32768 * v
		crTabG[i] = -27439*v + cbcrOffset + oneHalf - 1
		crTabB[i] = -5329 * v
	}
}

// rgbToYCbCr converts a single RGB triple to YCbCr using the
// precomputed partial-sum tables above.
func rgbToYCbCr(r, g, b byte) (y, cb, cr byte) {
	y = byte((yTabR[r] + yTabG[g] + yTabB[b]) >> 16)
	cb = byte((cbTabR[r] + cbTabG[g] + cbTabB[b]) >> 16)
	cr = byte((crTabR[r] + crTabG[g] + crTabB[b]) >> 16)
	return
}
