package jpegenc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRGBToYCbCrBlack(t *testing.T) {
	y, cb, cr := rgbToYCbCr(0, 0, 0)
	require.Equal(t, byte(0), y)
	require.Equal(t, byte(128), cb)
	require.Equal(t, byte(128), cr)
}

func TestRGBToYCbCrWhite(t *testing.T) {
	y, cb, cr := rgbToYCbCr(255, 255, 255)
	require.Equal(t, byte(255), y)
	require.InDelta(t, 128, int(cb), 1)
	require.InDelta(t, 128, int(cr), 1)
}

func TestRGBToYCbCrGray(t *testing.T) {
	// Equal R=G=B carries no chroma: Cb and Cr both sit at the
	// neutral 128 midpoint regardless of the gray level.
	for _, v := range []byte{0, 1, 17, 128, 200, 255} {
		_, cb, cr := rgbToYCbCr(v, v, v)
		require.InDelta(t, 128, int(cb), 1, "v=%d", v)
		require.InDelta(t, 128, int(cr), 1, "v=%d", v)
	}
}

func TestRGBToYCbCrPureRed(t *testing.T) {
	y, cb, cr := rgbToYCbCr(255, 0, 0)
	require.InDelta(t, 76, int(y), 1)
	require.InDelta(t, 85, int(cb), 1)
	require.InDelta(t, 255, int(cr), 1)
}

func TestRGBToYCbCrPureGreen(t *testing.T) {
	y, _, _ := rgbToYCbCr(0, 255, 0)
	require.InDelta(t, 150, int(y), 1)
}

func TestRGBToYCbCrPureBlue(t *testing.T) {
	y, cb, _ := rgbToYCbCr(0, 0, 255)
	require.InDelta(t, 29, int(y), 1)
	require.InDelta(t, 255, int(cb), 1)
}

func TestConvertToYCbCrMatchesPerPixelConversion(t *testing.T) {
	rgb := []byte{
		10, 20, 30, 200, 100, 50,
		0, 0, 0, 255, 255, 255,
	}
	y, cb, cr := convertToYCbCr(rgb, 2, 2)
	for i := 0; i < 4; i++ {
		wantY, wantCb, wantCr := rgbToYCbCr(rgb[3*i], rgb[3*i+1], rgb[3*i+2])
		require.Equal(t, wantY, y[i])
		require.Equal(t, wantCb, cb[i])
		require.Equal(t, wantCr, cr[i])
	}
}
