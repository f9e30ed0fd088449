package jpegenc

// pixelBlock is one 8x8 block of level-unshifted samples in natural
// row-major order, ready for fdctAAN.
type pixelBlock [blockSize]byte

// blockGrid holds the block/super-block counts for an image of a given
// size, matching jpeg_encoder.cpp's nbw/nbh/nsbw/nsbh.
type blockGrid struct {
	width, height int
	nbw, nbh      int // 8x8 block columns/rows covering the actual image
	nsbw, nsbh    int // 16x16 MCU (super-block) columns/rows
}

func newBlockGrid(width, height int) blockGrid {
	return blockGrid{
		width:  width,
		height: height,
		nbw:    (width + 7) >> 3,
		nbh:    (height + 7) >> 3,
		nsbw:   (width + 15) >> 4,
		nsbh:   (height + 15) >> 4,
	}
}

// mcuCount is the number of 16x16 super-blocks (MCUs) in the image.
func (g blockGrid) mcuCount() int { return g.nsbw * g.nsbh }

// subBlockCoords returns the 8x8 block-grid coordinates of the sub-th
// (0..3) luma block within MCU (gx, gy), in the 0=TL,1=TR,2=BL,3=BR
// layout jpeg_encoder.cpp's edge-DC fix-up loop assumes.
func subBlockCoords(gx, gy, sub int) (blockX, blockY int) {
	blockX = 2*gx + sub&1
	blockY = 2*gy + (sub>>1)&1
	return
}

// rightOOB reports whether the sub-th luma block of MCU (gx, gy) lies
// entirely past the right edge of the actual image (no real pixel data
// at all, as opposed to a partial block straddling the edge).
func (g blockGrid) rightOOB(gx, gy, sub int) bool {
	blockX, _ := subBlockCoords(gx, gy, sub)
	return blockX >= g.nbw
}

// bottomOOB reports whether the sub-th luma block of MCU (gx, gy) lies
// entirely past the bottom edge of the actual image.
func (g blockGrid) bottomOOB(gx, gy, sub int) bool {
	_, blockY := subBlockCoords(gx, gy, sub)
	return blockY >= g.nbh
}

// needsBottomDCFixup reports whether MCU row gy is the bottom MCU row
// and that row contains only a single real luma block row (the image
// height falls short of the full 16-pixel MCU height by more than the
// first 8-pixel block row). When true, Y2/Y3's quantized DC should be
// overwritten with Y1's DC after FDCT+quantize (see fixupEdgeDC).
func (g blockGrid) needsBottomDCFixup(gy int) bool {
	return gy == g.nsbh-1 && (gy<<1)+1 >= g.nbh
}

// convertToYCbCr converts an interleaved RGB byte buffer (row-major,
// 3 bytes per pixel) into separate Y, Cb, Cr planes of the same
// dimensions, using the table-driven conversion in color.go.
func convertToYCbCr(rgb []byte, width, height int) (y, cb, cr []byte) {
	n := width * height
	y = make([]byte, n)
	cb = make([]byte, n)
	cr = make([]byte, n)
	for i := 0; i < n; i++ {
		r, g, b := rgb[3*i], rgb[3*i+1], rgb[3*i+2]
		y[i], cb[i], cr[i] = rgbToYCbCr(r, g, b)
	}
	return
}

// extractLumaBlock fills an 8x8 block from plane at 8x8 block
// coordinates (blockX, blockY), padding with 0 outside [0,width)x[0,height).
func extractLumaBlock(plane []byte, width, height, blockX, blockY int) pixelBlock {
	var blk pixelBlock
	baseX := blockX * 8
	baseY := blockY * 8
	for j := 0; j < 8; j++ {
		py := baseY + j
		if py < 0 || py >= height {
			continue
		}
		row := py * width
		for i := 0; i < 8; i++ {
			px := baseX + i
			if px < 0 || px >= width {
				continue
			}
			blk[j*8+i] = plane[row+px]
		}
	}
	return blk
}

// extractChromaBlock fills an 8x8 chroma block for MCU (mcuX, mcuY) by
// 2:2 averaging plane, rounding per spec (sum+2)>>2, with out-of-image
// source pixels contributing 0.
func extractChromaBlock(plane []byte, width, height, mcuX, mcuY int) pixelBlock {
	var blk pixelBlock
	baseX := mcuX * 16
	baseY := mcuY * 16
	at := func(x, y int) int {
		if x < 0 || x >= width || y < 0 || y >= height {
			return 0
		}
		return int(plane[y*width+x])
	}
	for j := 0; j < 8; j++ {
		sy := baseY + 2*j
		for i := 0; i < 8; i++ {
			sx := baseX + 2*i
			sum := at(sx, sy) + at(sx+1, sy) + at(sx, sy+1) + at(sx+1, sy+1)
			blk[j*8+i] = byte((sum + 2) >> 2)
		}
	}
	return blk
}

// downsampleLumaRow fills the 4 luma pixel blocks of every MCU in row
// gy (the "downsample_full" stage, restricted to one MCU row so
// cpuBackend can run distinct rows on distinct goroutines).
func downsampleLumaRow(plane []byte, grid blockGrid, gy int, out [][4]pixelBlock) {
	for gx := 0; gx < grid.nsbw; gx++ {
		var sb [4]pixelBlock
		for sub := 0; sub < 4; sub++ {
			blockX, blockY := subBlockCoords(gx, gy, sub)
			sb[sub] = extractLumaBlock(plane, grid.width, grid.height, blockX, blockY)
		}
		out[gy*grid.nsbw+gx] = sb
	}
}

// downsampleChromaRow fills the Cb/Cr pixel blocks of every MCU in row
// gy (the "downsample_2v2" stage, row-restricted for the same reason).
func downsampleChromaRow(cbPlane, crPlane []byte, grid blockGrid, gy int, cbOut, crOut []pixelBlock) {
	for gx := 0; gx < grid.nsbw; gx++ {
		idx := gy*grid.nsbw + gx
		cbOut[idx] = extractChromaBlock(cbPlane, grid.width, grid.height, gx, gy)
		crOut[idx] = extractChromaBlock(crPlane, grid.width, grid.height, gx, gy)
	}
}
