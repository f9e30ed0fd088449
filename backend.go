package jpegenc

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Backend abstracts the pixel-processing stages of the pipeline (spec
// stages D through F) behind an interface, one method per
// original_source OpenCL kernel, so an accelerator implementation can
// be substituted without changing Encoder's public API. cpuBackend is
// the only implementation shipped; it is also the reference every
// other backend's output must match.
type Backend interface {
	// ColorTransform converts an interleaved RGB buffer into separate
	// Y, Cb, Cr planes of the same dimensions.
	ColorTransform(rgb []byte, width, height int) (y, cb, cr []byte)

	// DownsampleLuma extracts the 4 full-resolution luma blocks of
	// every MCU from the Y plane.
	DownsampleLuma(y []byte, grid blockGrid) [][4]pixelBlock

	// DownsampleChroma extracts the one 2:2-averaged Cb and Cr block of
	// every MCU from the Cb/Cr planes.
	DownsampleChroma(cb, cr []byte, grid blockGrid) (cbBlocks, crBlocks []pixelBlock)

	// FDCTQuantize runs level-shift, AA&N FDCT and reciprocal-quantize
	// (which also removes the AA&N output scale) over every extracted
	// block.
	FDCTQuantize(luma [][4]pixelBlock, cbBlocks, crBlocks []pixelBlock, luminance, chrominance *quantTable) (yCoef [][4][blockSize]int16, cbCoef, crCoef [][blockSize]int16)

	// ZeroRightEdge zeroes the quantized coefficients of luma blocks
	// that lie entirely past the right edge of the image.
	ZeroRightEdge(yCoef [][4][blockSize]int16, grid blockGrid)

	// ZeroBottomEdge zeroes the quantized coefficients of luma blocks
	// that lie entirely past the bottom edge of the image.
	ZeroBottomEdge(yCoef [][4][blockSize]int16, grid blockGrid)
}

// cpuBackend is the reference Backend. ColorTransform (split by pixel
// row), the two downsample stages (split by MCU row) and FDCTQuantize
// (split by MCU) are fanned out across a small worker pool sized to the
// host's available cores, each unit writing only its own slice of the
// output; the two edge-zeroing stages run on the calling goroutine.
type cpuBackend struct{}

// newCPUBackend constructs the CPU reference backend.
func newCPUBackend() Backend { return cpuBackend{} }

// forEachRow runs fn(row) for every row in [0,rows) across a worker
// pool of runtime.GOMAXPROCS(0) goroutines, blocking until all rows
// are done.
func forEachRow(rows int, fn func(row int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for row := 0; row < rows; row++ {
			fn(row)
		}
		return
	}

	var next int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				row := atomic.AddInt32(&next, 1) - 1
				if row >= int32(rows) {
					return
				}
				fn(int(row))
			}
		}()
	}
	wg.Wait()
}

func (cpuBackend) ColorTransform(rgb []byte, width, height int) (y, cb, cr []byte) {
	y = make([]byte, width*height)
	cb = make([]byte, width*height)
	cr = make([]byte, width*height)
	forEachRow(height, func(row int) {
		base := row * width
		for x := 0; x < width; x++ {
			i := base + x
			r, g, b := rgb[3*i], rgb[3*i+1], rgb[3*i+2]
			y[i], cb[i], cr[i] = rgbToYCbCr(r, g, b)
		}
	})
	return
}

func (cpuBackend) DownsampleLuma(y []byte, grid blockGrid) [][4]pixelBlock {
	out := make([][4]pixelBlock, grid.mcuCount())
	forEachRow(grid.nsbh, func(gy int) {
		downsampleLumaRow(y, grid, gy, out)
	})
	return out
}

func (cpuBackend) DownsampleChroma(cb, cr []byte, grid blockGrid) (cbBlocks, crBlocks []pixelBlock) {
	cbBlocks = make([]pixelBlock, grid.mcuCount())
	crBlocks = make([]pixelBlock, grid.mcuCount())
	forEachRow(grid.nsbh, func(gy int) {
		downsampleChromaRow(cb, cr, grid, gy, cbBlocks, crBlocks)
	})
	return
}

func (cpuBackend) FDCTQuantize(luma [][4]pixelBlock, cbBlocks, crBlocks []pixelBlock, luminance, chrominance *quantTable) (yCoef [][4][blockSize]int16, cbCoef, crCoef [][blockSize]int16) {
	n := len(luma)
	yCoef = make([][4][blockSize]int16, n)
	cbCoef = make([][blockSize]int16, n)
	crCoef = make([][blockSize]int16, n)
	forEachRow(n, func(i int) {
		for sub := 0; sub < 4; sub++ {
			yCoef[i][sub] = levelShiftAndFDCTQuantize(&luma[i][sub], luminance)
		}
		cbCoef[i] = levelShiftAndFDCTQuantize(&cbBlocks[i], chrominance)
		crCoef[i] = levelShiftAndFDCTQuantize(&crBlocks[i], chrominance)
	})
	return
}

func (cpuBackend) ZeroRightEdge(yCoef [][4][blockSize]int16, grid blockGrid) {
	for gy := 0; gy < grid.nsbh; gy++ {
		for gx := 0; gx < grid.nsbw; gx++ {
			idx := gy*grid.nsbw + gx
			for sub := 0; sub < 4; sub++ {
				if grid.rightOOB(gx, gy, sub) {
					yCoef[idx][sub] = [blockSize]int16{}
				}
			}
		}
	}
}

func (cpuBackend) ZeroBottomEdge(yCoef [][4][blockSize]int16, grid blockGrid) {
	for gy := 0; gy < grid.nsbh; gy++ {
		for gx := 0; gx < grid.nsbw; gx++ {
			idx := gy*grid.nsbw + gx
			for sub := 0; sub < 4; sub++ {
				if grid.bottomOOB(gx, gy, sub) {
					yCoef[idx][sub] = [blockSize]int16{}
				}
			}
		}
	}
}
