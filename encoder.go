package jpegenc

import (
	"io"
	"log/slog"
)

// DefaultQuality is the quality used when Options.Quality is left at
// its zero value.
const DefaultQuality = 75

// Options are the encoding parameters. Quality ranges from 1 to 100
// inclusive, higher is better; it is clamped rather than rejected.
type Options struct {
	Quality int

	// Logger receives Debug-level diagnostics for each Encode call and
	// Warn-level notices for recoverable oddities (e.g. quality
	// clamping). Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

func (o *Options) quality() int {
	if o == nil || o.Quality == 0 {
		return DefaultQuality
	}
	return o.Quality
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Encoder holds the immutable per-quality tables built once at
// construction and the backend used to run the pixel pipeline.
type Encoder struct {
	backend  Backend
	log      *slog.Logger
	quality  int
	luminance, chrominance quantTable
	huffman  [numHuffTables]derivedHuffmanTable
}

// NewEncoder builds an Encoder for the given quality (clamped to
// [1,100]) and backend. A nil backend selects the CPU reference
// implementation, mirroring original_source's device-type constructor
// argument without leaking accelerator concerns into Encode's signature.
func NewEncoder(backend Backend, o *Options) *Encoder {
	log := o.logger()
	quality := o.quality()
	clamped := quality
	if clamped < 1 {
		clamped = 1
	} else if clamped > 100 {
		clamped = 100
	}
	if clamped != quality {
		log.Warn("jpegenc: quality clamped", slog.Int("requested", quality), slog.Int("used", clamped))
	}

	if backend == nil {
		backend = newCPUBackend()
	}

	return &Encoder{
		backend:     backend,
		log:         log,
		quality:     clamped,
		luminance:   buildQuantTable(&baseQuantTable[quantLuminance], clamped),
		chrominance: buildQuantTable(&baseQuantTable[quantChrominance], clamped),
		huffman:     buildHuffmanTables(),
	}
}

// Encode runs the full pipeline over rgb (tightly packed RGB24,
// row-major) and writes the resulting baseline JFIF byte stream to
// sink. rgb must have exactly 3*width*height bytes and both dimensions
// must be at least 1.
func (e *Encoder) Encode(rgb []byte, width, height int, sink io.Writer) error {
	return e.encodeWith(e.backend, rgb, width, height, sink)
}

// EncodeWithBackend runs the pipeline using backend instead of the
// Encoder's configured backend for this call only, letting a caller
// request the CPU reference path for differential testing even when a
// non-CPU backend was configured at construction. A nil backend falls
// back to the Encoder's configured backend.
func (e *Encoder) EncodeWithBackend(backend Backend, rgb []byte, width, height int, sink io.Writer) error {
	if backend == nil {
		backend = e.backend
	}
	return e.encodeWith(backend, rgb, width, height, sink)
}

func (e *Encoder) encodeWith(backend Backend, rgb []byte, width, height int, sink io.Writer) error {
	if width < 1 || height < 1 {
		return invalidArgs("width and height must both be at least 1")
	}
	if len(rgb) != 3*width*height {
		return invalidArgs("rgb length must equal 3*width*height")
	}

	grid := newBlockGrid(width, height)
	e.log.Debug("jpegenc: encode",
		slog.Int("width", width), slog.Int("height", height),
		slog.Int("quality", e.quality),
		slog.Int("mcu_cols", grid.nsbw), slog.Int("mcu_rows", grid.nsbh))

	y, cb, cr := backend.ColorTransform(rgb, width, height)
	luma := backend.DownsampleLuma(y, grid)
	cbBlocks, crBlocks := backend.DownsampleChroma(cb, cr, grid)

	yCoef, cbCoef, crCoef := backend.FDCTQuantize(luma, cbBlocks, crBlocks, &e.luminance, &e.chrominance)
	backend.ZeroRightEdge(yCoef, grid)
	backend.ZeroBottomEdge(yCoef, grid)
	fixupEdgeDC(yCoef, grid)

	out := make([]byte, 0, 4096)
	out = writeFileHeader(out)
	out = writeFrameHeader(out, width, height, &e.luminance, &e.chrominance)
	out = writeScanHeader(out)

	w := &bitWriter{out: out}
	var state entropyState
	for i := 0; i < grid.mcuCount(); i++ {
		blocks := [6]*[blockSize]int16{
			&yCoef[i][0], &yCoef[i][1], &yCoef[i][2], &yCoef[i][3],
			&cbCoef[i], &crCoef[i],
		}
		encodeMCU(w, blocks, &e.huffman, &state)
	}
	w.flush()
	w.out = writeEOI(w.out)

	if _, err := sink.Write(w.out); err != nil {
		return ioFailure("writing encoded bytes to sink", err)
	}
	return nil
}

// fixupEdgeDC overwrites Y2/Y3's quantized DC with Y1's DC for every
// MCU in a bottom row that contains only a single real luma block row,
// per the block extractor's edge policy.
func fixupEdgeDC(yCoef [][4][blockSize]int16, grid blockGrid) {
	gy := grid.nsbh - 1
	if gy < 0 || !grid.needsBottomDCFixup(gy) {
		return
	}
	for gx := 0; gx < grid.nsbw; gx++ {
		idx := gy*grid.nsbw + gx
		dc := yCoef[idx][1][0]
		yCoef[idx][2][0] = dc
		yCoef[idx][3][0] = dc
	}
}
