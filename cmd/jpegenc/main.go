// Command jpegenc encodes an image as a baseline 4:2:0 JPEG.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	jpegenc "github.com/roehrdor/opencl-jpeg-encoder"
)

func main() {
	var in, out string
	var quality int
	flag.StringVar(&in, "i", "", "Input image file path")
	flag.StringVar(&out, "o", "", "Output JPEG file path")
	flag.IntVar(&quality, "q", jpegenc.DefaultQuality, "JPEG quality, 1-100")
	flag.Parse()

	if in == "" || out == "" {
		fmt.Fprintln(os.Stderr, "input and output file paths must be specified")
		os.Exit(1)
	}

	img, err := decodeImage(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant decode input %s: %s\n", in, err)
		os.Exit(1)
	}

	rgb, width, height := toRGB(img)
	enc := jpegenc.NewEncoder(nil, &jpegenc.Options{Quality: quality})
	if err := encodeToFile(enc, rgb, width, height, out); err != nil {
		fmt.Fprintf(os.Stderr, "cant encode output %s: %s\n", out, err)
		os.Exit(1)
	}
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	return img, err
}

// toRGB flattens any image.Image into tightly packed RGB24 bytes,
// row-major, the single input layout Encoder.Encode accepts.
func toRGB(img image.Image) (rgb []byte, width, height int) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	rgb = make([]byte, 3*width*height)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			rgb[i] = byte(r >> 8)
			rgb[i+1] = byte(g >> 8)
			rgb[i+2] = byte(bl >> 8)
			i += 3
		}
	}
	return
}

// encodeToFile adds back one-call file ergonomics at the CLI boundary,
// without reintroducing file I/O into the core package.
func encodeToFile(enc *jpegenc.Encoder, rgb []byte, width, height int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return enc.Encode(rgb, width, height, f)
}
