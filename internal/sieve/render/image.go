package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	dotImageSize  = 1000
	tableCellSize = 20
)

// DotImagePNG plots each prime as a black pixel at
// (p mod width, p div width) on a white 1000x1000 grayscale canvas and
// returns the encoded PNG.
func DotImagePNG(primes []int) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, dotImageSize, dotImageSize))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for _, p := range primes {
		x, y := p%dotImageSize, p/dotImageSize
		if y < dotImageSize {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode dot image: %w", err)
	}
	return buf.Bytes(), nil
}

func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// TableImage writes a numbered grid of 0..limit, prime cells filled
// blue, into dir and returns the file path.
func TableImage(primes []int, limit int, dir string) (string, error) {
	size := isqrt(limit) + 1
	img := image.NewRGBA(image.Rect(0, 0, size*tableCellSize, size*tableCellSize))

	primeSet := make(map[int]struct{}, len(primes))
	for _, p := range primes {
		primeSet[p] = struct{}{}
	}

	blue := color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black := color.RGBA{A: 0xff}

	for i := 0; i <= limit; i++ {
		cx, cy := (i%size)*tableCellSize, (i/size)*tableCellSize

		fill := white
		if _, ok := primeSet[i]; ok {
			fill = blue
		}

		for x := cx; x < cx+tableCellSize; x++ {
			for y := cy; y < cy+tableCellSize; y++ {
				onBorder := x == cx || y == cy || x == cx+tableCellSize-1 || y == cy+tableCellSize-1
				if onBorder {
					img.Set(x, y, black)
				} else {
					img.Set(x, y, fill)
				}
			}
		}

		drawLabel(img, cx+3, cy+14, fmt.Sprintf("%d", i), black)
	}

	path := filepath.Join(dir, fmt.Sprintf("table_primes_up_to_%d.png", limit))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create table image: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode table image: %w", err)
	}

	return path, nil
}

func drawLabel(img *image.RGBA, x, y int, label string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
