// Package identicon renders deterministic placeholder server icons.
package identicon

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"mcstatus/internal/models"

	"lukechampine.com/blake3"
)

const (
	gridSize = 9
	cellSize = 6
	border   = 6
)

type GeneratorInterface interface {
	// Generate returns a base64 PNG for the server, or false if encoding failed.
	Generate(protocol models.ProtocolType, address string) (string, bool)
}

// Generator draws a horizontally mirrored grid whose pattern and colour come
// from a hash of the protocol and address. Empty cells are transparent so the
// host can draw its own themed background.
type Generator struct{}

func NewGenerator() GeneratorInterface {
	return &Generator{}
}

func (g *Generator) Generate(protocol models.ProtocolType, address string) (string, bool) {
	img := Render(protocol.Title() + address)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), true
}

// Render draws the identicon for seed.
func Render(seed string) *image.NRGBA {
	sum := blake3.Sum256([]byte(seed))
	fg := color.NRGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}
	if fg.R < 0x30 && fg.G < 0x30 && fg.B < 0x30 {
		// Too close to the dark backgrounds hosts tend to use.
		fg.R, fg.G, fg.B = fg.R+0x60, fg.G+0x60, fg.B+0x60
	}

	side := gridSize*cellSize + 2*border
	img := image.NewNRGBA(image.Rect(0, 0, side, side))

	half := (gridSize + 1) / 2
	bit := 0
	for col := 0; col < half; col++ {
		for row := 0; row < gridSize; row++ {
			on := sum[3+bit/8]&(1<<(bit%8)) != 0
			bit++
			if !on {
				continue
			}
			fillCell(img, col, row, fg)
			fillCell(img, gridSize-1-col, row, fg)
		}
	}
	return img
}

func fillCell(img *image.NRGBA, col, row int, c color.NRGBA) {
	x0 := border + col*cellSize
	y0 := border + row*cellSize
	for y := y0; y < y0+cellSize; y++ {
		for x := x0; x < x0+cellSize; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
