package meme

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"math"
	"strings"

	"emperror.dev/errors"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Canvas layout, in pixels.
const (
	canvasWidth   = 1000
	padding       = 25
	fontSize      = 36
	lineHeight    = fontSize
	pictureHeight = 480
	pictureWidth  = canvasWidth - 2*padding
	captionWidth  = canvasWidth - 2*padding
)

// Composer renders captioned images. It is safe for concurrent use.
type Composer struct {
	font *opentype.Font
}

func NewComposer() (*Composer, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.WrapIf(err, "parsing caption font")
	}
	return &Composer{font: f}, nil
}

func (c *Composer) newFace() (font.Face, error) {
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, errors.WrapIf(err, "creating font face")
}

// wrap breaks the caption into lines no wider than the caption area.
// Words longer than a line are left intact.
func wrap(face font.Face, caption string) []string {
	advance, ok := face.GlyphAdvance('M')
	if !ok || advance <= 0 {
		advance = fixed.I(fontSize / 2)
	}

	perLine := captionWidth / advance.Ceil()
	if perLine < 1 {
		perLine = 1
	}

	return strings.Split(wordwrap.WrapString(caption, uint(perLine)), "\n")
}

// fit scales w×h to the largest size within maxW×maxH keeping the aspect ratio.
func fit(w, h, maxW, maxH int) (int, int) {
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Max(math.Round(float64(w)*ratio), 1))
	nh := int(math.Max(math.Round(float64(h)*ratio), 1))
	return nw, nh
}

// Compose draws caption above picture on a white canvas and encodes the
// result as PNG.
func (c *Composer) Compose(picture image.Image, caption string) ([]byte, error) {
	src := picture.Bounds()
	if src.Empty() {
		return nil, errors.New("picture has no pixels")
	}

	face, err := c.newFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	lines := wrap(face, caption)
	pictureTop := lineHeight*len(lines) + 2*padding
	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, pictureTop+pictureHeight+padding))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	for i, line := range lines {
		d.Dot = fixed.Point26_6{
			X: fixed.I(padding),
			Y: fixed.I(padding+i*lineHeight) + ascent,
		}
		d.DrawString(line)
	}

	w, h := fit(src.Dx(), src.Dy(), pictureWidth, pictureHeight)
	left := canvasWidth/2 - w/2
	dst := image.Rect(left, pictureTop, left+w, pictureTop+h)
	draw.CatmullRom.Scale(canvas, dst, picture, src, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, errors.WrapIf(err, "encoding result")
	}
	return buf.Bytes(), nil
}

// Decode reads a png or jpeg image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapIf(err, "decoding image")
	}
	return img, nil
}
