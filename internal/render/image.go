package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/nespresenter/internal/logging"
	"github.com/ivlev/nespresenter/internal/navigation"
	"github.com/ivlev/nespresenter/internal/system"
)

// Image layout, in pixels.
const (
	imageMargin    = 64
	imageLineGap   = 10
	largeFontPx    = 128
	commandFontPx  = 50
	titleFontPx    = 24
	qrMinimumPx    = 64
	qrScreenFactor = 4
)

var (
	demoFill         = color.RGBA{255, 0, 0, 255}
	presentationFill = color.RGBA{0, 255, 0, 255}
	inkColor         = color.RGBA{0, 0, 0, 255}
	skipInkColor     = color.RGBA{128, 128, 128, 255}
)

// ImageRenderer draws frames into a PNG file, for a projector-side viewer
// or a streaming overlay that watches the file.
type ImageRenderer struct {
	Path          string
	Width, Height int

	large, command, title font.Face
	qr                    *qrCache

	last    Frame
	written bool
}

// NewImageRenderer prepares the fonts; nothing is written until the first
// Render.
func NewImageRenderer(path string, width, height int) (*ImageRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	r := &ImageRenderer{Path: path, Width: width, Height: height, qr: &qrCache{}}
	for _, face := range []struct {
		dst  *font.Face
		size float64
	}{
		{&r.large, largeFontPx},
		{&r.command, commandFontPx},
		{&r.title, titleFontPx},
	} {
		*face.dst, err = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    face.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("font face %.0fpx: %w", face.size, err)
		}
	}
	return r, nil
}

// Render writes the frame when it differs from the last one written.
func (r *ImageRenderer) Render(f Frame) error {
	if r.written && f.Equal(r.last) {
		return nil
	}

	img := system.GetImage(image.Rect(0, 0, r.Width, r.Height))
	defer system.PutImage(img)

	r.draw(img, f)
	if err := writePNG(r.Path, img); err != nil {
		return err
	}
	r.last, r.written = f, true
	return nil
}

func (r *ImageRenderer) draw(img *image.RGBA, f Frame) {
	fill := demoFill
	if f.Mode == navigation.Presentation {
		fill = presentationFill
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	titleHeight := r.title.Metrics().Height.Ceil()
	r.drawCentered(img, r.title, f.Title, (imageMargin-titleHeight)/2, inkColor)

	modeHeight := r.drawCentered(img, r.large, f.Mode.String(), imageMargin, inkColor)
	top := imageMargin + modeHeight + imageMargin

	bottom := r.Height - imageMargin
	if f.Elapsed != "" {
		h := r.large.Metrics().Height.Ceil()
		r.drawCentered(img, r.large, f.Elapsed, r.Height-imageMargin-h, inkColor)
		bottom = r.Height - imageMargin - h - imageMargin
	}

	next := top + imageMargin
	for _, line := range f.Lines {
		if next > bottom {
			break
		}
		ink := inkColor
		if !line.Submit {
			ink = skipInkColor
		}
		next += drawText(img, r.command, line.Text, imageMargin, next, ink) + imageLineGap
	}

	if f.QR != "" {
		r.drawQR(img, f.QR)
	}
}

func (r *ImageRenderer) drawCentered(img *image.RGBA, face font.Face, s string, top int, ink color.Color) int {
	width := font.MeasureString(face, s).Ceil()
	return drawText(img, face, s, (r.Width-width)/2, top, ink)
}

// drawText draws s with its top edge at top and returns the line height.
func drawText(img *image.RGBA, face font.Face, s string, left, top int, ink color.Color) int {
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(left, top+m.Ascent.Ceil()),
	}
	d.DrawString(s)
	return m.Height.Ceil()
}

func (r *ImageRenderer) drawQR(img *image.RGBA, url string) {
	size := min(r.Width, r.Height) / qrScreenFactor
	if size < qrMinimumPx {
		return
	}
	code, err := r.qr.get(url)
	if err != nil {
		logging.Warn("Render", "%v", err)
		return
	}
	qr := code.Image(size)
	at := image.Pt(r.Width-imageMargin/2-size, r.Height-imageMargin/2-size)
	draw.Draw(img, qr.Bounds().Add(at), qr, qr.Bounds().Min, draw.Src)
}

// Close is a no-op; the last frame stays on disk.
func (r *ImageRenderer) Close() error {
	return nil
}

// writePNG replaces path atomically so a watcher never sees a partial file.
func writePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace frame %s: %w", path, err)
	}
	return nil
}
