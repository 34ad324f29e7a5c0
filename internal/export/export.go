// Package export converts texture maps to Go images and writes PNG previews.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"

	"github.com/MeKo-Tech/proctex/internal/texture"
)

// Layer names used in file names.
const (
	LayerAlbedo = "albedo"
	LayerNormal = "normal"
	LayerORM    = "orm"
)

// Images converts the three buffers of m to NRGBA images. The normal and
// ORM images are opaque.
func Images(m *texture.Map) (albedo, normal, orm *image.NRGBA) {
	rect := image.Rect(0, 0, m.Width, m.Height)
	albedo = &image.NRGBA{
		Pix:    append([]byte(nil), m.Albedo...),
		Stride: m.Width * texture.AlbedoChannels,
		Rect:   rect,
	}
	return albedo, expand(m.Normal, rect), expand(m.ORM, rect)
}

// expand widens a three-channel buffer to NRGBA with full alpha.
func expand(rgb []byte, rect image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(rect)
	for i, j := 0, 0; i+2 < len(rgb); i, j = i+3, j+4 {
		img.Pix[j] = rgb[i]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Options control PNG output.
type Options struct {
	Compression png.CompressionLevel
	// Preview writes a 2x2 seam sheet of each layer when set. It only makes
	// sense for repeat-addressed maps.
	Preview bool
	// PreviewSize is the edge length of the sheet; 0 keeps twice the map size.
	PreviewSize int
}

// WritePNGs writes <name>_albedo.png, <name>_normal.png and <name>_orm.png
// into dir and returns the paths written.
func WritePNGs(dir, name string, m *texture.Map, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	albedo, normal, orm := Images(m)
	layers := []struct {
		name string
		img  *image.NRGBA
	}{
		{LayerAlbedo, albedo},
		{LayerNormal, normal},
		{LayerORM, orm},
	}

	enc := &png.Encoder{CompressionLevel: opts.Compression}
	var paths []string
	for _, l := range layers {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, l.name))
		if err := writePNG(enc, path, l.img); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		if opts.Preview && m.Address == texture.AddressRepeat {
			path = filepath.Join(dir, fmt.Sprintf("%s_%s_preview.png", name, l.name))
			if err := writePNG(enc, path, SeamPreview(l.img, opts.PreviewSize)); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writePNG(enc *png.Encoder, path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := enc.Encode(f, img); err != nil {
		f.Close() // nolint:errcheck
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// SeamPreview tiles img 2x2 so any seam shows as a cross through the centre,
// then resizes the sheet to size x size. size <= 0 skips the resize.
func SeamPreview(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sheet := image.NewNRGBA(image.Rect(0, 0, 2*w, 2*h))
	for ty := 0; ty < 2; ty++ {
		for tx := 0; tx < 2; tx++ {
			r := image.Rect(tx*w, ty*h, (tx+1)*w, (ty+1)*h)
			draw.Draw(sheet, r, img, b.Min, draw.Src)
		}
	}
	if size <= 0 || (size == 2*w && size == 2*h) {
		return sheet
	}

	g := gift.New(gift.Resize(size, size, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(sheet.Bounds()))
	g.Draw(dst, sheet)
	return dst
}
