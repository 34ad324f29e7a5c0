package export

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/proctex/internal/foliage"
	"github.com/MeKo-Tech/proctex/internal/texture"
)

func TestImagesLayout(t *testing.T) {
	m, err := texture.NewBarkGenerator(texture.DefaultBarkConfig()).Generate(12, 7)
	require.NoError(t, err)

	albedo, normal, orm := Images(m)
	assert.Equal(t, 12, albedo.Bounds().Dx())
	assert.Equal(t, 7, normal.Bounds().Dy())
	assert.Len(t, orm.Pix, 12*7*4)

	for y := 0; y < 7; y++ {
		for x := 0; x < 12; x++ {
			a := m.AlbedoAt(x, y)
			got := albedo.NRGBAAt(x, y)
			assert.Equal(t, a, [4]byte{got.R, got.G, got.B, got.A})

			n := normal.NRGBAAt(x, y)
			i := (y*12 + x) * texture.NormalChannels
			assert.Equal(t, m.Normal[i:i+3], []byte{n.R, n.G, n.B})
			assert.Equal(t, uint8(0xff), n.A)

			o := orm.NRGBAAt(x, y)
			assert.Equal(t, m.ORMAt(x, y), [3]byte{o.R, o.G, o.B})
		}
	}

	// The albedo image owns its pixels.
	albedo.Pix[0] ^= 0xff
	assert.NotEqual(t, albedo.Pix[0], m.Albedo[0])
}

func TestSeamPreviewTiles(t *testing.T) {
	m, err := texture.NewGroundGenerator(texture.DefaultGroundConfig()).Generate(8, 6)
	require.NoError(t, err)
	albedo, _, _ := Images(m)

	sheet := SeamPreview(albedo, 0)
	require.Equal(t, 16, sheet.Bounds().Dx())
	require.Equal(t, 12, sheet.Bounds().Dy())
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t, albedo.NRGBAAt(x%8, y%6), sheet.NRGBAAt(x, y))
		}
	}

	small := SeamPreview(albedo, 10)
	assert.Equal(t, 10, small.Bounds().Dx())
	assert.Equal(t, 10, small.Bounds().Dy())
}

func TestWritePNGs(t *testing.T) {
	dir := t.TempDir()
	bark, err := texture.NewBarkGenerator(texture.DefaultBarkConfig()).Generate(16, 16)
	require.NoError(t, err)
	leaf, err := foliage.NewLeafGenerator(foliage.DefaultLeafConfig()).Generate(16, 16)
	require.NoError(t, err)

	opts := Options{Compression: png.BestSpeed, Preview: true, PreviewSize: 24}
	paths, err := WritePNGs(dir, "bark", bark, opts)
	require.NoError(t, err)
	assert.Len(t, paths, 6)

	// Cards never get a seam sheet.
	paths, err = WritePNGs(filepath.Join(dir, "cards"), "leaf", leaf, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "cards", "leaf_albedo.png"),
		filepath.Join(dir, "cards", "leaf_normal.png"),
		filepath.Join(dir, "cards", "leaf_orm.png"),
	}, paths)

	f, err := os.Open(filepath.Join(dir, "bark_normal_preview.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 24, img.Bounds().Dx())
}
