package texture

// Texel is the full per-pixel evaluation of a sampler.
type Texel struct {
	Height    float64
	Color     RGB
	Alpha     float64
	Occlusion float64
	Roughness float64
	Metallic  float64
}

// SampleFunc evaluates a texel at pixel-centre UV coordinates.
type SampleFunc func(u, v float64) Texel

// RenderOptions configure Render.
type RenderOptions struct {
	Address        AddressMode
	NormalStrength float64
	// Encoder defaults to DefaultEncoder.
	Encoder *Encoder
}

// Render evaluates sample once per pixel row visit at
// ((x+0.5)/width, (y+0.5)/height) and assembles the three output buffers.
// Normals use wrapped neighbours for AddressRepeat and clamped neighbours
// for AddressClamp.
func Render(width, height int, opts RenderOptions, sample SampleFunc) (*Map, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	enc := opts.Encoder
	if enc == nil {
		enc = DefaultEncoder()
	}
	mode := BoundaryWrap
	if opts.Address == AddressClamp {
		mode = BoundaryClamp
	}

	m := newMap(width, height, opts.Address)
	fw, fh := float64(width), float64(height)
	win := newWindow(width, height, mode, func(y int, row []Texel) {
		v := (float64(y) + 0.5) / fh
		for x := range row {
			row[x] = sample((float64(x)+0.5)/fw, v)
		}
	})

	for y := 0; y < height; y++ {
		if y > 0 {
			win.advance(y)
		}
		for x := 0; x < width; x++ {
			t := win.cur[x]
			idx := y*width + x

			a := m.Albedo[idx*AlbedoChannels:]
			if t.Alpha > 0 {
				a[0] = enc.Encode(t.Color[0])
				a[1] = enc.Encode(t.Color[1])
				a[2] = enc.Encode(t.Color[2])
			}
			a[3] = unitByte(t.Alpha)

			o := m.ORM[idx*ORMChannels:]
			o[0] = unitByte(t.Occlusion)
			o[1] = unitByte(t.Roughness)
			o[2] = unitByte(t.Metallic)

			dx := (win.cur[neighbor(x+1, width, mode)].Height - win.cur[neighbor(x-1, width, mode)].Height) * opts.NormalStrength
			dy := (win.next[x].Height - win.prev[x].Height) * opts.NormalStrength
			encodeNormal(m.Normal[idx*NormalChannels:], dx, dy)
		}
	}
	return m, nil
}
