package featrack

// Synthetic frame builders shared across the package tests.

// flatRGBA returns a uniform interleaved RGBA buffer.
func flatRGBA(width, height int, value uint8) []uint8 {
	pix := make([]uint8, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = value
		pix[i+1] = value
		pix[i+2] = value
		pix[i+3] = 255
	}
	return pix
}

// setRGBA overwrites a single pixel with a gray value.
func setRGBA(pix []uint8, width, x, y int, value uint8) {
	i := (y*width + x) * 4
	pix[i] = value
	pix[i+1] = value
	pix[i+2] = value
	pix[i+3] = 255
}

// gradientRGBA returns a buffer textured everywhere so that zero-offset SAD
// is the unique minimum for any patch.
func gradientRGBA(width, height int) []uint8 {
	pix := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			setRGBA(pix, width, x, y, uint8((x*7+y*13)%256))
		}
	}
	return pix
}

// checkerRGBA returns a 1px checkerboard, maximal gradient at every pixel.
func checkerRGBA(width, height int) []uint8 {
	pix := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			if (x+y)%2 == 0 {
				v = 255
			}
			setRGBA(pix, width, x, y, v)
		}
	}
	return pix
}

// flatGray returns a uniform grayscale frame.
func flatGray(width, height int, value uint8) *GrayFrame {
	g := NewGrayFrame(width, height)
	for i := range g.Pix {
		g.Pix[i] = value
	}
	return g
}

// movingFeature builds a feature with an explicit position and velocity.
func movingFeature(id int64, x, y, vx, vy float64) *FeaturePoint {
	return &FeaturePoint{ID: id, X: x, Y: y, VX: vx, VY: vy, Age: 1}
}
