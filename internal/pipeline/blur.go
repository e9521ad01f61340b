package pipeline

import "image"

// boxBlur averages each pixel over a (2*radius+1)-wide window, as two
// 1-D passes: horizontal first, then vertical over the horizontal
// output. Window samples past the canvas are clamped to the edge pixel,
// so a uniform image stays exactly uniform. Iterating the pass pair
// approximates a Gaussian without closed-form weights. Alpha passes
// through untouched.
func boxBlur(src *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		return src
	}
	horiz := blurPass(src, radius, true)
	return blurPass(horiz, radius, false)
}

// blurPass runs one 1-D averaging pass and returns a fresh buffer.
func blurPass(src *image.NRGBA, radius int, horizontal bool) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	window := uint32(2*radius + 1)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b uint32
			for d := -radius; d <= radius; d++ {
				sx, sy := x, y
				if horizontal {
					sx = clamp(x+d, 0, w-1)
				} else {
					sy = clamp(y+d, 0, h-1)
				}
				i := src.PixOffset(sx, sy)
				r += uint32(src.Pix[i])
				g += uint32(src.Pix[i+1])
				b += uint32(src.Pix[i+2])
			}
			o := dst.PixOffset(x, y)
			dst.Pix[o] = uint8(r / window)
			dst.Pix[o+1] = uint8(g / window)
			dst.Pix[o+2] = uint8(b / window)
			dst.Pix[o+3] = src.Pix[src.PixOffset(x, y)+3]
		}
	}
	return dst
}

// darken scales the R, G, B channels in place, truncating toward zero.
// Alpha is left alone.
func darken(img *image.NRGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i]) * factor)
		img.Pix[i+1] = uint8(float64(img.Pix[i+1]) * factor)
		img.Pix[i+2] = uint8(float64(img.Pix[i+2]) * factor)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
