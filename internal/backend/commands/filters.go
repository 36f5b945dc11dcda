package commands

import (
	"image"
	"math"
)

// reflect101 maps an out-of-range index into [0, n) by mirroring around the
// edge pixel without repeating it (gfedcb|abcdefgh|gfedcba).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}

// gaussianKernel returns a normalized 1D Gaussian kernel. A non-positive
// sigma is derived from the kernel size.
func gaussianKernel(size int, sigma float64) []float64 {
	if sigma <= 0 {
		sigma = 0.3*(float64(size-1)*0.5-1) + 0.8
	}
	kernel := make([]float64, size)
	center := float64(size-1) / 2
	var sum float64
	for i := range kernel {
		d := float64(i) - center
		kernel[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur applies a separable Gaussian blur with reflect-101 borders.
func gaussianBlur(src *image.Gray, size int, sigma float64) *image.Gray {
	kernel := gaussianKernel(size, sigma)
	radius := size / 2
	w, h := src.Rect.Dx(), src.Rect.Dy()

	horizontal := make([]float64, w*h)
	parallelFor(h, func(y int) {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			var acc float64
			for k, weight := range kernel {
				acc += weight * float64(row[reflect101(x+k-radius, w)])
			}
			horizontal[y*w+x] = acc
		}
	})

	dst := image.NewGray(image.Rect(0, 0, w, h))
	parallelFor(h, func(y int) {
		for x := 0; x < w; x++ {
			var acc float64
			for k, weight := range kernel {
				acc += weight * horizontal[reflect101(y+k-radius, h)*w+x]
			}
			dst.Pix[y*dst.Stride+x] = clampRound8(acc)
		}
	})
	return dst
}

// binaryThreshold maps samples strictly above level to 255 and the rest to 0.
func binaryThreshold(src *image.Gray, level uint8) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	parallelFor(h, func(y int) {
		in := src.Pix[y*src.Stride : y*src.Stride+w]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, v := range in {
			if v > level {
				out[x] = 255
			}
		}
	})
	return dst
}

func clampRound8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
