package commands

import (
	"image"
	"math"
)

// tan(22.5°) and tan(67.5°) bound the horizontal and vertical gradient sectors.
var (
	tan22 = math.Tan(math.Pi / 8)
	tan67 = math.Tan(3 * math.Pi / 8)
)

// cannyEdges runs Canny edge detection on src: 3x3 Sobel gradients with L1
// magnitude, non-maximum suppression and hysteresis between low and high.
func cannyEdges(src *image.Gray, low, high float64) *image.Gray {
	if low > high {
		low, high = high, low
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	at := func(x, y int) float64 {
		return float64(src.Pix[reflect101(y, h)*src.Stride+reflect101(x, w)])
	}

	dx := make([]float64, w*h)
	dy := make([]float64, w*h)
	mag := make([]float64, w*h)
	parallelFor(h, func(y int) {
		for x := 0; x < w; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			i := y*w + x
			dx[i] = gx
			dy[i] = gy
			mag[i] = math.Abs(gx) + math.Abs(gy)
		}
	})

	magAt := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	const (
		none = iota
		weak
		strong
	)
	state := make([]uint8, w*h)
	parallelFor(h, func(y int) {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m <= low {
				continue
			}
			ax, ay := math.Abs(dx[i]), math.Abs(dy[i])
			var isMax bool
			switch {
			case ay <= ax*tan22:
				isMax = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ay > ax*tan67:
				isMax = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (dx[i] < 0) != (dy[i] < 0) {
					s = -1
				}
				isMax = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !isMax {
				continue
			}
			if m > high {
				state[i] = strong
			} else {
				state[i] = weak
			}
		}
	})

	// Hysteresis: grow strong edges through 8-connected weak pixels.
	stack := make([]int, 0, 1024)
	for i, s := range state {
		if s == strong {
			stack = append(stack, i)
			dst.Pix[(i/w)*dst.Stride+i%w] = 255
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for ny := y - 1; ny <= y+1; ny++ {
			for nx := x - 1; nx <= x+1; nx++ {
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == weak {
					state[j] = strong
					dst.Pix[ny*dst.Stride+nx] = 255
					stack = append(stack, j)
				}
			}
		}
	}
	return dst
}
