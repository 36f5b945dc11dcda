package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage_Normalizes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 51, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 0, G: 255, B: 0, A: 255})

	buf := FromImage(img)
	if buf.Width != 2 || buf.Height != 1 {
		t.Fatalf("Expected 2x1 buffer, got %dx%d", buf.Width, buf.Height)
	}
	r, g, b := buf.RGB(0, 0)
	if r != 1 || g != 0 || b != 0.2 {
		t.Errorf("Expected (1, 0, 0.2), got (%f, %f, %f)", r, g, b)
	}
	if !buf.InRange() {
		t.Error("Expected samples in [0,1]")
	}
}

func TestGray_BT601Weights(t *testing.T) {
	buf := NewBuffer(3, 1)
	copy(buf.Pix, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1})

	gray := buf.Gray()
	want := []uint8{76, 150, 29}
	for i, w := range want {
		if gray.Pix[i] != w {
			t.Errorf("pixel %d: expected %d, got %d", i, w, gray.Pix[i])
		}
	}
}

func TestImage_RoundTrip(t *testing.T) {
	buf := NewBuffer(2, 2)
	for i := range buf.Pix {
		buf.Pix[i] = float32(i) / float32(len(buf.Pix)-1)
	}

	back := FromImage(buf.Image())
	for i := range buf.Pix {
		if d := back.Pix[i] - buf.Pix[i]; d > 1.0/255 || d < -1.0/255 {
			t.Errorf("sample %d: expected %f, got %f", i, buf.Pix[i], back.Pix[i])
		}
	}
}

func TestInRange_DetectsOutliers(t *testing.T) {
	buf := NewBuffer(1, 1)
	buf.Pix[1] = 1.5
	if buf.InRange() {
		t.Error("Expected out-of-range sample to be detected")
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(image.NewGray(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	if len(data) < 8 || data[1] != 'P' || data[2] != 'N' || data[3] != 'G' {
		t.Error("Expected PNG signature")
	}
}
