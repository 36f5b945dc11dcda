package commands

import (
	"errors"
	"testing"

	"github.com/jo-hoe/fundusref/internal/common"
)

func TestDecodeImage_SupportedFormats(t *testing.T) {
	for _, format := range []string{"png", "jpeg", "gif"} {
		t.Run(format, func(t *testing.T) {
			data := encodeTestImage(t, createTestImage(40, 30), format)

			img, got, err := DecodeImage(data, DefaultMaxDecodePixels)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != format {
				t.Errorf("Expected format %s, got %s", format, got)
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
				t.Errorf("Expected 40x30, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
			}
		})
	}
}

func TestDecodeImage_Failures(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		maxPixels int
	}{
		{name: "empty", data: nil},
		{name: "text file", data: []byte("not a valid image")},
		{name: "pdf header", data: []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")},
		{name: "svg", data: []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`)},
		{name: "truncated png", data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}},
		{name: "too many pixels", maxPixels: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil && tt.maxPixels > 0 {
				data = encodeTestImage(t, createTestImage(20, 20), "png")
			}

			img, _, err := DecodeImage(data, tt.maxPixels)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, common.ErrImageDecode) {
				t.Errorf("Expected ErrImageDecode, got %v", err)
			}
			if img != nil {
				t.Error("Expected nil image on failure")
			}
		})
	}
}

func TestHasCorrectPngSignature(t *testing.T) {
	if !hasCorrectPngSignature(encodeTestImage(t, createTestImage(2, 2), "png")) {
		t.Error("Expected PNG signature to be detected")
	}
	if hasCorrectPngSignature([]byte{0x89, 'P'}) {
		t.Error("Expected short data to be rejected")
	}
}
