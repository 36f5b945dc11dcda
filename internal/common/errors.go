package common

import "errors"

var (
	// ErrUnknownSelection is returned when a disease or analysis category
	// identifier is outside the fixed set.
	ErrUnknownSelection = errors.New("unknown selection")

	// ErrImageDecode is returned when uploaded content is not a decodable raster image.
	ErrImageDecode = errors.New("image decode failure")
)
