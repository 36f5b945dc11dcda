package common

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
)

// ReadFormFile reads the whole content of a multipart file field.
func ReadFormFile(ctx echo.Context, field string) ([]byte, string, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get uploaded file: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, file.Filename, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		_ = src.Close() // read-only multipart part
	}()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, file.Filename, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, file.Filename, nil
}

// FormValues returns every value of a repeated form field.
func FormValues(ctx echo.Context, field string) ([]string, error) {
	form, err := ctx.FormParams()
	if err != nil {
		return nil, err
	}
	return form[field], nil
}
