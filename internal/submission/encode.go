// File: internal/submission/encode.go
package submission

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// jpegQuality keeps uploads small without visible artifacts on phone photos.
const jpegQuality = 80

// encodeJPEG decodes any supported image format and re-encodes it as JPEG at a
// fixed quality. This normalizes camera and gallery input to one format and
// strips whatever metadata the original carried.
func encodeJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding photo as jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
