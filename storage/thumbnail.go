package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path"
	"strings"

	"github.com/nfnt/resize"
)

// ThumbMaxSize 缩略图边长上限
const ThumbMaxSize = 500

// Thumbnail bounds the image to ThumbMaxSize×ThumbMaxSize and re-encodes it
// as JPEG.
func Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	thumb := resize.Thumbnail(ThumbMaxSize, ThumbMaxSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ThumbKey 在扩展名前插 _thumb："spots/s1/a.jpg" → "spots/s1/a_thumb.jpg"
func ThumbKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb" + ext
}
