package service

import (
	"Moodboard/pkg/errs"
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

// MaxImageSize 单张图片上限 10MB
const MaxImageSize = 10 << 20

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// sniffImage 只读文件头和尺寸, 不解码整图
func sniffImage(data []byte) (string, image.Config, error) {
	if len(data) == 0 {
		return "", image.Config{}, errs.Invalid("image", "image file is empty")
	}
	if len(data) > MaxImageSize {
		return "", image.Config{}, errs.Invalid("image", "image size exceeds 10MB")
	}

	contentType := http.DetectContentType(data)
	if !allowedMime[contentType] {
		return "", image.Config{}, errs.Invalid("image", "unsupported image type: %s", contentType)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", image.Config{}, errs.Invalid("image", "invalid image: %v", err)
	}
	return contentType, cfg, nil
}
