package image

import (
	"errors"
	"strings"
)

// Rendition names. Real resampling lives in an external collaborator; this
// service validates and hands the same bytes to each rendition slot so the
// storage layout stays stable when proper processing is plugged in.
const (
	RenditionOriginal = "original"
	RenditionDisplay  = "display"
	RenditionThumb    = "thumb"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// Rendition is one stored variant of an uploaded image.
type Rendition struct {
	Name        string
	Data        []byte
	ContentType string
}

// Service validates uploaded images and produces their renditions.
type Service struct {
	maxSizeBytes int64
}

func NewService(maxSizeBytes int64) *Service {
	return &Service{maxSizeBytes: maxSizeBytes}
}

// Validate checks size and content type of an uploaded image.
func (s *Service) Validate(data []byte, contentType string) error {
	if len(data) == 0 {
		return errors.New("image data is empty")
	}
	if s.maxSizeBytes > 0 && int64(len(data)) > s.maxSizeBytes {
		return errors.New("image exceeds size limit")
	}
	if contentType != "" && !allowedContentTypes[normalizeContentType(contentType)] {
		return errors.New("unsupported image type")
	}
	return nil
}

// Renditions produces the stored variants for an uploaded image.
func (s *Service) Renditions(data []byte, contentType string) ([]Rendition, error) {
	if err := s.Validate(data, contentType); err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return []Rendition{
		{Name: RenditionOriginal, Data: data, ContentType: contentType},
		{Name: RenditionDisplay, Data: data, ContentType: contentType},
		{Name: RenditionThumb, Data: data, ContentType: contentType},
	}, nil
}

func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
