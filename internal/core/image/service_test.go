package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	svc := NewService(10)

	assert.Error(t, svc.Validate(nil, "image/jpeg"))
	assert.Error(t, svc.Validate(make([]byte, 11), "image/jpeg"))
	assert.Error(t, svc.Validate([]byte("data"), "text/html"))
	assert.NoError(t, svc.Validate([]byte("data"), "image/png"))
	assert.NoError(t, svc.Validate([]byte("data"), "image/jpeg; charset=binary"))
	assert.NoError(t, svc.Validate([]byte("data"), ""))
}

func TestRenditions(t *testing.T) {
	svc := NewService(0)

	renditions, err := svc.Renditions([]byte("photo"), "image/png")
	require.NoError(t, err)
	require.Len(t, renditions, 3)

	names := []string{renditions[0].Name, renditions[1].Name, renditions[2].Name}
	assert.Equal(t, []string{RenditionOriginal, RenditionDisplay, RenditionThumb}, names)
	for _, rendition := range renditions {
		assert.Equal(t, []byte("photo"), rendition.Data)
		assert.Equal(t, "image/png", rendition.ContentType)
	}
}

func TestRenditionsDefaultContentType(t *testing.T) {
	renditions, err := NewService(0).Renditions([]byte("photo"), "")
	require.NoError(t, err)
	for _, rendition := range renditions {
		assert.Equal(t, "image/jpeg", rendition.ContentType)
	}
}
