package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbName(t *testing.T) {
	assert.Equal(t, "thumb_123-abc.jpg", ThumbName("123-abc.jpg"))
}

func TestIsThumb(t *testing.T) {
	assert.True(t, IsThumb("thumb_123-abc.jpg"))
	assert.False(t, IsThumb("123-abc.jpg"))
}

func TestJPEGName(t *testing.T) {
	assert.Equal(t, "photo.jpg", JPEGName("photo.heic"))
	assert.Equal(t, "photo.jpg", JPEGName("photo.HEIF"))
	assert.Equal(t, "123-abc.jpg", JPEGName("123-abc.png"))
}

func TestIsHEIC(t *testing.T) {
	assert.True(t, IsHEIC("a.heic"))
	assert.True(t, IsHEIC("a.HEIF"))
	assert.False(t, IsHEIC("a.jpg"))
	assert.False(t, IsHEIC("heic.png"))
}

func TestIsImageFilename(t *testing.T) {
	for _, name := range []string{
		"a.jpg", "a.jpeg", "a.PNG", "a.gif", "a.webp", "a.avif",
		"a.tiff", "a.tif", "a.bmp", "a.ico", "a.heic", "a.heif",
	} {
		assert.True(t, IsImageFilename(name), name)
	}
	for _, name := range []string{"metadata.json", "a.txt", "a.zip", "noext"} {
		assert.False(t, IsImageFilename(name), name)
	}
}

func TestValidDegrees(t *testing.T) {
	assert.True(t, ValidDegrees(90))
	assert.True(t, ValidDegrees(180))
	assert.True(t, ValidDegrees(270))
	assert.False(t, ValidDegrees(0))
	assert.False(t, ValidDegrees(45))
	assert.False(t, ValidDegrees(360))
	assert.False(t, ValidDegrees(-90))
}
