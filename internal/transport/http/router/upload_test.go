package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", sanitizeFilename("photo.jpg"))
	assert.Equal(t, "my_photo_1.png", sanitizeFilename("my photo 1.png"))
	assert.Equal(t, "____.jpg", sanitizeFilename("商品图片.jpg"))
	// 路径穿越被剥掉
	assert.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "file", sanitizeFilename(""))
}
