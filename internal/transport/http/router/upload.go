package router

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop-api/internal/transport/http/ez"
)

// sanitizeFilename 只留 [A-Za-z0-9._-]，其余替换成下划线
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

func mountUpload(authed *gin.RouterGroup, d Deps) {
	e := ez.New(authed)

	ez.POSTFILES(e, "/upload", "file", func(c *gin.Context, files []*multipart.FileHeader) (any, error) {
		if err := os.MkdirAll(d.Cfg.Uploads.Dir, 0o755); err != nil {
			return nil, ez.Internal("prepare uploads dir failed", err)
		}
		f := files[0]
		name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(f.Filename))
		if err := c.SaveUploadedFile(f, filepath.Join(d.Cfg.Uploads.Dir, name)); err != nil {
			return nil, ez.Internal("save file failed", err)
		}
		return gin.H{
			"filename": name,
			"path":     "/uploads/" + name,
			"size":     f.Size,
		}, nil
	})
}
