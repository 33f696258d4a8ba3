package photo

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/pethaven-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "photo not found")
	ErrThumbnailUnavailable = apperror.New(http.StatusNotFound, "thumbnail not available for this photo")
	ErrTooLarge             = apperror.New(http.StatusRequestEntityTooLarge, "photo exceeds the maximum upload size")
	ErrUnsupportedType      = apperror.New(http.StatusBadRequest, "unsupported photo type")
	ErrEmpty                = apperror.New(http.StatusBadRequest, "photo is empty")
)

// Photo is the metadata of an uploaded image. Bytes live in storage.
type Photo struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL serving the photo.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL serving the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
