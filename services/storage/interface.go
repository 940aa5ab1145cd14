package storage

import (
	"context"
	"io"
)

// ImageStore uploads images and returns a publicly reachable URL.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
}
