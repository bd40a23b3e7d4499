package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/utkarshshahi0/crud-assesment/internal/storage"
	crud_errors "github.com/utkarshshahi0/crud-assesment/pkg/errors"
)

// Accepted upload kinds. A file must pass on both axes: declared content
// type and filename extension.
var (
	allowedExtensions = map[string]bool{
		".jpeg": true,
		".jpg":  true,
		".png":  true,
		".pdf":  true,
	}
	allowedContentTypes = map[string]bool{
		"image/jpeg":      true,
		"image/png":       true,
		"application/pdf": true,
	}
)

type UploadService struct {
	store storage.BlobStore
}

func NewUploadService(store storage.BlobStore) *UploadService {
	return &UploadService{store: store}
}

// StoreAttachment validates one named file part and writes it to blob
// storage under "<field>-<unix-millis><ext>" so concurrent uploads cannot
// collide. It returns the stored path.
func (s *UploadService) StoreAttachment(ctx context.Context, field string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("%w: %s", crud_errors.ErrNotUploaded, field)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")
	if !allowedExtensions[ext] || !allowedContentTypes[contentType] {
		return "", fmt.Errorf("%w: accepted types only", crud_errors.ErrInvalidInput)
	}

	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := fmt.Sprintf("%s-%d%s", field, time.Now().UnixMilli(), ext)
	return s.store.Save(ctx, name, contentType, file, fh.Size)
}
