package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

var ErrFileTooLarge = errors.New("file too large")

// UploadReader loads multipart uploads into memory for the lifetime of one request.
// Nothing is written to disk.
type UploadReader interface {
	ReadUpload(file *multipart.FileHeader) ([]byte, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{maxFileSize: maxFileSize}
}

// ReadUpload implements UploadReader.
func (u *uploadReader) ReadUpload(file *multipart.FileHeader) ([]byte, error) {
	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, u.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	var r io.Reader = src
	if u.maxFileSize > 0 {
		r = io.LimitReader(src, u.maxFileSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if u.maxFileSize > 0 && int64(len(data)) > u.maxFileSize {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, u.maxFileSize)
	}

	return data, nil
}
