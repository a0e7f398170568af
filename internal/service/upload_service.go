package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"aman-backend/pkg/validator"
)

type UploadService struct {
	uploadDir    string
	maxSize      int64
	allowedTypes []string
}

func NewUploadService(uploadDir string, maxSize int64) *UploadService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}

	return &UploadService{
		uploadDir:    uploadDir,
		maxSize:      maxSize,
		allowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico"},
	}
}

// UploadImage stores the file under a generated name and returns the public
// URL. Editors treat the result as an opaque string; file contents are never
// inspected beyond the extension and size checks.
func (s *UploadService) UploadImage(file *multipart.FileHeader) (string, string, error) {
	if file == nil {
		return "", "", errors.New("image file is required")
	}
	if !validator.ValidateFileSize(file.Size, s.maxSize) {
		return "", "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext) {
		return "", "", errors.New("file type not allowed")
	}

	filename := uuid.New().String() + ext
	filePath := filepath.Join(s.uploadDir, filename)

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}

	url := "/uploads/" + filename
	return url, filename, nil
}

func (s *UploadService) UploadMultipleImages(files []*multipart.FileHeader) ([]string, error) {
	var urls []string

	for _, file := range files {
		url, _, err := s.UploadImage(file)
		if err != nil {
			for _, u := range urls {
				s.DeleteImage(u)
			}
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func (s *UploadService) DeleteImage(url string) error {
	filename := filepath.Base(strings.TrimSpace(url))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return errors.New("invalid image name")
	}
	filename = validator.SanitizeFilename(filename)
	return os.Remove(filepath.Join(s.uploadDir, filename))
}

func (s *UploadService) isAllowedType(ext string) bool {
	for _, allowed := range s.allowedTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}
