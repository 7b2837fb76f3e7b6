package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedResumeType = errors.New("resume must be a PDF file")

// ResumeStorage keeps uploaded resumes on local disk while a form is open.
type ResumeStorage interface {
	SaveResume(file *multipart.FileHeader) (string, error)
	DeleteResume(path string) error
	EnsureUploadDir() error
}

type resumeStorage struct {
	uploadPath string
}

func NewResumeStorage(uploadPath string) ResumeStorage {
	return &resumeStorage{
		uploadPath: uploadPath,
	}
}

func (s *resumeStorage) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveResume copies the upload under a unique name and returns its path.
func (s *resumeStorage) SaveResume(file *multipart.FileHeader) (string, error) {
	if err := CheckResumeExtension(file.Filename); err != nil {
		return "", err
	}

	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("resume_%s.pdf", uuid.New().String()))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

// DeleteResume removes a stored resume. Paths outside the upload
// directory are refused.
func (s *resumeStorage) DeleteResume(path string) error {
	rel, err := filepath.Rel(s.uploadPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing to delete file outside upload directory: %s", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func CheckResumeExtension(name string) error {
	if ext := strings.ToLower(filepath.Ext(name)); ext != ".pdf" {
		return fmt.Errorf("%w: got %q", ErrUnsupportedResumeType, ext)
	}
	return nil
}
