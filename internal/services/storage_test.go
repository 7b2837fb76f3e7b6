package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	headers := req.MultipartForm.File["resume"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestResumeStorage_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewResumeStorage(dir)
	require.NoError(t, storage.EnsureUploadDir())

	path, err := storage.SaveResume(multipartFileHeader(t, "Jane Doe.PDF", []byte("%PDF-1.4 data")))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "resume_"))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 data", string(data))

	require.NoError(t, storage.DeleteResume(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is not an error.
	assert.NoError(t, storage.DeleteResume(path))
}

func TestResumeStorage_RejectsNonPDF(t *testing.T) {
	storage := NewResumeStorage(t.TempDir())

	_, err := storage.SaveResume(multipartFileHeader(t, "resume.docx", []byte("PK")))
	assert.ErrorIs(t, err, ErrUnsupportedResumeType)
}

func TestResumeStorage_RefusesPathsOutsideUploadDir(t *testing.T) {
	root := t.TempDir()
	storage := NewResumeStorage(filepath.Join(root, "uploads"))
	outside := filepath.Join(root, "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	assert.Error(t, storage.DeleteResume(outside))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestCheckResumeExtension(t *testing.T) {
	assert.NoError(t, CheckResumeExtension("cv.pdf"))
	assert.NoError(t, CheckResumeExtension("CV.Pdf"))
	assert.ErrorIs(t, CheckResumeExtension("cv.txt"), ErrUnsupportedResumeType)
	assert.ErrorIs(t, CheckResumeExtension("cv"), ErrUnsupportedResumeType)
}
