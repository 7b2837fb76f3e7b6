package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"hirelens/resume-analyzer/internal/models"
)

// PDFInspector checks that a resume is a readable PDF before it is attached
// to a draft.
type PDFInspector interface {
	Inspect(filePath, displayName string) (*models.ResumeFile, error)
}

type pdfInspector struct {
	maxFileSize int64
}

func NewPDFInspector(maxFileSize int64) PDFInspector {
	return &pdfInspector{maxFileSize: maxFileSize}
}

func (p *pdfInspector) Inspect(filePath, displayName string) (file *models.ResumeFile, err error) {
	if displayName == "" {
		displayName = filepath.Base(filePath)
	}
	if err := CheckResumeExtension(displayName); err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat resume: %w", err)
	}
	if p.maxFileSize > 0 && info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("resume file too large. Max size: %d bytes", p.maxFileSize)
	}

	// The PDF reader panics on some malformed documents.
	defer func() {
		if rec := recover(); rec != nil {
			file = nil
			err = fmt.Errorf("%w: malformed PDF: %v", ErrUnsupportedResumeType, rec)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrUnsupportedResumeType, err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrUnsupportedResumeType)
	}

	return &models.ResumeFile{
		Name:      displayName,
		Path:      filePath,
		Size:      info.Size(),
		PageCount: totalPage,
		HasText:   hasText(r),
	}, nil
}

// hasText reports whether any page yields extractable text. Scanned
// resumes are accepted but flagged.
func hasText(r *pdf.Reader) bool {
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			return true
		}
	}
	return false
}
