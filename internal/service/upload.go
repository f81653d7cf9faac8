package service

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"resumeqa/web/internal/model"
)

const pdfMIME = "application/pdf"

// IsPDF reports whether the file is a PDF. The declared content type wins
// when it is specific; a missing or generic one falls back to sniffing the
// bytes.
func IsPDF(f model.UploadFile) bool {
	declared := f.ContentType
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		declared = mt
	}
	declared = strings.ToLower(declared)

	switch declared {
	case pdfMIME:
		return true
	case "", "application/octet-stream":
		return mimetype.Detect(f.Data).Is(pdfMIME)
	default:
		return false
	}
}

// AllPDF reports whether every file of a non-empty selection is a PDF.
func AllPDF(files []model.UploadFile) bool {
	for _, f := range files {
		if !IsPDF(f) {
			return false
		}
	}
	return true
}
