package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumeqa/web/internal/model"
	"resumeqa/web/internal/service"
)

func TestIsPDF(t *testing.T) {
	pdfBytes := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	tests := []struct {
		name string
		file model.UploadFile
		want bool
	}{
		{"declared pdf", model.UploadFile{ContentType: "application/pdf"}, true},
		{"declared pdf with params", model.UploadFile{ContentType: "Application/PDF; charset=binary"}, true},
		{"declared docx", model.UploadFile{ContentType: "application/msword", Data: pdfBytes}, false},
		{"missing type sniffed pdf", model.UploadFile{Data: pdfBytes}, true},
		{"generic type sniffed pdf", model.UploadFile{ContentType: "application/octet-stream", Data: pdfBytes}, true},
		{"generic type sniffed text", model.UploadFile{ContentType: "application/octet-stream", Data: []byte("hello")}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.IsPDF(tc.file))
		})
	}
}

func TestAllPDF(t *testing.T) {
	assert.True(t, service.AllPDF([]model.UploadFile{pdf, pdf}))
	assert.False(t, service.AllPDF([]model.UploadFile{pdf, docx}))
}
