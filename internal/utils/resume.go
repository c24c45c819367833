package utils

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ExtractResumeText validates an uploaded PDF and pulls its plain text for
// scoring. Anything that is not a structurally sound PDF is rejected
// before extraction is attempted.
func ExtractResumeText(path string) (string, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return "", fmt.Errorf("not a valid PDF: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract PDF text: %w", err)
	}

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(b); err != nil {
		return "", err
	}
	return buf.String(), nil
}
