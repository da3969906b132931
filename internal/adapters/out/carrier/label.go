package carrier

import (
	"bytes"
	"io"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/ledongthuc/pdf"
)

// PDFInspector checks label artifacts by extracting their text layer.
// Implements ports.LabelInspector.
type PDFInspector struct{}

// NewPDFInspector creates a label inspector for PDF artifacts.
func NewPDFInspector() *PDFInspector {
	return &PDFInspector{}
}

// ContainsTrackingPin reports whether the tracking pin appears in the
// artifact's extracted text. An artifact that cannot be parsed as a PDF
// fails the content gate with a validation error, not a transport one.
func (i *PDFInspector) ContainsTrackingPin(artifact []byte, trackingPin string) (bool, error) {
	if len(artifact) == 0 {
		return false, errs.NewValueIsRequiredError("artifact")
	}
	if trackingPin == "" {
		return false, errs.NewValueIsRequiredError("trackingPin")
	}

	reader, err := pdf.NewReader(bytes.NewReader(artifact), int64(len(artifact)))
	if err != nil {
		return false, errs.NewValidationErrorWithCause("label artifact", "not a readable document", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return false, errs.NewValidationErrorWithCause("label artifact", "text extraction failed", err)
	}

	var text strings.Builder
	if _, err := io.Copy(&text, plainText); err != nil {
		return false, errs.NewValidationErrorWithCause("label artifact", "text extraction failed", err)
	}

	return strings.Contains(text.String(), trackingPin), nil
}
