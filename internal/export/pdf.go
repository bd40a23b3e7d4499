package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"

	"github.com/go-pdf/fpdf"
)

// ToPrintableDocument renders one record onto a single A4 page: five lines
// at fixed vertical positions, field values only, no attachment contents.
func ToPrintableDocument(rec application.Application) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)

	amount := strconv.FormatFloat(rec.ApplicationAmount, 'f', -1, 64)
	lines := []struct {
		y    float64
		text string
	}{
		{10, fmt.Sprintf("Name: %s", rec.Name)},
		{20, fmt.Sprintf("Mobile: %s", rec.Mobile)},
		{30, fmt.Sprintf("Email: %s", rec.Email)},
		{40, fmt.Sprintf("Gender: %s", rec.Gender)},
		{50, fmt.Sprintf("Application Amount: %s", amount)},
	}
	for _, line := range lines {
		pdf.Text(10, line.y, line.text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
