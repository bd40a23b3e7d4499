package export_test

import (
	"bytes"
	"testing"

	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"
	"github.com/utkarshshahi0/crud-assesment/internal/export"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var header = []string{"name", "mobile", "email", "gender", "applicationAmount", "profilePicture", "markSheet"}

func openSheet(t *testing.T, buf []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	return rows
}

func TestToSpreadsheetEmpty(t *testing.T) {
	buf, err := export.ToSpreadsheet(nil)
	require.NoError(t, err)

	rows := openSheet(t, buf)
	require.Len(t, rows, 1)
	assert.Equal(t, header, rows[0])
}

func TestToSpreadsheetRows(t *testing.T) {
	records := []application.Application{
		{
			ID:                uuid.New(),
			Name:              "A",
			Mobile:            "123",
			Email:             "a@x.com",
			Gender:            "F",
			ApplicationAmount: 100,
			ProfilePicture:    "uploads/profilePicture-1.png",
			MarkSheet:         "uploads/markSheet-1.pdf",
		},
		{
			ID:                uuid.New(),
			Name:              "B",
			Mobile:            "456",
			Email:             "b@x.com",
			Gender:            "M",
			ApplicationAmount: 250.5,
			ProfilePicture:    "uploads/profilePicture-2.jpg",
			MarkSheet:         "uploads/markSheet-2.pdf",
		},
	}

	buf, err := export.ToSpreadsheet(records)
	require.NoError(t, err)

	rows := openSheet(t, buf)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"A", "123", "a@x.com", "F", "100", "uploads/profilePicture-1.png", "uploads/markSheet-1.pdf"}, rows[1])
	assert.Equal(t, []string{"B", "456", "b@x.com", "M", "250.5", "uploads/profilePicture-2.jpg", "uploads/markSheet-2.pdf"}, rows[2])
}
