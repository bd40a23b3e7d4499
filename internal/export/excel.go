package export

import (
	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Applications"

var columns = []interface{}{
	"name", "mobile", "email", "gender", "applicationAmount", "profilePicture", "markSheet",
}

// ToSpreadsheet renders the records into a single-worksheet xlsx document.
// The internal id is not exported. An empty input yields a header-only sheet.
func ToSpreadsheet(records []application.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SheetName, "A1", &columns); err != nil {
		return nil, err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.Name,
			rec.Mobile,
			rec.Email,
			rec.Gender,
			rec.ApplicationAmount,
			rec.ProfilePicture,
			rec.MarkSheet,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
