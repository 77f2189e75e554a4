package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m3tools/m3cd/src/internal/coalesced"
)

// ValuesSheet is the name of the sheet written by WriteXLSX.
const ValuesSheet = "Values"

var xlsxHeader = []interface{}{"asset", "section", "property", "index", "action", "value"}

// WriteXLSX writes one spreadsheet row per value of bundle.
func WriteXLSX(w io.Writer, bundle *coalesced.AssetBundle) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ValuesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if err := setRow(f, row, xlsxHeader); err != nil {
		return err
	}

	for _, asset := range bundle.Assets() {
		for _, section := range asset.Sections() {
			for _, property := range section.Properties() {
				for i, v := range property.Values {
					row++
					values := []interface{}{asset.Name, section.Name, property.Name, i, v.Action.String(), v.Value}
					if err := setRow(f, row, values); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := f.SetPanes(ValuesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(ValuesSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
