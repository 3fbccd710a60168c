package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/zvalenta/forumscan/internal/model"
)

// recordSheet is the workbook sheet all records are written to. The
// merge step reads whatever the first sheet of a shard is named, so
// keeping the excelize default avoids a rename on every write.
const recordSheet = "Sheet1"

// WritePosts writes post records to an xlsx workbook at path, one row
// per record in the canonical column order, header row first.
func WritePosts(path string, records []model.PostRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return writeWorkbook(path, model.PostColumns, rows)
}

// WriteVotes writes vote records to an xlsx workbook at path.
func WriteVotes(path string, records []model.VoteRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return writeWorkbook(path, model.VoteColumns, rows)
}

// writeWorkbook writes a header row plus data rows to a fresh workbook.
func writeWorkbook(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // nothing left to do about a close error after SaveAs

	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)

	for rowIdx, row := range all {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("write workbook %s: %w", path, err)
			}
			if err := f.SetCellValue(recordSheet, cell, value); err != nil {
				return fmt.Errorf("write workbook %s: %w", path, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return nil
}

// ReadRows returns every row of the workbook's first sheet, header
// included, as plain strings.
func ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", path, err)
	}
	return rows, nil
}
