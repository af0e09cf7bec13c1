package parser

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"github.com/xuri/excelize/v2"
)

func init() {
	Register("xlsx", parseXLSX)
}

// parseXLSX converts tabular spreadsheet input: each row of the active sheet
// becomes one document, analogous to delimited text. The sheet policy selects
// a sheet by name; default is the first sheet of the workbook.
func parseXLSX(data []byte, policy Policy) ([]models.Document, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer workbook.Close()

	sheet := policy.Sheet
	if sheet == "" {
		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return []models.Document{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return []models.Document{}, nil
	}

	var headers []string
	if policy.hasHeader() {
		headers = rows[0]
		rows = rows[1:]
	}

	documents := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		if headers == nil {
			headers = positionalFields(len(row))
		}
		source := make(map[string]interface{}, len(headers))
		for i, header := range headers {
			// GetRows trims trailing empty cells, keep the field with an empty value
			if i < len(row) {
				source[header] = row[i]
			} else {
				source[header] = ""
			}
		}
		documents = append(documents, models.Document{Source: source})
	}
	return documents, nil
}
