package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSV column order, giữ ổn định để file export cũ import lại được
var csvHeader = []string{
	"upc", "name", "seriesName", "seriesVolume", "seriesYear",
	"issueNumber", "printing", "variantNumber", "starred", "coverImage",
}

// WriteCSV streams the collection as CSV with a header row
func WriteCSV(w io.Writer, items []Item) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range items {
		starred := ""
		if item.Starred {
			starred = "yes"
		}

		record := []string{
			item.UPC,
			item.Name,
			item.SeriesName,
			item.SeriesVolume,
			item.SeriesYear,
			item.IssueNumber,
			item.Printing,
			item.VariantNumber,
			starred,
			item.CoverImage,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses an uploaded collection file. Lenient: comment lines
// (#) và rows thiếu quá nhiều cột bị skip thay vì fail cả file.
// Returns items theo thứ tự xuất hiện.
func ReadCSV(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var items []Item
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}

		// Header row nhận diện bằng cột đầu
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "upc") {
				continue
			}
		}

		if len(record) < 6 {
			continue
		}

		upc := strings.TrimSpace(record[0])
		if upc == "" {
			continue
		}

		item := Item{
			UPC:          upc,
			Name:         record[1],
			SeriesName:   record[2],
			SeriesVolume: record[3],
			SeriesYear:   record[4],
			IssueNumber:  record[5],
		}
		if len(record) > 6 {
			item.Printing = record[6]
		}
		if len(record) > 7 {
			item.VariantNumber = record[7]
		}
		if len(record) > 8 {
			item.Starred = strings.EqualFold(strings.TrimSpace(record[8]), "yes")
		}
		if len(record) > 9 {
			item.CoverImage = record[9]
		}

		items = append(items, item)
	}

	return items, nil
}
