package utility

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyCSV file CSV không có dòng header
var ErrEmptyCSV = errors.New("csv file is empty")

// CSVTable nội dung file CSV: header theo thứ tự cột và các dòng dạng header -> giá trị
type CSVTable struct {
	Headers []string
	Rows    []map[string]string
}

// ReadCSV đọc toàn bộ file CSV với dấu phân cách delimiter.
// Số cột mỗi dòng được phép khác header: cột thiếu bỏ qua, cột thừa không có tên cũng bỏ qua.
// Dòng trống hoàn toàn bị bỏ.
func ReadCSV(r io.Reader, delimiter rune) (*CSVTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	table := &CSVTable{Headers: headers}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line: %w", err)
		}
		if isBlankRecord(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, value := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			row[headers[i]] = value
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
