package summarize

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

func (s *Summarizer) describeCSV(path string) string {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("Error: The file '%s' was not found.", path)
		}
		return fmt.Sprintf("Error processing CSV: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return "Error: There was a problem parsing the file."
	}
	if len(records) == 0 {
		return "Error: The file is empty."
	}

	header := records[0]
	data := records[1:]
	return fmt.Sprintf("CSV file with %d rows and %d columns.\nColumns: %s.\nFirst %d rows:\n%s",
		len(data), len(header), strings.Join(header, ", "), s.PreviewRows,
		renderTable(header, data, s.PreviewRows, false))
}

func (s *Summarizer) describeExcel(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Sprintf("Error: The file '%s' was not found.", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Sprintf("Error processing Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "Error: The Excel file is empty."
	}

	// one sub-report per sheet, native sheet order
	reports := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Sprintf("Error processing Excel file: %v", err)
		}
		var header []string
		var data [][]string
		if len(rows) > 0 {
			header = rows[0]
			data = rows[1:]
		}
		reports = append(reports, fmt.Sprintf(
			"Sheet '%s' has %d rows and %d columns. Columns: %s. First few rows:\n%s",
			sheet, len(data), len(header), strings.Join(header, ", "),
			renderTable(header, data, s.PreviewRows, true)))
	}
	return strings.Join(reports, "\n\n")
}

func (s *Summarizer) describeMarkdown(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "Error: The specified Markdown file was not found."
		}
		return fmt.Sprintf("Error reading Markdown file: %v", err)
	}
	return "Markdown file content:\n" + string(content)
}
