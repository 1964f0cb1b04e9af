package export

import "strings"

// escapeCell protects exported spreadsheets against formula injection:
// titles and descriptions are scraped or generated text, and a leading '='
// or '+' would execute when the file is opened in a spreadsheet.
func escapeCell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '|', '%', '\t', '\r', '\n':
		return "'" + value
	}
	return value
}

func escapeRow(row []string) []string {
	escaped := make([]string, len(row))
	for i, cell := range row {
		escaped[i] = escapeCell(cell)
	}
	return escaped
}

// sanitizeText flattens newlines out of free text destined for a CSV cell.
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
