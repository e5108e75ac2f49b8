// Package ingest turns pasted spreadsheet content into a grid of cells used to
// prefill assumption fields.
package ingest

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dcf_lite/pkg/core/utils"
)

var (
	lineBreak = regexp.MustCompile(`\r?\n`)
	cellSep   = regexp.MustCompile(`\t|,`)
	symbols   = strings.NewReplacer("$", "", ",", "", "%", "")
)

// Cell is either a number or trimmed text.
type Cell struct {
	Text     string
	Number   float64
	IsNumber bool
}

// NumberCell builds a numeric cell.
func NumberCell(v float64) Cell { return Cell{Number: v, IsNumber: true} }

// TextCell builds a text cell.
func TextCell(s string) Cell { return Cell{Text: s} }

func (c Cell) String() string {
	if c.IsNumber {
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return c.Text
}

// MarshalJSON emits a bare number or a string so a grid serialises as
// [["Units",100],["Price",10]].
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsNumber {
		return json.Marshal(c.Number)
	}
	return json.Marshal(c.Text)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*c = NumberCell(x)
	case string:
		*c = TextCell(x)
	case nil:
		*c = Cell{}
	default:
		*c = TextCell(strings.TrimSpace(string(data)))
	}
	return nil
}

type Row []Cell

type Grid []Row

// ParseTable splits pasted text on line breaks, then on tabs or commas. Each
// cell is trimmed, $ , and % are stripped, and a leading number is read
// ("100M" is 100); cells that do not start with a number keep their trimmed
// text. Rows whose first cell is empty
// text are dropped. It never fails.
func ParseTable(text string) Grid {
	grid := Grid{}
	if text == "" {
		return grid
	}
	for _, line := range lineBreak.Split(text, -1) {
		parts := cellSep.Split(line, -1)
		row := make(Row, 0, len(parts))
		for _, p := range parts {
			row = append(row, parseCell(p))
		}
		if keepRow(row) {
			grid = append(grid, row)
		}
	}
	return grid
}

// ParseHTMLTable reads every <tr> of the tables in an HTML clipboard payload
// (what Excel and Sheets put on the clipboard) using the same cell rules as
// ParseTable.
func ParseHTMLTable(html string) Grid {
	grid := Grid{}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return grid
	}
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		var row Row
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, parseCell(cell.Text()))
		})
		if keepRow(row) {
			grid = append(grid, row)
		}
	})
	return grid
}

// ParseClipboard picks the HTML reader when the payload carries a table and
// falls back to plain text otherwise.
func ParseClipboard(payload string) Grid {
	if strings.Contains(strings.ToLower(payload), "<table") {
		if grid := ParseHTMLTable(payload); len(grid) > 0 {
			return grid
		}
	}
	return ParseTable(payload)
}

func parseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if v, ok := utils.ParseFloatPrefix(symbols.Replace(trimmed)); ok {
		return NumberCell(v)
	}
	return TextCell(trimmed)
}

func keepRow(row Row) bool {
	if len(row) == 0 {
		return false
	}
	first := row[0]
	return first.IsNumber || first.Text != ""
}

// Preview returns at most n leading rows.
func (g Grid) Preview(n int) Grid {
	if n < 0 || len(g) <= n {
		return g
	}
	return g[:n]
}
