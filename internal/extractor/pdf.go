package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageContent is the tagged result of scanning one PDF page: a table of
// rows, loose text lines, or nothing (image-only pages).
type PageContent struct {
	Kind  PageKind
	Rows  [][]string // set when Kind == PageTable; cells ordered left to right
	Lines []string   // set when Kind == PageText
}

// PageKind discriminates PageContent variants.
type PageKind int

const (
	PageEmpty PageKind = iota
	PageTable
	PageText
)

// textRow is a horizontal band of positioned text runs.
type textRow struct {
	y     float64
	cells []textCell
}

type textCell struct {
	x       float64
	content string
}

// ReadPages opens a PDF and scans every page into a PageContent variant.
// A panic inside the PDF library (malformed xref tables and the like) is
// converted into an error so one corrupt document never takes down a run.
func ReadPages(path string, rowTolerance float64) (contents []PageContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			contents = nil
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	contents = make([]PageContent, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			contents = append(contents, PageContent{Kind: PageEmpty})
			continue
		}
		contents = append(contents, scanPage(page.Content().Text, rowTolerance))
	}
	return contents, nil
}

// scanPage groups positioned text runs into rows by Y coordinate and decides
// whether the page reads as a table or as free text. Pages where most rows
// carry at least two cells are tables; the rest are text.
func scanPage(texts []pdf.Text, rowTolerance float64) PageContent {
	rows := groupIntoRows(texts, rowTolerance)
	if len(rows) == 0 {
		return PageContent{Kind: PageEmpty}
	}

	multiCell := 0
	for _, row := range rows {
		if len(row.cells) >= 2 {
			multiCell++
		}
	}

	if multiCell*2 > len(rows) {
		tableRows := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells := make([]string, 0, len(row.cells))
			for _, cell := range row.cells {
				cells = append(cells, cell.content)
			}
			tableRows = append(tableRows, cells)
		}
		return PageContent{Kind: PageTable, Rows: tableRows}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row.cells))
		for _, cell := range row.cells {
			parts = append(parts, cell.content)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return PageContent{Kind: PageText, Lines: lines}
}

// groupIntoRows buckets text runs whose Y coordinates fall within tolerance
// of each other, then orders rows top to bottom and cells left to right.
func groupIntoRows(texts []pdf.Text, tolerance float64) []textRow {
	var rows []textRow

	for _, t := range texts {
		content := strings.TrimSpace(t.S)
		if content == "" {
			continue
		}

		placed := false
		for i := range rows {
			if abs(rows[i].y-t.Y) < tolerance {
				rows[i].cells = append(rows[i].cells, textCell{x: t.X, content: content})
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, cells: []textCell{{x: t.X, content: content}}})
		}
	}

	// PDF Y grows upward; higher Y means earlier on the page.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].y > rows[j].y
	})
	for i := range rows {
		cells := rows[i].cells
		sort.SliceStable(cells, func(a, b int) bool {
			return cells[a].x < cells[b].x
		})

		// Adjacent runs at the same X belong to one logical cell.
		merged := cells[:0]
		for _, cell := range cells {
			if n := len(merged); n > 0 && abs(merged[n-1].x-cell.x) < 0.5 {
				merged[n-1].content += cell.content
				continue
			}
			merged = append(merged, cell)
		}
		rows[i].cells = merged
	}

	return rows
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
