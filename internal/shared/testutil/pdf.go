// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"testing"
)

// WriteTablePDF writes a minimal single-page PDF laying rows out as a table:
// one text band per row, one positioned run per cell, 20pt row pitch. Just
// enough structure for row grouping to reassemble the table; cell content
// must not contain parentheses or backslashes.
func WriteTablePDF(tb testing.TB, path string, rows [][]string) {
	tb.Helper()

	var content bytes.Buffer
	y := 760.0
	for _, row := range rows {
		x := 40.0
		for _, cell := range row {
			fmt.Fprintf(&content, "BT /F1 10 Tf %.0f %.0f Td (%s) Tj ET\n", x, y, cell)
			x += 100
		}
		y -= 20
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)
	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	writeObj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()))
	writeObj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	// Cross-reference entries are fixed-width 20-byte records.
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		tb.Fatalf("failed to write pdf fixture %s: %v", path, err)
	}
}
