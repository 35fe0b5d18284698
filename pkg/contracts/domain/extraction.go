package domain

// ContentType tags how a raw payload was pulled out of a source document.
type ContentType string

const (
	ContentTypeTable ContentType = "table"
	ContentTypeText  ContentType = "text"
)

// ExtractionRecord is one row of the intermediate raw table. The collection is
// append-only during a run and fully overwritten on the next one.
type ExtractionRecord struct {
	Category    Category    `json:"product_line" validate:"required"`
	SourceFile  string      `json:"source_file" validate:"required"`
	Page        int         `json:"page" validate:"min=1"`
	TableIndex  int         `json:"table_index"`
	RowIndex    int         `json:"row_index"`
	ContentType ContentType `json:"content_type" validate:"required,oneof=table text"`
	Payload     string      `json:"cell_values"`
}

// RawTableHeader is the column contract of data/raw/extracted_raw.csv.
var RawTableHeader = []string{
	"product_line", "source_file", "page", "table_index", "row_index", "content_type", "cell_values",
}

// MarkerContent is the body of the extraction marker file. Consumers only
// test for the file's presence; the content is informational.
const MarkerContent = "no_tables_or_text_extracted"

// MarkerFilename is the sentinel written when no document yielded any
// table or text row.
const MarkerFilename = "extraction_marker.txt"

// RawTableFilename is the consolidated intermediate table filename.
const RawTableFilename = "extracted_raw.csv"
