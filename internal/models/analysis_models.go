package models

// UnitOrigin identifies which ingestion source produced a unit of text.
type UnitOrigin string

const (
	OriginListItem         UnitOrigin = "LIST_ITEM"
	OriginFileLine         UnitOrigin = "FILE_LINE"
	OriginScrapedParagraph UnitOrigin = "SCRAPED_PARAGRAPH"
)

const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// AnalysisUnit is a single piece of text headed for classification.
// RawText has already passed the source-specific length filter, so its
// trimmed length is always greater than zero.
type AnalysisUnit struct {
	RawText string
	Origin  UnitOrigin
}

// AnalysisResult is the canonical per-unit record returned to callers.
// Score carries the confidence with a sign derived from the label:
// +confidence for POSITIVE, -confidence for NEGATIVE.
type AnalysisResult struct {
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Keywords   string  `json:"keywords"`
}

type BatchMeta struct {
	ProcessingTime float64 `json:"processing_time"`
	Warning        *string `json:"warning"`
}

// BatchResult aggregates the results of one request. Results preserves
// input order; Meta is only populated for file uploads.
type BatchResult struct {
	TotalScanned int              `json:"total_scanned"`
	Results      []AnalysisResult `json:"results"`
	Meta         *BatchMeta       `json:"meta,omitempty"`
}
