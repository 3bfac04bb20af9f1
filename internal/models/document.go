package models

// UploadedDocument is the request-scoped copy of an uploaded file.
type UploadedDocument struct {
	Filename string
	Data     []byte
}

func (d *UploadedDocument) Size() int64 {
	return int64(len(d.Data))
}

type ExtractionMethod string

const (
	MethodStructured ExtractionMethod = "structured"
	MethodOCR        ExtractionMethod = "ocr"
)

type DocumentMetadata struct {
	Filename string           `json:"filename"`
	Size     int64            `json:"size"`
	Method   ExtractionMethod `json:"method"`
	Pages    int              `json:"pages"`
}

type ExtractionResult struct {
	Text     string           `json:"text"`
	Metadata DocumentMetadata `json:"metadata"`
}
