package models

type ClassificationResult struct {
	Skills     []string `json:"skills"`
	Categories []string `json:"categories"`
	Summary    string   `json:"summary"`
}

// NewClassificationResult returns a result whose lists encode as [] rather than null.
func NewClassificationResult() *ClassificationResult {
	return &ClassificationResult{
		Skills:     []string{},
		Categories: []string{},
	}
}

type PortfolioImport struct {
	Metadata       DocumentMetadata      `json:"metadata"`
	Classification *ClassificationResult `json:"classification"`
	Indexed        bool                  `json:"indexed"`
}
