package services

import "strings"

const classificationSystemPrompt = "You are an assistant that extracts skills, categories and a short summary " +
	"from resume/portfolio text. Return JSON."

const defaultClassificationInstruction = "Extract a JSON object with keys: skills (array of strings), " +
	"categories (array of strings), summary (short string). " +
	"Only output valid JSON. Do not include extra commentary."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildClassificationMessages creates the system and user messages for one
// chunk. A non-blank override replaces the default instruction; the chunk is
// always appended.
func (pb *PromptBuilder) BuildClassificationMessages(chunk, override string) []Message {
	instruction := defaultClassificationInstruction
	if strings.TrimSpace(override) != "" {
		instruction = override
	}

	return []Message{
		{Role: RoleSystem, Content: classificationSystemPrompt},
		{Role: RoleUser, Content: instruction + "\n\nText:\n" + chunk},
	}
}
