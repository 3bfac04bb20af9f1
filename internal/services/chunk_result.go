package services

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ChunkOutcome is what a single chunk contributed: either a ParsedChunk or a
// RawChunk holding the unparseable response text.
type ChunkOutcome interface {
	isChunkOutcome()
}

type ParsedChunk struct {
	Skills     []string `json:"skills"`
	Categories []string `json:"categories"`
	Summary    string   `json:"summary"`
}

type RawChunk struct {
	Raw string
}

func (ParsedChunk) isChunkOutcome() {}
func (RawChunk) isChunkOutcome()    {}

const chunkResponseSchema = `{
  "type": "object",
  "properties": {
    "skills": {"type": "array", "items": {"type": "string"}},
    "categories": {"type": "array", "items": {"type": "string"}},
    "summary": {"type": "string"}
  }
}`

var chunkSchema = jsonschema.MustCompileString("chunk_response.json", chunkResponseSchema)

// ParseChunkResponse never fails: anything that is not a JSON object of the
// expected shape is kept verbatim as a RawChunk.
func ParseChunkResponse(content string) ChunkOutcome {
	body := cleanJSONBlock(content)

	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return RawChunk{Raw: content}
	}
	if err := chunkSchema.Validate(v); err != nil {
		return RawChunk{Raw: content}
	}

	var parsed ParsedChunk
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return RawChunk{Raw: content}
	}
	return parsed
}

// cleanJSONBlock strips markdown code fences and any chatter around the
// outermost JSON object.
func cleanJSONBlock(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl >= 0 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
