package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChunkResponse(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		outcome := ParseChunkResponse(`{"skills":["Go","SQL"],"categories":["Backend"],"summary":"Backend dev"}`)

		parsed, ok := outcome.(ParsedChunk)
		require.True(t, ok)
		assert.Equal(t, []string{"Go", "SQL"}, parsed.Skills)
		assert.Equal(t, []string{"Backend"}, parsed.Categories)
		assert.Equal(t, "Backend dev", parsed.Summary)
	})

	t.Run("fenced json", func(t *testing.T) {
		outcome := ParseChunkResponse("```json\n{\"skills\":[\"Rust\"]}\n```")

		parsed, ok := outcome.(ParsedChunk)
		require.True(t, ok)
		assert.Equal(t, []string{"Rust"}, parsed.Skills)
		assert.Empty(t, parsed.Summary)
	})

	t.Run("json surrounded by chatter", func(t *testing.T) {
		outcome := ParseChunkResponse(`Sure! {"skills":["Python"]} Hope that helps.`)

		parsed, ok := outcome.(ParsedChunk)
		require.True(t, ok)
		assert.Equal(t, []string{"Python"}, parsed.Skills)
	})

	for name, content := range map[string]string{
		"not json":          "I could not find any skills.",
		"json array":        `["Go","Rust"]`,
		"wrong field types": `{"skills":"Go","summary":3}`,
		"empty":             "",
	} {
		t.Run(name, func(t *testing.T) {
			outcome := ParseChunkResponse(content)

			raw, ok := outcome.(RawChunk)
			require.True(t, ok)
			assert.Equal(t, content, raw.Raw)
		})
	}
}

func TestMergeChunkOutcomes(t *testing.T) {
	result := MergeChunkOutcomes([]ChunkOutcome{
		ParsedChunk{Skills: []string{"Go", " SQL "}, Categories: []string{"Backend"}, Summary: "first"},
		RawChunk{Raw: "free text"},
		ParsedChunk{Skills: []string{"SQL", "", "Docker"}, Categories: []string{"Backend", "DevOps"}},
		ParsedChunk{Summary: "last"},
	})

	assert.Equal(t, []string{"Go", "SQL", "Docker"}, result.Skills)
	assert.Equal(t, []string{"Backend", "DevOps"}, result.Categories)
	assert.Equal(t, "first free text last", result.Summary)
}

func TestMergeChunkOutcomes_Empty(t *testing.T) {
	result := MergeChunkOutcomes(nil)

	assert.NotNil(t, result.Skills)
	assert.NotNil(t, result.Categories)
	assert.Empty(t, result.Skills)
	assert.Empty(t, result.Summary)
}

func TestDedupeStrings(t *testing.T) {
	assert.Equal(t, []string{"go", "rust"}, DedupeStrings([]string{"go", " go", "", "rust", "go"}))
	assert.Equal(t, []string{}, DedupeStrings(nil))
	assert.Equal(t, []string{"Go", "go"}, DedupeStrings([]string{"Go", "go"}))
}
