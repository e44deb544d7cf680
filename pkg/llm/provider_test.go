package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOptions(t *testing.T) {
	o := Apply(Options{Temperature: 0.7, Model: "base"},
		WithTemperature(0.3),
		WithAPIKey("k"),
		WithMaxTokens(1024),
	)
	assert.Equal(t, 0.3, o.Temperature)
	assert.Equal(t, "base", o.Model)
	assert.Equal(t, "k", o.APIKey)
	assert.Equal(t, 1024, o.MaxTokens)
}

func TestSplitSystem(t *testing.T) {
	system, turns := SplitSystem([]Message{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleSystem, Content: "extra"},
	})
	assert.Equal(t, "persona\n\nextra", system)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hi"}}, turns)
}
