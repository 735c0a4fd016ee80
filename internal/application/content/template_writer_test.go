package content

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-content-api/internal/domain/entity"
)

func TestTemplateWriter_Draft(t *testing.T) {
	w := NewTemplateWriter(NewRand(42))

	d, err := w.Draft(context.Background(), &Brief{
		Topic:    "Artificial Intelligence",
		Keywords: []string{"ai", "machine learning"},
		Tone:     entity.ToneProfessional,
		Length:   500,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SourceTemplate, d.Source)
	assert.True(t, d.Extendable)

	title := strings.SplitN(d.Text, "\n", 2)[0]
	assert.Contains(t, []string{
		"# Artificial Intelligence: A Comprehensive Guide",
		"# Understanding Artificial Intelligence",
		"# The Complete Guide to Artificial Intelligence",
	}, title)

	assert.Contains(t, d.Text, "## Introduction\nIn today's digital landscape, Artificial Intelligence has become increasingly important.")
	assert.Contains(t, d.Text, "1. **Ai**: Important aspect of artificial intelligence.")
	assert.Contains(t, d.Text, "2. **Machine Learning**: Important aspect of artificial intelligence.")
	assert.True(t, strings.HasSuffix(d.Text, "By understanding artificial intelligence, better outcomes can be achieved."))

	sections := 0
	for _, s := range sectionTitles {
		if strings.Contains(d.Text, "## "+s+"\n") {
			sections++
		}
	}
	assert.Equal(t, bodySectionCount, sections)
}

func TestTemplateWriter_UsesResearch(t *testing.T) {
	first := "Artificial intelligence is the capability of computational systems to perform tasks."
	second := "It is a field of research in computer science."
	w := NewTemplateWriter(NewRand(1))

	d, err := w.Draft(context.Background(), &Brief{
		Topic:    "Artificial Intelligence",
		Research: first + " " + second,
	})
	require.NoError(t, err)

	assert.Contains(t, d.Text, "has become increasingly important. "+first)
	assert.Equal(t, bodySectionCount, strings.Count(d.Text, second))
	assert.NotContains(t, d.Text, "## Key Points")
}

func TestTemplateWriter_ResearchWithAbbreviations(t *testing.T) {
	first := "California is a U.S. state on the Pacific Coast of the United States."
	second := "It borders Oregon to the north and Nevada and Arizona to the east."
	w := NewTemplateWriter(NewRand(3))

	d, err := w.Draft(context.Background(), &Brief{
		Topic:    "California",
		Research: first + " " + second,
	})
	require.NoError(t, err)

	assert.Contains(t, d.Text, "has become increasingly important. "+first+"\n")
	assert.Equal(t, bodySectionCount, strings.Count(d.Text, " "+second+"\n"))
	assert.NotContains(t, d.Text, ". state on the Pacific Coast")
}

func TestTemplateWriter_ShortResearchSkipsDetail(t *testing.T) {
	w := NewTemplateWriter(NewRand(1))

	d, err := w.Draft(context.Background(), &Brief{
		Topic:    "Go",
		Research: "Go is a language. It is compiled.",
	})
	require.NoError(t, err)

	assert.Contains(t, d.Text, "Go is a language.")
	assert.NotContains(t, d.Text, "It is compiled.")
}

func TestTemplateWriter_LimitsKeyPoints(t *testing.T) {
	w := NewTemplateWriter(NewRand(1))

	d, err := w.Draft(context.Background(), &Brief{
		Topic:    "Go",
		Keywords: []string{"a", "b", "c", "d", "e", "f"},
	})
	require.NoError(t, err)

	assert.Contains(t, d.Text, "5. **E**")
	assert.NotContains(t, d.Text, "6. **")
}

func TestTemplateWriter_Deterministic(t *testing.T) {
	brief := &Brief{Topic: "Remote Work", Keywords: []string{"productivity"}}

	a, err := NewTemplateWriter(NewRand(99)).Draft(context.Background(), brief)
	require.NoError(t, err)
	b, err := NewTemplateWriter(NewRand(99)).Draft(context.Background(), brief)
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
}

func TestTemplateWriter_EmptyTopic(t *testing.T) {
	_, err := NewTemplateWriter(NewRand(1)).Draft(context.Background(), &Brief{Topic: "  "})
	assert.Error(t, err)
}
