package content

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-content-api/internal/domain/entity"
	"ai-content-api/pkg/errors"
)

type stubResearcher struct {
	text string
	err  error
}

func (r *stubResearcher) Lookup(_ context.Context, _ string) (string, error) {
	return r.text, r.err
}

func newTemplateService(researcher Researcher) *Service {
	rng := NewRand(42)
	return NewService(researcher, NewTemplateWriter(rng), DefaultLimits(), rng)
}

func TestService_Normalize(t *testing.T) {
	svc := newTemplateService(nil)

	tests := []struct {
		name       string
		in         entity.GenerationRequest
		wantTone   entity.Tone
		wantLength int
	}{
		{"defaults", entity.GenerationRequest{Topic: "Go"}, entity.ToneProfessional, 500},
		{"clamp low", entity.GenerationRequest{Topic: "Go", Length: 5}, entity.ToneProfessional, 100},
		{"clamp high", entity.GenerationRequest{Topic: "Go", Length: 99999}, entity.ToneProfessional, 2000},
		{"negative", entity.GenerationRequest{Topic: "Go", Length: -3}, entity.ToneProfessional, 100},
		{"tone normalized", entity.GenerationRequest{Topic: "Go", Tone: "  CASUAL "}, entity.ToneCasual, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.Normalize(&tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTone, out.Tone)
			assert.Equal(t, tt.wantLength, out.Length)
		})
	}

	t.Run("trims strings", func(t *testing.T) {
		out, err := svc.Normalize(&entity.GenerationRequest{Topic: "  Go  ", Keywords: " a, b "})
		require.NoError(t, err)
		assert.Equal(t, "Go", out.Topic)
		assert.Equal(t, "a, b", out.Keywords)
	})

	t.Run("blank topic", func(t *testing.T) {
		_, err := svc.Normalize(&entity.GenerationRequest{Topic: "   "})
		assert.ErrorIs(t, err, errors.ErrTopicRequired)

		_, err = svc.Normalize(nil)
		assert.ErrorIs(t, err, errors.ErrTopicRequired)
	})
}

func TestService_Generate(t *testing.T) {
	svc := newTemplateService(nil)

	got, err := svc.Generate(context.Background(), &entity.GenerationRequest{
		Topic:    "Artificial Intelligence",
		Keywords: "ai, machine learning",
		Tone:     entity.ToneProfessional,
		Length:   500,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.Content)
	assert.Equal(t, entity.SourceTemplate, got.Source)
	assert.Equal(t, "Artificial Intelligence", got.Topic)
	assert.Equal(t, "ai, machine learning", got.Keywords)
	assert.Equal(t, 500, got.Length)
	assert.Equal(t, CountWords(got.Content), got.WordCount)
	assert.LessOrEqual(t, got.WordCount, 500)
	assert.GreaterOrEqual(t, got.WordCount, 496)
	// 300 < 词数 <= 500：+15；两个以上标题：+10；两个关键词：+10
	assert.Equal(t, 85, got.SEOScore)
	assert.GreaterOrEqual(t, got.UniquenessScore, 85.0)
	assert.LessOrEqual(t, got.UniquenessScore, 100.0)
	assert.False(t, got.GeneratedAt.IsZero())
}

func TestService_Generate_ResearchFailureIgnored(t *testing.T) {
	svc := newTemplateService(&stubResearcher{err: stderrors.New("wikipedia down")})

	got, err := svc.Generate(context.Background(), &entity.GenerationRequest{Topic: "Go"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.Content)
}

func TestService_Generate_UsesResearch(t *testing.T) {
	fact := "Go is a statically typed, compiled language designed at Google."
	svc := newTemplateService(&stubResearcher{text: fact})

	got, err := svc.Generate(context.Background(), &entity.GenerationRequest{Topic: "Go", Length: 300})
	require.NoError(t, err)
	assert.Contains(t, got.Content, fact)
}

func TestService_Generate_DoesNotPadFixedDrafts(t *testing.T) {
	writer := &stubWriter{draft: &Draft{Text: "# Title\n\nA short answer, therefore done.", Source: "openai"}}
	svc := NewService(nil, writer, DefaultLimits(), NewRand(1))

	got, err := svc.Generate(context.Background(), &entity.GenerationRequest{Topic: "Go", Tone: entity.ToneCasual})
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nA short answer, so done.", got.Content)
	assert.Equal(t, "openai", got.Source)
}

func TestService_Generate_Errors(t *testing.T) {
	t.Run("plain error becomes generation failure", func(t *testing.T) {
		svc := NewService(nil, &stubWriter{err: stderrors.New("boom")}, DefaultLimits(), NewRand(1))

		_, err := svc.Generate(context.Background(), &entity.GenerationRequest{Topic: "Go"})
		assert.True(t, errors.HasCode(err, errors.CodeGenerationFailed))
	})

	t.Run("app error kept", func(t *testing.T) {
		svc := NewService(nil, &stubWriter{err: errors.ErrLLMCallFailed}, DefaultLimits(), NewRand(1))

		_, err := svc.Generate(context.Background(), &entity.GenerationRequest{Topic: "Go"})
		assert.True(t, errors.HasCode(err, errors.CodeLLMCallFailed))
	})

	t.Run("blank topic", func(t *testing.T) {
		writer := &stubWriter{}
		svc := NewService(nil, writer, DefaultLimits(), NewRand(1))

		_, err := svc.Generate(context.Background(), &entity.GenerationRequest{})
		assert.True(t, errors.HasCode(err, errors.CodeInvalidParam))
		assert.Equal(t, 0, writer.Calls())
	})
}

func TestService_GenerateBatch(t *testing.T) {
	writer := &stubWriter{fn: func(b *Brief) (*Draft, error) {
		return &Draft{Text: fmt.Sprintf("# %s\n\nAbout %s.", b.Topic, b.Topic), Source: "stub"}, nil
	}}
	svc := NewService(nil, writer, DefaultLimits(), NewRand(1))

	topics := []string{"Go", "Rust", "Zig", "Odin", "Nim"}
	got, err := svc.GenerateBatch(context.Background(), &BatchRequest{Topics: topics, Keywords: "lang"})
	require.NoError(t, err)
	require.Len(t, got, len(topics))
	for i, res := range got {
		assert.Equal(t, topics[i], res.Topic)
		assert.Equal(t, 300, res.Length)
		assert.True(t, strings.HasPrefix(res.Content, "# "+topics[i]))
	}
	assert.Equal(t, len(topics), writer.Calls())
}

func TestService_GenerateBatch_Validation(t *testing.T) {
	svc := newTemplateService(nil)

	_, err := svc.GenerateBatch(context.Background(), &BatchRequest{})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParam))

	_, err = svc.GenerateBatch(context.Background(), nil)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParam))

	topics := make([]string, 11)
	for i := range topics {
		topics[i] = fmt.Sprintf("topic %d", i)
	}
	_, err = svc.GenerateBatch(context.Background(), &BatchRequest{Topics: topics})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidParam))
}

func TestService_GenerateBatch_FailsAsWhole(t *testing.T) {
	svc := newTemplateService(nil)

	_, err := svc.GenerateBatch(context.Background(), &BatchRequest{Topics: []string{"Go", " ", "Rust"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTopicRequired)
	assert.Contains(t, err.Error(), "topic 2")
}
