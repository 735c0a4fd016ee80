package content

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWriter 返回固定结果的撰写器
type stubWriter struct {
	mu    sync.Mutex
	draft *Draft
	err   error
	calls int
	fn    func(b *Brief) (*Draft, error)
}

func (w *stubWriter) Draft(_ context.Context, b *Brief) (*Draft, error) {
	w.mu.Lock()
	w.calls++
	w.mu.Unlock()
	if w.fn != nil {
		return w.fn(b)
	}
	return w.draft, w.err
}

func (w *stubWriter) Calls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

func TestFallbackWriter(t *testing.T) {
	primaryDraft := &Draft{Text: "primary", Source: "openai"}
	fallbackDraft := &Draft{Text: "fallback", Source: "template", Extendable: true}

	t.Run("primary succeeds", func(t *testing.T) {
		primary := &stubWriter{draft: primaryDraft}
		fallback := &stubWriter{draft: fallbackDraft}

		d, err := NewFallbackWriter(primary, fallback).Draft(context.Background(), &Brief{Topic: "x"})
		require.NoError(t, err)
		assert.Equal(t, primaryDraft, d)
		assert.Equal(t, 0, fallback.Calls())
	})

	t.Run("primary fails", func(t *testing.T) {
		primary := &stubWriter{err: errors.New("boom")}
		fallback := &stubWriter{draft: fallbackDraft}

		d, err := NewFallbackWriter(primary, fallback).Draft(context.Background(), &Brief{Topic: "x"})
		require.NoError(t, err)
		assert.Equal(t, fallbackDraft, d)
		assert.Equal(t, 1, fallback.Calls())
	})

	t.Run("cancelled context skips fallback", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		primary := &stubWriter{err: context.Canceled}
		fallback := &stubWriter{draft: fallbackDraft}

		_, err := NewFallbackWriter(primary, fallback).Draft(ctx, &Brief{Topic: "x"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, fallback.Calls())
	})
}
