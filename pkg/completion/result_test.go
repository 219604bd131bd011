package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return s.reply, s.err
}

func TestComplete_NilProviderDegrades(t *testing.T) {
	res := Complete(context.Background(), nil, nil)
	assert.True(t, res.Degraded)
	assert.Equal(t, ReasonNotConfigured, res.Reason)
	assert.Empty(t, res.Text)
}

func TestComplete_ProviderErrorDegrades(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}
	res := Complete(context.Background(), provider, []Message{{Role: "user", Content: "hi"}})
	assert.True(t, res.Degraded)
	assert.Equal(t, ReasonProviderError, res.Reason)
	assert.Error(t, res.Err)
}

func TestComplete_EmptyReplyDegrades(t *testing.T) {
	provider := &stubProvider{reply: ""}
	res := Complete(context.Background(), provider, []Message{{Role: "user", Content: "hi"}})
	assert.True(t, res.Degraded)
}

func TestComplete_Success(t *testing.T) {
	provider := &stubProvider{reply: "hello there"}
	res := Complete(context.Background(), provider, []Message{{Role: "user", Content: "hi"}})
	assert.False(t, res.Degraded)
	assert.Equal(t, "hello there", res.Text)
	assert.NoError(t, res.Err)
}
