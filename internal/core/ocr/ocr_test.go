package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	text string
	err  error
}

func (f *fakeEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func (f *fakeEngine) Name() string { return "fake" }

func TestChain_EmptyChainReturnsPlaceholder(t *testing.T) {
	text, err := NewChain().Recognize(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, TextUnavailable, text)
}

func TestChain_FirstEngineWins(t *testing.T) {
	chain := NewChain(
		&fakeEngine{text: "primary"},
		&fakeEngine{text: "secondary"},
	)

	text, err := chain.Recognize(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, "primary", text)
}

func TestChain_FallsBackOnError(t *testing.T) {
	chain := NewChain(
		&fakeEngine{err: errors.New("quota exceeded")},
		&fakeEngine{text: "local result"},
	)

	text, err := chain.Recognize(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, "local result", text)
}

func TestChain_AllEnginesFailing(t *testing.T) {
	chain := NewChain(
		&fakeEngine{err: errors.New("down")},
		&fakeEngine{err: errors.New("also down")},
	)

	text, err := chain.Recognize(context.Background(), []byte("img"))

	require.NoError(t, err)
	assert.Equal(t, TextFailed, text)
}
