package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingAsker struct{}

func (blockingAsker) Ask(ctx context.Context, query string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type instantAsker struct{}

func (instantAsker) Ask(ctx context.Context, query string) (string, error) {
	return "answer to " + query, nil
}

func TestAskWithTimeout_BoundsOnlyTheQuery(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := askWithTimeout(parent, blockingAsker{}, "What is an SSCC?", 10*time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, parent.Err())
}

func TestAskWithTimeout_ReturnsAnswer(t *testing.T) {
	answer, err := askWithTimeout(context.Background(), instantAsker{}, "GLN", time.Second)

	require.NoError(t, err)
	assert.Equal(t, "answer to GLN", answer)
}
