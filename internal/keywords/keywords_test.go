package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/job-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"lowercases and sorts", []string{"React", "AWS", "go"}, []string{"aws", "go", "react"}},
		{"dedupes after folding", []string{"Go", "go", " GO "}, []string{"go"}},
		{"drops empties", []string{"", "  ", "sql"}, []string{"sql"}},
		{"keeps phrases", []string{"Machine Learning"}, []string{"machine learning"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestOverlap(t *testing.T) {
	assert.True(t, Overlap([]string{"go", "api"}, []string{"ops", "go"}))
	assert.False(t, Overlap([]string{"go", "api"}, []string{"ops"}))
	assert.False(t, Overlap(nil, []string{"go"}))
	assert.False(t, Overlap([]string{"go"}, []string{}))
}

func TestError_IsUpstreamDegraded(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Provider: "http", Message: "request failed", Cause: cause}

	assert.Equal(t, "http extractor: request failed: connection refused", err.Error())
	assert.True(t, errors.Is(err, types.ErrUpstreamDegraded))
	assert.True(t, errors.Is(err, cause))
}

func TestNopExtractor(t *testing.T) {
	res := NopExtractor{}.Extract(context.Background(), "anything")
	assert.False(t, res.OK())
	assert.Empty(t, res.Keywords)
	assert.ErrorIs(t, res.Err, types.ErrUpstreamDegraded)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	e, closer, err := New(ctx, Config{Provider: ProviderHTTP, URL: "http://nlp:5002"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPExtractor{}, e)
	assert.NoError(t, closer.Close())

	e, _, err = New(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, &HTTPExtractor{}, e, "empty provider defaults to http")

	e, _, err = New(ctx, Config{Provider: ProviderNone})
	require.NoError(t, err)
	assert.IsType(t, NopExtractor{}, e)

	_, _, err = New(ctx, Config{Provider: ProviderGemini})
	assert.Error(t, err, "gemini requires an API key")

	_, _, err = New(ctx, Config{Provider: "spacy"})
	assert.Error(t, err)
}

func TestDecodeResponse(t *testing.T) {
	kws, err := decodeResponse([]byte(`{"keywords": ["go", "docker"], "extra": true}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "docker"}, kws)

	kws, err = decodeResponse([]byte(`{"keywords": []}`))
	require.NoError(t, err)
	assert.Empty(t, kws)

	_, err = decodeResponse([]byte(`[]`))
	assert.Error(t, err)
}
