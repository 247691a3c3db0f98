package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected FailureKind
	}{
		{name: "Erro nulo", err: nil, expected: FailureKindNone},
		{name: "SyncError direto", err: NewSourceError(FailureKindAuth, SourceAds, errors.New("invalid_grant")), expected: FailureKindAuth},
		{name: "SyncError encapsulado", err: fmt.Errorf("busca: %w", NewSyncError(FailureKindQuotaExceeded, nil)), expected: FailureKindQuotaExceeded},
		{name: "Sentinela encapsulada", err: fmt.Errorf("salvar: %w", ErrAlreadyProcessed), expected: FailureKindAlreadyProcessed},
		{name: "Contexto cancelado", err: context.Canceled, expected: FailureKindCancelled},
		{name: "Erro desconhecido", err: errors.New("boom"), expected: FailureKindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestSyncError_Is(t *testing.T) {
	err := NewSourceError(FailureKindPermanentSource, SourcePlay, errors.New("package not found"))

	assert.ErrorIs(t, err, ErrPermanentSource)
	assert.NotErrorIs(t, err, ErrTransientSource)
	assert.Contains(t, err.Error(), "google_play")
}

func TestFailureKind_IsRetryable(t *testing.T) {
	assert.True(t, FailureKindTransientSource.IsRetryable())
	assert.True(t, FailureKindGenerationTimeout.IsRetryable())
	assert.True(t, FailureKindQuotaExceeded.IsRetryable())
	assert.False(t, FailureKindAuth.IsRetryable())
	assert.False(t, FailureKindPermanentSource.IsRetryable())
	assert.False(t, FailureKindMalformedGeneration.IsRetryable())
}

func TestStrongerSourceKind(t *testing.T) {
	assert.Equal(t, FailureKindAuth, StrongerSourceKind(FailureKindPermanentSource, FailureKindAuth))
	assert.Equal(t, FailureKindAuth, StrongerSourceKind(FailureKindAuth, FailureKindTransientSource))
	assert.Equal(t, FailureKindPermanentSource, StrongerSourceKind(FailureKindTransientSource, FailureKindPermanentSource))
	assert.Equal(t, FailureKindTransientSource, StrongerSourceKind(FailureKindTransientSource, FailureKindTransientSource))
	assert.Equal(t, FailureKindUnexpected, StrongerSourceKind(FailureKindTransientSource, FailureKindUnexpected))
	assert.Equal(t, FailureKindPermanentSource, StrongerSourceKind(FailureKindUnexpected, FailureKindPermanentSource))
	assert.Equal(t, FailureKindTransientSource, StrongerSourceKind(FailureKindNone, FailureKindTransientSource))
}
