package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestForContext_IncludesIDs(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	original := logrus.StandardLogger().Out
	defer logrus.SetOutput(original)

	var buffer bytes.Buffer
	logrus.SetOutput(&buffer)
	SetupTestLogger()

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx, runID := WithRunID(ctx)

	ForContext(ctx).Info("execução iniciada")

	assert.Contains(t, buffer.String(), correlationID)
	assert.Contains(t, buffer.String(), runID)
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	original := logrus.StandardLogger().Out
	defer logrus.SetOutput(original)

	var buffer bytes.Buffer
	logrus.SetOutput(&buffer)
	SetupTestLogger()

	L.WithFields(Fields{"date": "2024-05-01", "payload_size": 42}).Info("relatório")

	assert.Contains(t, buffer.String(), "2024-05-01")
	assert.NotContains(t, buffer.String(), "payload_size")
}
