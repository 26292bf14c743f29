package eventbroker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"codeflix-catalog/internal/adapters/eventbroker"
	"codeflix-catalog/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestFactories_UnknownKind(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Broker: config.BrokerConfig{Kind: "kafka"}}

	t.Run("dispatcher", func(t *testing.T) {
		// Act
		dispatcher, err := eventbroker.NewDispatcher(context.Background(), cfg, discardLogger)

		// Assert
		assert.Nil(t, dispatcher)
		assert.ErrorContains(t, err, `unknown broker kind "kafka"`)
	})

	t.Run("consumer", func(t *testing.T) {
		// Act
		consumer, err := eventbroker.NewConsumer(context.Background(), cfg, discardLogger)

		// Assert
		assert.Nil(t, consumer)
		assert.ErrorContains(t, err, `unknown broker kind "kafka"`)
	})
}
