package messaging

import (
	"testing"

	"wallet-service/src/internal/model"
	"wallet-service/src/pkg/log"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() log.Log {
	return log.Log{
		AppName:  "wallet-service-test",
		LogLevel: 2,
		Logger:   logrus.New(),
	}
}

func TestSendWithoutTransportIsSkipped(t *testing.T) {
	producer := NewFundsRequestProducer(nil, newTestLogger())

	event := &model.FundsRequestProcessedEvent{
		EventID:   "evt-1",
		RequestID: "req-1",
		UserID:    "user-1",
		Type:      "deposit",
		Status:    "approved",
	}

	assert.NotPanics(t, func() {
		assert.NoError(t, producer.SendProcessed(event))
		assert.NoError(t, producer.SendNotification(event))
	})
}
