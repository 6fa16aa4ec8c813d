package messaging

import (
	"wallet-service/src/internal/model"
	"wallet-service/src/pkg/kafka"
	"wallet-service/src/pkg/log"
)

// TaskFundsRequestProcessed is the asynq task enqueued after a request
// reaches a terminal state; the registered handler fans it out to the
// notification topic.
const TaskFundsRequestProcessed = "funds:request-processed"

type FundsRequestProducer struct {
	ProcessedProducer    Producer[*model.FundsRequestProcessedEvent]
	NotificationProducer Producer[*model.FundsRequestProcessedEvent]
}

func NewFundsRequestProducer(producer kafka.Producer, log log.Log) *FundsRequestProducer {
	return &FundsRequestProducer{
		ProcessedProducer: Producer[*model.FundsRequestProcessedEvent]{
			Producer: producer,
			Topic:    "funds-request-processed",
			Log:      log,
		},
		NotificationProducer: Producer[*model.FundsRequestProcessedEvent]{
			Producer: producer,
			Topic:    "wallet-notifications",
			Log:      log,
		},
	}
}

func (p *FundsRequestProducer) SendProcessed(event *model.FundsRequestProcessedEvent) error {
	return p.ProcessedProducer.Send(event)
}

func (p *FundsRequestProducer) SendNotification(event *model.FundsRequestProcessedEvent) error {
	return p.NotificationProducer.Send(event)
}
