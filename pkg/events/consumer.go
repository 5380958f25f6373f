package events

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
)

type BatchConsumer struct {
	Handle func(event Event)
}

// NewBatchConsumer prints every event it receives
func NewBatchConsumer() *BatchConsumer {
	return &BatchConsumer{
		Handle: func(event Event) {
			pretty.Println(event)

			notificationData := event.GetNotificationData()
			log.Info().Str("station", event.Station).Str("title", notificationData.Title).Msg(notificationData.Message)
		},
	}
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	for _, payload := range batch.Payloads() {
		var event Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Str("payload", payload).Msg("Failed to decode event")
			continue
		}

		c.Handle(event)
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack event")
		}
	}
}
