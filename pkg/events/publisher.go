package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/railmodel"
)

// Publisher is a monitor listener that queues an event each time a service on the board becomes
// delayed or cancelled. A service is only announced again when its status changes.
type Publisher struct {
	Queue rmq.Queue
	Now   func() time.Time

	mu        sync.Mutex
	station   string
	announced map[string]railmodel.ServiceStatus
}

func NewPublisher(queue rmq.Queue) *Publisher {
	return &Publisher{
		Queue:     queue,
		Now:       time.Now,
		announced: map[string]railmodel.ServiceStatus{},
	}
}

func (p *Publisher) OnBoardUpdated(station string, board *railmodel.DepartureBoard) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if station != p.station {
		p.station = station
		p.announced = map[string]railmodel.ServiceStatus{}
	}

	seen := map[string]bool{}

	for _, service := range board.Services {
		seen[service.ID] = true

		if !service.IsDisrupted() {
			delete(p.announced, service.ID)
			continue
		}

		if status, ok := p.announced[service.ID]; ok && status == service.Status {
			continue
		}

		if err := p.publish(NewServiceEvent(station, service, p.Now())); err != nil {
			log.Error().Err(err).Str("service", service.ID).Msg("Failed to publish event")
			continue
		}

		p.announced[service.ID] = service.Status
	}

	// Forget services that have dropped off the board
	for serviceID := range p.announced {
		if !seen[serviceID] {
			delete(p.announced, serviceID)
		}
	}
}

func (p *Publisher) OnError(station string, err error) {
	log.Warn().Err(err).Str("crs", station).Msg("Board refresh failed, no events published")
}

func (p *Publisher) publish(event Event) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	log.Debug().Str("type", string(event.Type)).Str("service", event.Service.ID).Msg("Publishing event")

	return p.Queue.PublishBytes(eventBytes)
}
