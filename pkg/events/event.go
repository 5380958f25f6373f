package events

import (
	"fmt"
	"time"

	"github.com/travigo/railnav/pkg/railmodel"
)

const QueueName = "railnav-events"

type Event struct {
	Type      EventType
	Timestamp time.Time
	Station   string
	Service   ServiceSummary
}

type EventType string

const (
	EventTypeServiceDelayed   EventType = "ServiceDelayed"
	EventTypeServiceCancelled EventType = "ServiceCancelled"
)

// ServiceSummary is the part of a train service carried on the queue
type ServiceSummary struct {
	ID                 string
	Destination        string
	ScheduledDeparture *time.Time
	EstimatedDeparture *time.Time
	Platform           *string
	Reason             *string
}

type NotificationData struct {
	Title   string
	Message string
}

func NewServiceEvent(station string, service railmodel.TrainService, now time.Time) Event {
	event := Event{
		Type:      EventTypeServiceDelayed,
		Timestamp: now,
		Station:   station,
		Service: ServiceSummary{
			ID:                 service.ID,
			Destination:        service.Destination.Name,
			ScheduledDeparture: service.ScheduledDeparture,
			EstimatedDeparture: service.EstimatedDeparture,
			Platform:           service.Platform,
			Reason:             service.DelayReason,
		},
	}

	if service.IsCancelled {
		event.Type = EventTypeServiceCancelled
		event.Service.Reason = service.CancelReason
	}

	return event
}

func (e *Event) GetNotificationData() NotificationData {
	departureTimeText := "service"
	if e.Service.ScheduledDeparture != nil {
		departureTimeText = e.Service.ScheduledDeparture.Format("15:04")
	}

	var notificationData NotificationData

	switch e.Type {
	case EventTypeServiceCancelled:
		notificationData.Title = "Train cancelled"
		notificationData.Message = fmt.Sprintf("The %s to %s has been cancelled.", departureTimeText, e.Service.Destination)
	default:
		notificationData.Title = "Train delayed"
		notificationData.Message = fmt.Sprintf("The %s to %s is delayed.", departureTimeText, e.Service.Destination)

		if e.Service.EstimatedDeparture != nil {
			notificationData.Message = fmt.Sprintf("The %s to %s is expected at %s.", departureTimeText, e.Service.Destination, e.Service.EstimatedDeparture.Format("15:04"))
		}
	}

	if e.Service.Reason != nil {
		notificationData.Message = fmt.Sprintf("%s %s", notificationData.Message, *e.Service.Reason)
	}

	return notificationData
}
