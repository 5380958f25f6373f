package railmodel

import (
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

type DepartureBoard struct {
	Station     Station   `groups:"basic"`
	GeneratedAt time.Time `groups:"basic"`

	PlatformAvailable bool `groups:"detailed"`

	Services []TrainService   `groups:"basic"`
	Messages []ServiceMessage `groups:"basic"`

	FilterStation *Station `groups:"basic"`
}

func (b *DepartureBoard) HasActiveServices() bool {
	return slices.ContainsFunc(b.Services, func(s TrainService) bool {
		return !s.IsCancelled
	})
}

func (b *DepartureBoard) HasDisruptions() bool {
	return slices.ContainsFunc(b.Services, func(s TrainService) bool {
		return s.IsDisrupted()
	})
}

func (b *DepartureBoard) FindService(serviceID string) (TrainService, bool) {
	index := slices.IndexFunc(b.Services, func(s TrainService) bool {
		return s.ID == serviceID
	})
	if index < 0 {
		return TrainService{}, false
	}

	return b.Services[index], true
}

// FindNextDepartureTo returns the first service whose destination name contains the given text
func (b *DepartureBoard) FindNextDepartureTo(destination string) (TrainService, bool) {
	needle := strings.ToLower(destination)

	index := slices.IndexFunc(b.Services, func(s TrainService) bool {
		return strings.Contains(strings.ToLower(s.Destination.Name), needle) || strings.EqualFold(s.Destination.ID, destination)
	})
	if index < 0 {
		return TrainService{}, false
	}

	return b.Services[index], true
}
