package railmodel

import "time"

type TrainService struct {
	ID string `groups:"basic"`

	Origin      Station  `groups:"basic"`
	Destination Station  `groups:"basic"`
	Operator    Operator `groups:"basic"`

	ServiceType     string `groups:"detailed"`
	IsCircularRoute bool   `groups:"detailed"`

	ScheduledDeparture *time.Time `groups:"basic"`
	EstimatedDeparture *time.Time `groups:"basic"`
	ActualDeparture    *time.Time `groups:"detailed"`
	ScheduledArrival   *time.Time `groups:"basic"`
	EstimatedArrival   *time.Time `groups:"basic"`
	ActualArrival      *time.Time `groups:"detailed"`

	Platform *string `groups:"basic"`

	Status      ServiceStatus `groups:"basic"`
	IsCancelled bool          `groups:"basic"`
	IsDelayed   bool          `groups:"basic"`

	DelayReason  *string `groups:"basic"`
	CancelReason *string `groups:"basic"`

	CallingPoints []CallingPoint `groups:"detailed"`

	Length  int     `groups:"detailed"`
	Coaches []Coach `groups:"detailed"`

	Messages []ServiceMessage `groups:"basic"`

	// CurrentStation is the station the query was made for
	CurrentStation Station `groups:"basic"`
}

type Operator struct {
	Name string `groups:"basic"`
	Code string `groups:"basic"`
}

// IsDisrupted is true for anything not running on time
func (s *TrainService) IsDisrupted() bool {
	return s.IsDelayed || s.IsCancelled
}
