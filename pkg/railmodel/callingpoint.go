package railmodel

import "time"

type CallingPoint struct {
	Station Station `groups:"basic"`

	ScheduledTime time.Time  `groups:"basic"`
	EstimatedTime *time.Time `groups:"basic"`
	ActualTime    *time.Time `groups:"basic"`

	Platform *string `groups:"basic"`

	Status      ServiceStatus `groups:"basic"`
	IsCancelled bool          `groups:"basic"`
}

// CallingPointStatus applies the actual > estimated > scheduled precedence used for
// detailed service views
func CallingPointStatus(cancelled bool, estimated *time.Time, actual *time.Time) ServiceStatus {
	switch {
	case cancelled:
		return ServiceStatusCancelled
	case actual != nil:
		return ServiceStatusArrived
	case estimated != nil:
		return ServiceStatusDelayed
	default:
		return ServiceStatusOnTime
	}
}
