package railmodel

import "time"

// TimeEstimate is the decoded form of the feed's estimate fields, which carry either a
// clock time or one of the sentinel strings "On time", "Cancelled" and "Delayed"
type TimeEstimate struct {
	Kind TimeEstimateKind
	At   time.Time
}

type TimeEstimateKind string

const (
	TimeEstimateScheduledOnly TimeEstimateKind = "ScheduledOnly"
	TimeEstimateAt            TimeEstimateKind = "EstimatedAt"
	TimeEstimateCancelled     TimeEstimateKind = "Cancelled"
	TimeEstimateDelayed       TimeEstimateKind = "Delayed"
)

func ScheduledOnly() TimeEstimate {
	return TimeEstimate{Kind: TimeEstimateScheduledOnly}
}

func EstimatedAt(t time.Time) TimeEstimate {
	return TimeEstimate{Kind: TimeEstimateAt, At: t}
}

func Cancelled() TimeEstimate {
	return TimeEstimate{Kind: TimeEstimateCancelled}
}

func DelayedUnknown() TimeEstimate {
	return TimeEstimate{Kind: TimeEstimateDelayed}
}

// Time returns the estimated timestamp, or nil when the estimate carries no time
func (e TimeEstimate) Time() *time.Time {
	if e.Kind != TimeEstimateAt {
		return nil
	}

	t := e.At
	return &t
}

func (e TimeEstimate) IsCancelled() bool {
	return e.Kind == TimeEstimateCancelled
}
