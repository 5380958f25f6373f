package ldbws

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/railmodel"
	"github.com/travigo/railnav/pkg/util"
)

const (
	SentinelOnTime    = "On time"
	SentinelCancelled = "Cancelled"
	SentinelDelayed   = "Delayed"
	SentinelNoReport  = "No report"

	clockTimeLayout = "15:04"

	// Clock times further than this from the reference are assumed to be on the neighbouring day
	rollOverThreshold = 12 * time.Hour
)

// parseClockTime anchors a bare HH:mm value to the reference date
func parseClockTime(raw string, reference time.Time) (time.Time, error) {
	clockTime, err := time.Parse(clockTimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}

	dateTime := util.AddTimeToDate(reference, clockTime)

	switch {
	case dateTime.Sub(reference) > rollOverThreshold:
		dateTime = dateTime.AddDate(0, 0, -1)
	case reference.Sub(dateTime) > rollOverThreshold:
		dateTime = dateTime.AddDate(0, 0, 1)
	}

	return dateTime, nil
}

// parseEstimate decodes an estimate field, absent estimates count as scheduled only.
// Estimates are optional so a value that cannot be read is logged and treated as a delay
// with no known time instead of failing the whole response.
func parseEstimate(field string, raw *string, reference time.Time) railmodel.TimeEstimate {
	if raw == nil {
		return railmodel.ScheduledOnly()
	}

	switch value := strings.TrimSpace(*raw); value {
	case "", SentinelOnTime, SentinelNoReport:
		return railmodel.ScheduledOnly()
	case SentinelCancelled:
		return railmodel.Cancelled()
	case SentinelDelayed:
		return railmodel.DelayedUnknown()
	default:
		estimated, err := parseClockTime(value, reference)
		if err != nil {
			log.Warn().Err(err).Str("field", field).Str("value", value).Msg("Unreadable estimate, treating as delayed")
			return railmodel.DelayedUnknown()
		}

		return railmodel.EstimatedAt(estimated)
	}
}

// parseActual decodes an actual time field. "On time" means the event happened at the
// scheduled time and "No report" means it happened but was not recorded.
func parseActual(raw *string, scheduled time.Time, reference time.Time) (actual *time.Time, cancelled bool, err error) {
	if raw == nil {
		return nil, false, nil
	}

	switch value := strings.TrimSpace(*raw); value {
	case "", SentinelNoReport:
		return nil, false, nil
	case SentinelOnTime:
		return &scheduled, false, nil
	case SentinelCancelled:
		return nil, true, nil
	default:
		parsed, err := parseClockTime(value, reference)
		if err != nil {
			return nil, false, err
		}

		return &parsed, false, nil
	}
}

func parseGeneratedAt(raw string) (time.Time, error) {
	generatedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("generatedAt: %w", err)
	}

	return generatedAt, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func optionalString(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
