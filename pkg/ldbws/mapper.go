package ldbws

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/railmodel"
	"golang.org/x/net/html"
)

// Mapper converts decoded responses into the railmodel domain types
type Mapper struct {
	Now func() time.Time
}

func NewMapper(now func() time.Time) *Mapper {
	if now == nil {
		now = time.Now
	}

	return &Mapper{Now: now}
}

// generatedAt never fails, an unparseable value is replaced with the current time
func (m *Mapper) generatedAt(raw string, scope string) time.Time {
	generatedAt, err := parseGeneratedAt(raw)
	if err != nil {
		now := m.Now()
		log.Warn().Err(err).Str("scope", scope).Str("value", raw).Time("fallback", now).Msg("Unparseable generatedAt, using current time")

		return now
	}

	return generatedAt
}

func mapStation(field string, crs string, name string) (railmodel.Station, error) {
	station, err := railmodel.NewStation(crs, name)
	if err != nil {
		return railmodel.Station{}, &MappingError{Field: field, RawValue: crs, Err: err}
	}

	return station, nil
}

func mapLocation(field string, locations *ServiceLocations) (railmodel.Station, bool, error) {
	if locations == nil || len(locations.Location) == 0 {
		return railmodel.Station{}, false, nil
	}

	location := locations.Location[0]
	station, err := mapStation(field+".crs", location.Crs, location.LocationName)

	return station, err == nil, err
}

func mapCallingPoints(field string, points []CallingPoint, reference time.Time) ([]railmodel.CallingPoint, error) {
	callingPoints := make([]railmodel.CallingPoint, 0, len(points))

	for index, point := range points {
		pointField := fmt.Sprintf("%s[%d]", field, index)

		station, err := mapStation(pointField+".crs", point.Crs, point.LocationName)
		if err != nil {
			return nil, err
		}

		scheduled, err := parseClockTime(point.St, reference)
		if err != nil {
			return nil, &MappingError{Field: pointField + ".st", RawValue: point.St, Err: err}
		}

		estimate := parseEstimate(pointField+".et", point.Et, scheduled)

		actual, actualCancelled, err := parseActual(point.At, scheduled, scheduled)
		if err != nil {
			return nil, &MappingError{Field: pointField + ".at", RawValue: stringValue(point.At), Err: err}
		}

		cancelled := point.IsCancelled || estimate.IsCancelled() || actualCancelled
		estimated := estimate.Time()

		status := railmodel.CallingPointStatus(cancelled, estimated, actual)
		if status == railmodel.ServiceStatusOnTime && estimate.Kind == railmodel.TimeEstimateDelayed {
			status = railmodel.ServiceStatusDelayed
		}

		callingPoints = append(callingPoints, railmodel.CallingPoint{
			Station:       station,
			ScheduledTime: scheduled,
			EstimatedTime: estimated,
			ActualTime:    actual,
			Platform:      optionalString(point.Platform),
			Status:        status,
			IsCancelled:   cancelled,
		})
	}

	return callingPoints, nil
}

// mapChronologicalCallingPoints puts previous calling points before subsequent ones
func mapChronologicalCallingPoints(previous *CallingPointLists, subsequent *CallingPointLists, reference time.Time) ([]railmodel.CallingPoint, error) {
	previousPoints, err := mapCallingPoints("previousCallingPoints", previous.Flatten(), reference)
	if err != nil {
		return nil, err
	}

	subsequentPoints, err := mapCallingPoints("subsequentCallingPoints", subsequent.Flatten(), reference)
	if err != nil {
		return nil, err
	}

	return append(previousPoints, subsequentPoints...), nil
}

// mapCoaches prefers an explicit formation and otherwise synthesises placeholder coaches from the train length
func mapCoaches(formation *FormationData, length *int) []railmodel.Coach {
	if formation != nil && formation.Coaches != nil && len(formation.Coaches.Coach) > 0 {
		coaches := make([]railmodel.Coach, 0, len(formation.Coaches.Coach))

		for _, coachData := range formation.Coaches.Coach {
			coach := railmodel.Coach{
				Number: strings.TrimSpace(coachData.Number),
				Class:  mapCoachClass(coachData.CoachClass),
			}

			if coachData.Loading != nil {
				level := railmodel.LoadingLevelFromPercentage(*coachData.Loading)
				coach.LoadingLevel = &level
			}

			if coachData.Toilet != nil {
				coach.Toilet = &railmodel.ToiletStatus{
					Available: mapToiletAvailable(coachData.Toilet.Status),
					Kind:      mapToiletKind(coachData.Toilet.Type),
				}
			}

			coaches = append(coaches, coach)
		}

		return coaches
	}

	if length != nil {
		return railmodel.PlaceholderCoaches(*length)
	}

	return nil
}

func mapCoachClass(class string) railmodel.CoachClass {
	switch strings.ToLower(strings.TrimSpace(class)) {
	case "first":
		return railmodel.CoachClassFirst
	case "mixed":
		return railmodel.CoachClassMixed
	default:
		return railmodel.CoachClassStandard
	}
}

func mapToiletAvailable(status string) bool {
	switch strings.TrimSpace(status) {
	case "InService", "Available":
		return true
	default:
		return false
	}
}

func mapToiletKind(kind string) railmodel.ToiletKind {
	switch strings.TrimSpace(kind) {
	case "Standard":
		return railmodel.ToiletKindStandard
	case "Accessible":
		return railmodel.ToiletKindAccessible
	default:
		return railmodel.ToiletKindNone
	}
}

func reasonMessages(scope string, cancelReason *string, delayReason *string) []railmodel.ServiceMessage {
	var messages []railmodel.ServiceMessage

	if reason := optionalString(cancelReason); reason != nil {
		messages = append(messages, railmodel.NewServiceMessage(scope, len(messages), *reason, railmodel.MessageSeverityMajor, railmodel.MessageCategoryService))
	}
	if reason := optionalString(delayReason); reason != nil {
		messages = append(messages, railmodel.NewServiceMessage(scope, len(messages), *reason, railmodel.MessageSeverityMinor, railmodel.MessageCategoryService))
	}

	return messages
}

// plainText strips the HTML markup that station messages are often delivered with
func plainText(raw string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	var builder strings.Builder

	for {
		tokenType := tokenizer.Next()

		switch tokenType {
		case html.ErrorToken:
			if tokenizer.Err() != io.EOF {
				return strings.TrimSpace(raw)
			}

			return strings.Join(strings.Fields(builder.String()), " ")
		case html.TextToken:
			builder.Write(tokenizer.Text())
			builder.WriteString(" ")
		}
	}
}
