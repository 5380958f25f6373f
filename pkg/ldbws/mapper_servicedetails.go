package ldbws

import (
	"strings"

	"github.com/travigo/railnav/pkg/railmodel"
)

// MapServiceDetails maps a service details result. requestedID is used when the response
// does not echo the service ID back.
func (m *Mapper) MapServiceDetails(details *ServiceDetails, requestedID string) (*railmodel.TrainService, error) {
	currentStation, err := mapStation("crs", details.Crs, details.LocationName)
	if err != nil {
		return nil, err
	}

	generatedAt := m.generatedAt(details.GeneratedAt, currentStation.ID)

	origin, err := resolveOrigin(details, currentStation)
	if err != nil {
		return nil, err
	}
	destination, err := resolveDestination(details, currentStation)
	if err != nil {
		return nil, err
	}

	serviceID := strings.TrimSpace(stringValue(details.ServiceID))
	if serviceID == "" {
		serviceID = requestedID
	}

	service := &railmodel.TrainService{
		ID:          serviceID,
		Origin:      origin,
		Destination: destination,
		Operator: railmodel.Operator{
			Name: details.Operator,
			Code: details.OperatorCode,
		},
		ServiceType:    details.ServiceType,
		Platform:       optionalString(details.Platform),
		DelayReason:    optionalString(details.DelayReason),
		CancelReason:   optionalString(details.CancelReason),
		CurrentStation: currentStation,
	}

	if details.Std != nil {
		scheduled, estimate, err := parseScheduleAndEstimate("service", "std", "etd", details.Std, details.Etd, generatedAt)
		if err != nil {
			return nil, err
		}

		service.ScheduledDeparture = &scheduled
		service.EstimatedDeparture = estimate.Time()

		actual, _, err := parseActual(details.Atd, scheduled, scheduled)
		if err != nil {
			return nil, &MappingError{Field: "service.atd", RawValue: stringValue(details.Atd), Err: err}
		}
		service.ActualDeparture = actual
	}
	if details.Sta != nil {
		scheduled, estimate, err := parseScheduleAndEstimate("service", "sta", "eta", details.Sta, details.Eta, generatedAt)
		if err != nil {
			return nil, err
		}

		service.ScheduledArrival = &scheduled
		service.EstimatedArrival = estimate.Time()

		actual, _, err := parseActual(details.Ata, scheduled, scheduled)
		if err != nil {
			return nil, &MappingError{Field: "service.ata", RawValue: stringValue(details.Ata), Err: err}
		}
		service.ActualArrival = actual
	}

	// The service level status follows the departure estimate, or the arrival estimate at a terminus
	sentinel := details.Etd
	if details.Std == nil {
		sentinel = details.Eta
	}
	service.Status, service.IsCancelled, service.IsDelayed = sentinelStatus(sentinel)

	if details.IsCancelled && !service.IsCancelled {
		service.Status = railmodel.ServiceStatusCancelled
		service.IsCancelled = true
	}
	if !service.IsCancelled {
		switch {
		case service.ActualDeparture != nil:
			service.Status = railmodel.ServiceStatusDeparted
		case service.ActualArrival != nil:
			service.Status = railmodel.ServiceStatusArrived
		}
	}

	callingPoints, err := mapChronologicalCallingPoints(details.PreviousCallingPoints, details.SubsequentCallingPoints, generatedAt)
	if err != nil {
		return nil, err
	}
	service.CallingPoints = callingPoints

	if details.Length != nil {
		service.Length = *details.Length
	}
	service.Coaches = mapCoaches(details.Formation, details.Length)

	service.Messages = reasonMessages(service.ID, details.CancelReason, details.DelayReason)
	if details.AdhocAlerts != nil {
		for _, alert := range details.AdhocAlerts.AdhocAlertText {
			text := plainText(alert)
			if text == "" {
				continue
			}

			service.Messages = append(service.Messages, railmodel.NewServiceMessage(service.ID, len(service.Messages), text, railmodel.MessageSeverityNormal, railmodel.MessageCategoryService))
		}
	}

	return service, nil
}

// resolveOrigin uses the explicit origin, then the first previous calling point, then the
// station the query was made for
func resolveOrigin(details *ServiceDetails, currentStation railmodel.Station) (railmodel.Station, error) {
	if origin, found, err := mapLocation("origin", details.Origin); err != nil || found {
		return origin, err
	}

	if points := details.PreviousCallingPoints.Main(); len(points) > 0 {
		return mapStation("previousCallingPoints[0].crs", points[0].Crs, points[0].LocationName)
	}

	return currentStation, nil
}

// resolveDestination uses the explicit destination, then the last subsequent calling point,
// then the station the query was made for
func resolveDestination(details *ServiceDetails, currentStation railmodel.Station) (railmodel.Station, error) {
	if destination, found, err := mapLocation("destination", details.Destination); err != nil || found {
		return destination, err
	}

	if points := details.SubsequentCallingPoints.Main(); len(points) > 0 {
		last := points[len(points)-1]
		return mapStation("subsequentCallingPoints.crs", last.Crs, last.LocationName)
	}

	return currentStation, nil
}
