package ldbws

import (
	"fmt"
	"strings"
	"time"

	"github.com/travigo/railnav/pkg/railmodel"
)

func (m *Mapper) MapBoard(board *StationBoard) (*railmodel.DepartureBoard, error) {
	station, err := mapStation("crs", board.Crs, board.LocationName)
	if err != nil {
		return nil, err
	}

	generatedAt := m.generatedAt(board.GeneratedAt, station.ID)

	var filterStation *railmodel.Station
	if filterCrs := optionalString(board.FilterCrs); filterCrs != nil {
		filter, err := mapStation("filtercrs", *filterCrs, stringValue(board.FilterLocationName))
		if err != nil {
			return nil, err
		}
		filterStation = &filter
	}

	services := make([]railmodel.TrainService, 0, len(board.Services()))
	for index, item := range board.Services() {
		service, err := mapBoardService(fmt.Sprintf("trainServices[%d]", index), item, station, generatedAt)
		if err != nil {
			return nil, err
		}

		services = append(services, service)
	}

	var messages []railmodel.ServiceMessage
	if board.NrccMessages != nil {
		for index, message := range board.NrccMessages.Message {
			text := plainText(message)
			if text == "" {
				continue
			}

			messages = append(messages, railmodel.NewServiceMessage(station.ID, index, text, railmodel.MessageSeverityNormal, railmodel.MessageCategoryStation))
		}
	}

	return &railmodel.DepartureBoard{
		Station:           station,
		GeneratedAt:       generatedAt,
		PlatformAvailable: board.PlatformAvailable,
		Services:          services,
		Messages:          messages,
		FilterStation:     filterStation,
	}, nil
}

func mapBoardService(field string, item ServiceItem, currentStation railmodel.Station, reference time.Time) (railmodel.TrainService, error) {
	origin, _, err := mapLocation(field+".origin", item.Origin)
	if err != nil {
		return railmodel.TrainService{}, err
	}
	destination, _, err := mapLocation(field+".destination", item.Destination)
	if err != nil {
		return railmodel.TrainService{}, err
	}

	service := railmodel.TrainService{
		ID:          strings.TrimSpace(item.ServiceID),
		Origin:      origin,
		Destination: destination,
		Operator: railmodel.Operator{
			Name: item.Operator,
			Code: item.OperatorCode,
		},
		ServiceType:     item.ServiceType,
		IsCircularRoute: item.IsCircularRoute,
		Platform:        optionalString(item.Platform),
		DelayReason:     optionalString(item.DelayReason),
		CancelReason:    optionalString(item.CancelReason),
		CurrentStation:  currentStation,
	}

	if item.Sta != nil {
		scheduled, estimate, err := parseScheduleAndEstimate(field, "sta", "eta", item.Sta, item.Eta, reference)
		if err != nil {
			return railmodel.TrainService{}, err
		}

		service.ScheduledArrival = &scheduled
		service.EstimatedArrival = estimate.Time()
	}
	if item.Std != nil {
		scheduled, estimate, err := parseScheduleAndEstimate(field, "std", "etd", item.Std, item.Etd, reference)
		if err != nil {
			return railmodel.TrainService{}, err
		}

		service.ScheduledDeparture = &scheduled
		service.EstimatedDeparture = estimate.Time()
	}

	// On an arrival board sta/eta stand in for the departure times and drive the status,
	// std/etd are only used for rows without an arrival
	sentinel := item.Etd
	switch {
	case item.Sta != nil:
		service.ScheduledDeparture = service.ScheduledArrival
		service.EstimatedDeparture = service.EstimatedArrival
		sentinel = item.Eta
	case item.Std != nil:
	default:
		return railmodel.TrainService{}, &MappingError{Field: field + ".sta", RawValue: "", Err: missingElement("sta or std")}
	}

	service.Status, service.IsCancelled, service.IsDelayed = sentinelStatus(sentinel)

	callingPoints, err := mapChronologicalCallingPoints(item.PreviousCallingPoints, item.SubsequentCallingPoints, reference)
	if err != nil {
		return railmodel.TrainService{}, prefixMappingError(field, err)
	}
	service.CallingPoints = callingPoints

	if item.Length != nil {
		service.Length = *item.Length
	}
	service.Coaches = mapCoaches(item.Formation, item.Length)
	service.Messages = reasonMessages(service.ID, item.CancelReason, item.DelayReason)

	return service, nil
}

// sentinelStatus derives the row status from the estimate string alone. Boards and the
// service level of details use this, calling points use railmodel.CallingPointStatus.
func sentinelStatus(estimate *string) (status railmodel.ServiceStatus, cancelled bool, delayed bool) {
	if estimate == nil {
		return railmodel.ServiceStatusUnknown, false, false
	}

	switch strings.TrimSpace(*estimate) {
	case SentinelOnTime:
		return railmodel.ServiceStatusOnTime, false, false
	case SentinelCancelled:
		return railmodel.ServiceStatusCancelled, true, true
	default:
		return railmodel.ServiceStatusDelayed, false, true
	}
}

func parseScheduleAndEstimate(field string, scheduledName string, estimateName string, scheduledRaw *string, estimateRaw *string, reference time.Time) (time.Time, railmodel.TimeEstimate, error) {
	scheduled, err := parseClockTime(*scheduledRaw, reference)
	if err != nil {
		return time.Time{}, railmodel.TimeEstimate{}, &MappingError{Field: field + "." + scheduledName, RawValue: *scheduledRaw, Err: err}
	}

	return scheduled, parseEstimate(field+"."+estimateName, estimateRaw, scheduled), nil
}

func prefixMappingError(prefix string, err error) error {
	if mappingError, ok := err.(*MappingError); ok {
		return &MappingError{Field: prefix + "." + mappingError.Field, RawValue: mappingError.RawValue, Err: mappingError.Err}
	}

	return err
}
