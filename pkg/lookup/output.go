package lookup

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/travigo/railnav/pkg/railmodel"
)

const clockFormat = "15:04"

// BoardRow is a flattened service used for the text and CSV outputs
type BoardRow struct {
	ID          string `csv:"id"`
	Scheduled   string `csv:"scheduled"`
	Expected    string `csv:"expected"`
	Destination string `csv:"destination"`
	Platform    string `csv:"platform"`
	Operator    string `csv:"operator"`
	Status      string `csv:"status"`
	Reason      string `csv:"reason"`
}

func NewBoardRows(board *railmodel.DepartureBoard) []*BoardRow {
	rows := make([]*BoardRow, 0, len(board.Services))

	for _, service := range board.Services {
		rows = append(rows, newBoardRow(service))
	}

	return rows
}

func newBoardRow(service railmodel.TrainService) *BoardRow {
	row := &BoardRow{
		ID:          service.ID,
		Scheduled:   formatClock(scheduledTime(service)),
		Expected:    expectedText(service),
		Destination: service.Destination.Name,
		Operator:    service.Operator.Name,
		Status:      string(service.Status),
	}

	if service.Platform != nil {
		row.Platform = *service.Platform
	}

	switch {
	case service.IsCancelled && service.CancelReason != nil:
		row.Reason = *service.CancelReason
	case service.DelayReason != nil:
		row.Reason = *service.DelayReason
	}

	return row
}

// scheduledTime prefers the departure, terminating services only have an arrival
func scheduledTime(service railmodel.TrainService) *time.Time {
	if service.ScheduledDeparture != nil {
		return service.ScheduledDeparture
	}

	return service.ScheduledArrival
}

func expectedText(service railmodel.TrainService) string {
	switch {
	case service.IsCancelled:
		return "Cancelled"
	case service.EstimatedDeparture != nil:
		return formatClock(service.EstimatedDeparture)
	case service.EstimatedArrival != nil:
		return formatClock(service.EstimatedArrival)
	case service.IsDelayed:
		return "Delayed"
	default:
		return "On time"
	}
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "--:--"
	}

	return t.Format(clockFormat)
}

func WriteBoardCSV(w io.Writer, board *railmodel.DepartureBoard) error {
	return gocsv.Marshal(NewBoardRows(board), w)
}

func WriteBoardText(w io.Writer, board *railmodel.DepartureBoard) error {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s (%s) at %s\n", board.Station.Name, board.Station.ID, board.GeneratedAt.Format(clockFormat))

	if len(board.Services) == 0 {
		builder.WriteString("No services\n")
	}

	for _, row := range NewBoardRows(board) {
		fmt.Fprintf(&builder, "%-5s  %-24s  %-4s  %-9s  %s\n", row.Scheduled, row.Destination, row.Platform, row.Expected, row.Operator)

		if row.Reason != "" {
			fmt.Fprintf(&builder, "       %s\n", row.Reason)
		}
	}

	for _, message := range board.Messages {
		fmt.Fprintf(&builder, "! %s\n", message.Text)
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func WriteServiceText(w io.Writer, service *railmodel.TrainService) error {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s %s to %s (%s)\n", service.ID, service.Origin.Name, service.Destination.Name, service.Operator.Name)
	fmt.Fprintf(&builder, "Status: %s\n", service.Status)

	if service.IsCancelled && service.CancelReason != nil {
		fmt.Fprintf(&builder, "%s\n", *service.CancelReason)
	} else if service.DelayReason != nil {
		fmt.Fprintf(&builder, "%s\n", *service.DelayReason)
	}

	for _, callingPoint := range service.CallingPoints {
		expected := ""
		switch {
		case callingPoint.ActualTime != nil:
			expected = "actual " + formatClock(callingPoint.ActualTime)
		case callingPoint.EstimatedTime != nil:
			expected = "expected " + formatClock(callingPoint.EstimatedTime)
		}

		fmt.Fprintf(&builder, "  %s  %-24s  %-9s  %s\n", callingPoint.ScheduledTime.Format(clockFormat), callingPoint.Station.Name, callingPoint.Status, expected)
	}

	if len(service.Coaches) > 0 {
		coaches := make([]string, 0, len(service.Coaches))
		for _, coach := range service.Coaches {
			coaches = append(coaches, coach.Number)
		}

		fmt.Fprintf(&builder, "Coaches: %s\n", strings.Join(coaches, " "))
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
