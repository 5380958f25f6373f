package lookup

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railnav/pkg/railmodel"
)

func stringPointer(value string) *string {
	return &value
}

func timePointer(hour int, minute int) *time.Time {
	t := time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
	return &t
}

func testBoard() *railmodel.DepartureBoard {
	return &railmodel.DepartureBoard{
		Station:     railmodel.Station{ID: "DEW", Name: "Dewsbury"},
		GeneratedAt: *timePointer(13, 58),
		Services: []railmodel.TrainService{
			{
				ID:                 "583220",
				Destination:        railmodel.Station{ID: "LDS", Name: "Leeds"},
				Operator:           railmodel.Operator{Name: "Northern", Code: "NT"},
				ScheduledDeparture: timePointer(14, 5),
				Platform:           stringPointer("2"),
				Status:             railmodel.ServiceStatusOnTime,
			},
			{
				ID:                 "583221",
				Destination:        railmodel.Station{ID: "MAN", Name: "Manchester Piccadilly"},
				Operator:           railmodel.Operator{Name: "TransPennine Express", Code: "TP"},
				ScheduledDeparture: timePointer(14, 10),
				EstimatedDeparture: timePointer(14, 18),
				Status:             railmodel.ServiceStatusDelayed,
				IsDelayed:          true,
				DelayReason:        stringPointer("This train has been delayed by a fault with the signalling system"),
			},
			{
				ID:                 "583222",
				Destination:        railmodel.Station{ID: "YRK", Name: "York"},
				Operator:           railmodel.Operator{Name: "TransPennine Express", Code: "TP"},
				ScheduledDeparture: timePointer(14, 20),
				Status:             railmodel.ServiceStatusCancelled,
				IsCancelled:        true,
				IsDelayed:          true,
				CancelReason:       stringPointer("This train has been cancelled because of a shortage of train crew"),
			},
			{
				ID:               "583223",
				Destination:      railmodel.Station{ID: "DEW", Name: "Dewsbury"},
				ScheduledArrival: timePointer(14, 30),
				Status:           railmodel.ServiceStatusDelayed,
				IsDelayed:        true,
			},
		},
		Messages: []railmodel.ServiceMessage{
			{Text: "Lifts are out of order at this station"},
		},
	}
}

func TestNewBoardRows(t *testing.T) {
	rows := NewBoardRows(testBoard())
	require.Len(t, rows, 4)

	assert.Equal(t, BoardRow{
		ID:          "583220",
		Scheduled:   "14:05",
		Expected:    "On time",
		Destination: "Leeds",
		Platform:    "2",
		Operator:    "Northern",
		Status:      "OnTime",
	}, *rows[0])

	assert.Equal(t, "14:18", rows[1].Expected)
	assert.Equal(t, "This train has been delayed by a fault with the signalling system", rows[1].Reason)

	assert.Equal(t, "Cancelled", rows[2].Expected)
	assert.Equal(t, "This train has been cancelled because of a shortage of train crew", rows[2].Reason)

	assert.Equal(t, "14:30", rows[3].Scheduled)
	assert.Equal(t, "Delayed", rows[3].Expected)
	assert.Equal(t, "", rows[3].Platform)
}

func TestWriteBoardCSV(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteBoardCSV(&buffer, testBoard()))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "id,scheduled,expected,destination,platform,operator,status,reason", lines[0])
	assert.Equal(t, "583220,14:05,On time,Leeds,2,Northern,OnTime,", lines[1])
}

func TestWriteBoardText(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, WriteBoardText(&buffer, testBoard()))

	output := buffer.String()
	assert.True(t, strings.HasPrefix(output, "Dewsbury (DEW) at 13:58\n"))
	assert.Contains(t, output, "Manchester Piccadilly")
	assert.Contains(t, output, "shortage of train crew")
	assert.Contains(t, output, "! Lifts are out of order at this station")

	buffer.Reset()
	require.NoError(t, WriteBoardText(&buffer, &railmodel.DepartureBoard{Station: railmodel.Station{ID: "DEW", Name: "Dewsbury"}}))
	assert.Contains(t, buffer.String(), "No services")
}

func TestWriteServiceText(t *testing.T) {
	service := testBoard().Services[1]
	service.Origin = railmodel.Station{ID: "LDS", Name: "Leeds"}
	service.CallingPoints = []railmodel.CallingPoint{
		{Station: railmodel.Station{ID: "HUD", Name: "Huddersfield"}, ScheduledTime: *timePointer(14, 22), EstimatedTime: timePointer(14, 29), Status: railmodel.ServiceStatusDelayed},
		{Station: railmodel.Station{ID: "MAN", Name: "Manchester Piccadilly"}, ScheduledTime: *timePointer(14, 55), Status: railmodel.ServiceStatusOnTime},
	}
	service.Coaches = railmodel.PlaceholderCoaches(3)

	var buffer bytes.Buffer
	require.NoError(t, WriteServiceText(&buffer, &service))

	output := buffer.String()
	assert.Contains(t, output, "583221 Leeds to Manchester Piccadilly (TransPennine Express)")
	assert.Contains(t, output, "Status: Delayed")
	assert.Contains(t, output, "expected 14:29")
	assert.Contains(t, output, "Coaches: 1 2 3")
}

func TestPrintBoard(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, PrintBoard(&buffer, testBoard(), FormatPretty))
	assert.Contains(t, buffer.String(), "583223")

	buffer.Reset()
	require.NoError(t, PrintBoard(&buffer, testBoard(), FormatCSV))
	assert.True(t, strings.HasPrefix(buffer.String(), "id,"))
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	format, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
