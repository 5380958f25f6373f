package ldbws

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railnav/pkg/railmodel"
)

var fixedNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func mapBoardFixture(t *testing.T, data []byte) *railmodel.DepartureBoard {
	t.Helper()

	decoded, err := DecodeBoard(data)
	require.NoError(t, err)

	board, err := NewMapper(fixedClock).MapBoard(decoded)
	require.NoError(t, err)

	return board
}

func mapServiceDetailsFixture(t *testing.T, data []byte) *railmodel.TrainService {
	t.Helper()

	decoded, err := DecodeServiceDetails(data)
	require.NoError(t, err)

	service, err := NewMapper(fixedClock).MapServiceDetails(decoded, "requested-id")
	require.NoError(t, err)

	return service
}

func TestMapBoard(t *testing.T) {
	board := mapBoardFixture(t, readFixture(t, "board_dew.xml"))

	assert.Equal(t, railmodel.Station{ID: "DEW", Name: "Dewsbury"}, board.Station)
	assert.Equal(t, time.Date(2025, 3, 1, 13, 58, 12, 123456700, time.UTC).Unix(), board.GeneratedAt.Unix())
	assert.True(t, board.PlatformAvailable)
	assert.Nil(t, board.FilterStation)

	require.Len(t, board.Messages, 1)
	assert.Equal(t, "Lifts at this station are out of order. More details", board.Messages[0].Text)
	assert.Equal(t, railmodel.MessageSeverityNormal, board.Messages[0].Severity)
	assert.Equal(t, railmodel.MessageCategoryStation, board.Messages[0].Category)

	require.Len(t, board.Services, 3)
}

func TestMapBoardOnTimeService(t *testing.T) {
	board := mapBoardFixture(t, readFixture(t, "board_dew.xml"))
	service := board.Services[0]

	assert.Equal(t, "419386DWBY____", service.ID)
	assert.Equal(t, railmodel.ServiceStatusOnTime, service.Status)
	assert.False(t, service.IsCancelled)
	assert.False(t, service.IsDelayed)
	assert.False(t, service.IsDisrupted())

	require.NotNil(t, service.ScheduledDeparture)
	assert.Equal(t, "14:05", service.ScheduledDeparture.Format("15:04"))
	assert.Nil(t, service.EstimatedDeparture)
	assert.Equal(t, service.ScheduledArrival, service.ScheduledDeparture)

	assert.Equal(t, railmodel.Station{ID: "MAN", Name: "Manchester Piccadilly"}, service.Origin)
	assert.Equal(t, railmodel.Station{ID: "LDS", Name: "Leeds"}, service.Destination)
	assert.Equal(t, railmodel.Operator{Name: "TransPennine Express", Code: "TP"}, service.Operator)
	assert.Equal(t, "DEW", service.CurrentStation.ID)
	require.NotNil(t, service.Platform)
	assert.Equal(t, "2", *service.Platform)

	require.Len(t, service.CallingPoints, 2)
	manchester := service.CallingPoints[0]
	assert.Equal(t, "MAN", manchester.Station.ID)
	require.NotNil(t, manchester.ActualTime)
	assert.Equal(t, manchester.ScheduledTime, *manchester.ActualTime)
	assert.Equal(t, railmodel.ServiceStatusArrived, manchester.Status)

	huddersfield := service.CallingPoints[1]
	require.NotNil(t, huddersfield.ActualTime)
	assert.Equal(t, "13:54", huddersfield.ActualTime.Format("15:04"))

	assert.Equal(t, 4, service.Length)
	assert.Equal(t, railmodel.PlaceholderCoaches(4), service.Coaches)
	assert.Empty(t, service.Messages)
}

func TestMapBoardCancelledService(t *testing.T) {
	board := mapBoardFixture(t, readFixture(t, "board_dew.xml"))
	service := board.Services[1]

	assert.Equal(t, railmodel.ServiceStatusCancelled, service.Status)
	assert.True(t, service.IsCancelled)
	assert.True(t, service.IsDelayed)
	assert.Nil(t, service.EstimatedDeparture)
	assert.Equal(t, "WKF", service.Origin.ID)

	require.NotNil(t, service.CancelReason)
	require.Len(t, service.Messages, 1)
	assert.Equal(t, railmodel.MessageSeverityMajor, service.Messages[0].Severity)
	assert.Equal(t, *service.CancelReason, service.Messages[0].Text)

	assert.Nil(t, service.Coaches)
}

func TestMapBoardDelayedServiceWithFormation(t *testing.T) {
	board := mapBoardFixture(t, readFixture(t, "board_dew.xml"))
	service := board.Services[2]

	assert.Equal(t, railmodel.ServiceStatusDelayed, service.Status)
	assert.False(t, service.IsCancelled)
	assert.True(t, service.IsDelayed)
	require.NotNil(t, service.EstimatedDeparture)
	assert.Equal(t, "14:38", service.EstimatedDeparture.Format("15:04"))

	require.Len(t, service.Messages, 1)
	assert.Equal(t, railmodel.MessageSeverityMinor, service.Messages[0].Severity)

	require.Len(t, service.Coaches, 2)
	first := service.Coaches[0]
	assert.Equal(t, "A", first.Number)
	assert.Equal(t, railmodel.CoachClassFirst, first.Class)
	require.NotNil(t, first.LoadingLevel)
	assert.Equal(t, 0, *first.LoadingLevel)
	assert.Equal(t, &railmodel.ToiletStatus{Available: true, Kind: railmodel.ToiletKindAccessible}, first.Toilet)

	second := service.Coaches[1]
	assert.Equal(t, railmodel.CoachClassStandard, second.Class)
	assert.Equal(t, 3, *second.LoadingLevel)
	assert.Equal(t, &railmodel.ToiletStatus{Available: false, Kind: railmodel.ToiletKindStandard}, second.Toilet)
}

func TestMapBoardIsDeterministic(t *testing.T) {
	data := readFixture(t, "board_dew.xml")

	assert.Equal(t, mapBoardFixture(t, data), mapBoardFixture(t, data))
}

func TestMapBoardGeneratedAtFallback(t *testing.T) {
	data := replaceFixture(t, "board_dew.xml", "2025-03-01T13:58:12.1234567+00:00", "yesterday-ish")

	board := mapBoardFixture(t, data)
	assert.Equal(t, fixedNow, board.GeneratedAt)
}

func TestMapBoardMappingErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		field string
	}{
		{
			name:  "bad calling point time",
			data:  replaceFixture(t, "board_dew.xml", "<lt8:st>13:52</lt8:st>", "<lt8:st>half past</lt8:st>"),
			field: "trainServices[0].previousCallingPoints[1].st",
		},
		{
			name:  "bad station code",
			data:  replaceFixture(t, "board_dew.xml", "<lt4:crs>DEW</lt4:crs>", "<lt4:crs>DEWS</lt4:crs>"),
			field: "crs",
		},
		{
			name:  "bad origin code",
			data:  replaceFixture(t, "board_dew.xml", "<lt4:crs>wkf</lt4:crs>", "<lt4:crs>W1F</lt4:crs>"),
			field: "trainServices[1].origin.crs",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decoded, err := DecodeBoard(test.data)
			require.NoError(t, err)

			board, err := NewMapper(fixedClock).MapBoard(decoded)
			assert.Nil(t, board)

			var mappingError *MappingError
			require.ErrorAs(t, err, &mappingError)
			assert.Equal(t, test.field, mappingError.Field)
		})
	}
}

func TestMapBoardUnreadableEstimate(t *testing.T) {
	for _, estimate := range []string{"No report", "Starts here", "soon"} {
		t.Run(estimate, func(t *testing.T) {
			data := replaceFixture(t, "board_dew.xml", "<lt4:eta>14:38</lt4:eta>", "<lt4:eta>"+estimate+"</lt4:eta>")

			board := mapBoardFixture(t, data)
			require.Len(t, board.Services, 3)

			service := board.Services[2]
			assert.Equal(t, "14:31", service.ScheduledDeparture.Format("15:04"))
			assert.Nil(t, service.EstimatedDeparture)
			assert.Nil(t, service.EstimatedArrival)
			assert.Equal(t, railmodel.ServiceStatusDelayed, service.Status)
			assert.True(t, service.IsDelayed)
			assert.False(t, service.IsCancelled)
		})
	}
}

func TestMapBoardUnreadableCallingPointEstimate(t *testing.T) {
	data := replaceFixture(t, "board_dew.xml", "<lt8:at>13:54</lt8:at>", "<lt8:et>Delayed</lt8:et>")

	board := mapBoardFixture(t, data)
	huddersfield := board.Services[0].CallingPoints[1]
	assert.Nil(t, huddersfield.EstimatedTime)
	assert.Nil(t, huddersfield.ActualTime)
	assert.Equal(t, railmodel.ServiceStatusDelayed, huddersfield.Status)

	data = replaceFixture(t, "board_dew.xml", "<lt8:at>13:54</lt8:at>", "<lt8:et>late-ish</lt8:et>")

	board = mapBoardFixture(t, data)
	huddersfield = board.Services[0].CallingPoints[1]
	assert.Nil(t, huddersfield.EstimatedTime)
	assert.Equal(t, railmodel.ServiceStatusDelayed, huddersfield.Status)
}

func TestMapBoardPrefersArrivalTimes(t *testing.T) {
	data := replaceFixture(t, "board_dew.xml",
		"<lt4:eta>On time</lt4:eta>",
		"<lt4:eta>On time</lt4:eta>\n            <lt4:std>14:07</lt4:std>\n            <lt4:etd>14:12</lt4:etd>")

	service := mapBoardFixture(t, data).Services[0]
	assert.Equal(t, "14:05", service.ScheduledDeparture.Format("15:04"))
	assert.Nil(t, service.EstimatedDeparture)
	assert.Equal(t, railmodel.ServiceStatusOnTime, service.Status)
	assert.False(t, service.IsDelayed)

	data = replaceFixture(t, "board_dew.xml",
		"<lt4:sta>14:05</lt4:sta>\n            <lt4:eta>On time</lt4:eta>",
		"<lt4:std>14:07</lt4:std>\n            <lt4:etd>14:12</lt4:etd>")

	service = mapBoardFixture(t, data).Services[0]
	assert.Nil(t, service.ScheduledArrival)
	assert.Equal(t, "14:07", service.ScheduledDeparture.Format("15:04"))
	assert.Equal(t, "14:12", service.EstimatedDeparture.Format("15:04"))
	assert.Equal(t, railmodel.ServiceStatusDelayed, service.Status)
}

func TestMapServiceDetails(t *testing.T) {
	service := mapServiceDetailsFixture(t, readFixture(t, "servicedetails_no_origin.xml"))

	assert.Equal(t, "requested-id", service.ID)
	assert.Equal(t, railmodel.Station{ID: "LDS", Name: "Leeds"}, service.Origin)
	assert.Equal(t, railmodel.Station{ID: "MAN", Name: "Manchester Piccadilly"}, service.Destination)
	assert.Equal(t, railmodel.Station{ID: "DEW", Name: "Dewsbury"}, service.CurrentStation)

	assert.Equal(t, railmodel.ServiceStatusDelayed, service.Status)
	assert.True(t, service.IsDelayed)
	assert.False(t, service.IsCancelled)
	assert.Equal(t, "14:06", service.ScheduledDeparture.Format("15:04"))
	assert.Equal(t, "14:09", service.EstimatedDeparture.Format("15:04"))
	assert.Equal(t, "14:05", service.ScheduledArrival.Format("15:04"))
	assert.Nil(t, service.EstimatedArrival)
	assert.Nil(t, service.ActualDeparture)

	require.Len(t, service.CallingPoints, 4)
	statuses := []railmodel.ServiceStatus{}
	stations := []string{}
	for _, point := range service.CallingPoints {
		statuses = append(statuses, point.Status)
		stations = append(stations, point.Station.ID)
	}
	assert.Equal(t, []string{"LDS", "HUD", "SYB", "MAN"}, stations)
	assert.Equal(t, []railmodel.ServiceStatus{
		railmodel.ServiceStatusArrived,
		railmodel.ServiceStatusDelayed,
		railmodel.ServiceStatusCancelled,
		railmodel.ServiceStatusOnTime,
	}, statuses)
	assert.True(t, service.CallingPoints[2].IsCancelled)

	assert.Equal(t, 4, service.Length)
	assert.Equal(t, railmodel.PlaceholderCoaches(4), service.Coaches)

	require.Len(t, service.Messages, 2)
	assert.Equal(t, railmodel.MessageSeverityMinor, service.Messages[0].Severity)
	assert.Equal(t, "This train will be busy", service.Messages[1].Text)
	assert.Equal(t, railmodel.MessageSeverityNormal, service.Messages[1].Severity)
	assert.Equal(t, railmodel.MessageCategoryService, service.Messages[1].Category)
}

func TestMapServiceDetailsEndpointFallbacks(t *testing.T) {
	explicit := replaceFixture(t, "servicedetails_no_origin.xml", "<lt7:operator>",
		`<lt7:origin><lt4:location><lt4:locationName>York</lt4:locationName><lt4:crs>YRK</lt4:crs></lt4:location></lt7:origin>
<lt7:destination><lt4:location><lt4:locationName>Liverpool Lime Street</lt4:locationName><lt4:crs>LIV</lt4:crs></lt4:location></lt7:destination>
<lt7:operator>`)

	service := mapServiceDetailsFixture(t, explicit)
	assert.Equal(t, "YRK", service.Origin.ID)
	assert.Equal(t, "LIV", service.Destination.ID)

	noCallingPoints := string(readFixture(t, "servicedetails_no_origin.xml"))
	noCallingPoints = cutBetween(t, noCallingPoints, "<lt8:previousCallingPoints>", "</lt8:subsequentCallingPoints>")

	service = mapServiceDetailsFixture(t, []byte(noCallingPoints))
	assert.Equal(t, service.CurrentStation, service.Origin)
	assert.Equal(t, service.CurrentStation, service.Destination)
	assert.Empty(t, service.CallingPoints)
}

func TestMapServiceDetailsStatus(t *testing.T) {
	tests := []struct {
		name      string
		old       string
		new       string
		status    railmodel.ServiceStatus
		cancelled bool
		delayed   bool
	}{
		{
			name:    "departed",
			old:     "<lt7:etd>14:09</lt7:etd>",
			new:     "<lt7:etd>14:09</lt7:etd><lt7:atd>14:10</lt7:atd>",
			status:  railmodel.ServiceStatusDeparted,
			delayed: true,
		},
		{
			name:   "arrived",
			old:    "<lt7:std>14:06</lt7:std>\n        <lt7:etd>14:09</lt7:etd>",
			new:    "<lt7:ata>On time</lt7:ata>",
			status: railmodel.ServiceStatusArrived,
		},
		{
			name:      "cancelled by flag",
			old:       "<lt7:operatorCode>TP</lt7:operatorCode>",
			new:       "<lt7:operatorCode>TP</lt7:operatorCode><lt7:isCancelled>true</lt7:isCancelled>",
			status:    railmodel.ServiceStatusCancelled,
			cancelled: true,
			delayed:   true,
		},
		{
			name:      "cancelled estimate",
			old:       "<lt7:etd>14:09</lt7:etd>",
			new:       "<lt7:etd>Cancelled</lt7:etd>",
			status:    railmodel.ServiceStatusCancelled,
			cancelled: true,
			delayed:   true,
		},
		{
			name:    "delayed without time",
			old:     "<lt7:etd>14:09</lt7:etd>",
			new:     "<lt7:etd>Delayed</lt7:etd>",
			status:  railmodel.ServiceStatusDelayed,
			delayed: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service := mapServiceDetailsFixture(t, replaceFixture(t, "servicedetails_no_origin.xml", test.old, test.new))

			assert.Equal(t, test.status, service.Status)
			assert.Equal(t, test.cancelled, service.IsCancelled)
			assert.Equal(t, test.delayed, service.IsDelayed)
		})
	}
}

func TestMapServiceDetailsEchoedID(t *testing.T) {
	data := replaceFixture(t, "servicedetails_no_origin.xml", "<lt7:rsid>", "<lt7:serviceID>echoed-id</lt7:serviceID><lt7:rsid>")

	service := mapServiceDetailsFixture(t, data)
	assert.Equal(t, "echoed-id", service.ID)
}

func TestParseClockTimeRollsOverMidnight(t *testing.T) {
	lateEvening := time.Date(2025, 3, 1, 23, 50, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, 3, 2, 0, 10, 0, 0, time.UTC)

	parsed, err := parseClockTime("00:05", lateEvening)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 5, 0, 0, time.UTC), parsed)

	parsed, err = parseClockTime("23:55", earlyMorning)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 23, 55, 0, 0, time.UTC), parsed)

	parsed, err = parseClockTime("14:05", lateEvening)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 14, 5, 0, 0, time.UTC), parsed)

	_, err = parseClockTime("25:00", lateEvening)
	assert.Error(t, err)
}

func TestParseEstimate(t *testing.T) {
	reference := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	value := func(s string) *string { return &s }

	tests := []struct {
		raw      *string
		expected railmodel.TimeEstimate
	}{
		{nil, railmodel.ScheduledOnly()},
		{value(""), railmodel.ScheduledOnly()},
		{value("On time"), railmodel.ScheduledOnly()},
		{value("Cancelled"), railmodel.Cancelled()},
		{value("No report"), railmodel.ScheduledOnly()},
		{value("Delayed"), railmodel.DelayedUnknown()},
		{value("Late"), railmodel.DelayedUnknown()},
		{value("25:99"), railmodel.DelayedUnknown()},
		{value("14:12"), railmodel.EstimatedAt(time.Date(2025, 3, 1, 14, 12, 0, 0, time.UTC))},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, parseEstimate("etd", test.raw, reference))
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Disruption between Leeds and York. More info", plainText(`<p>Disruption between Leeds and York.</p> <a href="x">More   info</a>`))
	assert.Equal(t, "No markup", plainText("No markup"))
}

func cutBetween(t *testing.T, s string, start string, end string) string {
	t.Helper()

	startIndex := strings.Index(s, start)
	endIndex := strings.Index(s, end)
	require.True(t, startIndex >= 0 && endIndex > startIndex)

	return s[:startIndex] + s[endIndex+len(end):]
}
