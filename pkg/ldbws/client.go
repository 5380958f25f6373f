package ldbws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/railnav/pkg/railmodel"
	"github.com/travigo/railnav/pkg/util"
)

const defaultEnrichConcurrency = 4

// ServiceDetailsCache is an optional read-through cache in front of GetServiceDetails
type ServiceDetailsCache interface {
	Get(ctx context.Context, serviceID string) (*railmodel.TrainService, bool)
	Set(ctx context.Context, serviceID string, service *railmodel.TrainService)
}

type Client struct {
	Token     string
	Transport Transport
	Mapper    *Mapper

	NumRows    int
	TimeOffset int
	TimeWindow int

	ServiceCache ServiceDetailsCache

	EnrichConcurrency int
}

func NewClient(token string, transport Transport, now func() time.Time) *Client {
	log.Debug().Str("token", util.RedactSecret(token)).Msg("Created LDBWS client")

	return &Client{
		Token:      token,
		Transport:  transport,
		Mapper:     NewMapper(now),
		NumRows:    DefaultNumRows,
		TimeOffset: DefaultTimeOffset,
		TimeWindow: DefaultTimeWindow,

		EnrichConcurrency: defaultEnrichConcurrency,
	}
}

// GetBoard fetches and maps the arrival board with details for a station
func (c *Client) GetBoard(ctx context.Context, crs string) (*railmodel.DepartureBoard, error) {
	return c.GetBoardWithRequest(ctx, ArrBoardWithDetailsRequest{
		CRS:        crs,
		NumRows:    c.NumRows,
		TimeOffset: c.TimeOffset,
		TimeWindow: c.TimeWindow,
	})
}

func (c *Client) GetBoardWithRequest(ctx context.Context, request ArrBoardWithDetailsRequest) (*railmodel.DepartureBoard, error) {
	request.CRS = strings.ToUpper(strings.TrimSpace(request.CRS))
	if !railmodel.IsValidCRS(request.CRS) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCRS, request.CRS)
	}
	if request.FilterCRS != "" {
		request.FilterCRS = strings.ToUpper(strings.TrimSpace(request.FilterCRS))
		if !railmodel.IsValidCRS(request.FilterCRS) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCRS, request.FilterCRS)
		}
	}

	log.Debug().Str("crs", request.CRS).Int("rows", request.NumRows).Msg("Requesting arrival board")

	body, err := c.call(ctx, request.Fragment(), ActionGetArrBoardWithDetails)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeBoard(body)
	if err != nil {
		return nil, err
	}

	board, err := c.Mapper.MapBoard(decoded)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("crs", board.Station.ID).Int("services", len(board.Services)).Msg("Mapped arrival board")

	return board, nil
}

func (c *Client) GetServiceDetails(ctx context.Context, serviceID string) (*railmodel.TrainService, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, errors.New("service ID must not be empty")
	}

	if c.ServiceCache != nil {
		if service, found := c.ServiceCache.Get(ctx, serviceID); found {
			log.Debug().Str("service", serviceID).Msg("Service details served from cache")
			return service, nil
		}
	}

	body, err := c.call(ctx, ServiceDetailsRequest{ServiceID: serviceID}.Fragment(), ActionGetServiceDetails)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeServiceDetails(body)
	if err != nil {
		return nil, err
	}

	service, err := c.Mapper.MapServiceDetails(decoded, serviceID)
	if err != nil {
		return nil, err
	}

	if c.ServiceCache != nil {
		c.ServiceCache.Set(ctx, serviceID, service)
	}

	return service, nil
}

// EnrichBoard returns a copy of the board where each service is replaced by its full service
// details. Services whose details cannot be fetched are kept as they appeared on the board.
func (c *Client) EnrichBoard(ctx context.Context, board *railmodel.DepartureBoard) *railmodel.DepartureBoard {
	services := make([]railmodel.TrainService, len(board.Services))
	copy(services, board.Services)

	concurrency := c.EnrichConcurrency
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}

	p := pool.New().WithMaxGoroutines(concurrency)
	for index, service := range board.Services {
		p.Go(func() {
			details, err := c.GetServiceDetails(ctx, service.ID)
			if err != nil {
				log.Warn().Err(err).Str("service", service.ID).Msg("Failed to get service details, keeping board row")
				return
			}

			// Keep the board's view of which station we are looking from
			enrichedService := *details
			enrichedService.CurrentStation = service.CurrentStation
			services[index] = enrichedService
		})
	}
	p.Wait()

	enriched := *board
	enriched.Services = services

	return &enriched
}

func (c *Client) call(ctx context.Context, fragment string, soapAction string) ([]byte, error) {
	envelope := BuildEnvelope(fragment, c.Token)

	statusCode, body, err := c.Transport.Send(ctx, envelope, soapAction)
	if err != nil {
		var transportError *TransportError
		if !errors.As(err, &transportError) {
			err = &TransportError{Err: err}
		}

		log.Error().Err(err).Str("action", soapAction).Msg("LDBWS request failed")
		return nil, err
	}

	if err := CheckResponse(statusCode, body); err != nil {
		log.Error().Err(err).Int("status", statusCode).Str("action", soapAction).Msg("LDBWS returned an error")
		return nil, err
	}

	return body, nil
}
