package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/railnav/pkg/boardfilter"
	"github.com/travigo/railnav/pkg/ldbws"
	"github.com/travigo/railnav/pkg/monitor"
	"github.com/travigo/railnav/pkg/railmodel"
)

// LDBWSClient is the one-shot side of ldbws.Client used by the routes
type LDBWSClient interface {
	GetBoard(ctx context.Context, crs string) (*railmodel.DepartureBoard, error)
	GetServiceDetails(ctx context.Context, serviceID string) (*railmodel.TrainService, error)
	EnrichBoard(ctx context.Context, board *railmodel.DepartureBoard) *railmodel.DepartureBoard
}

// reduce applies the sheriff groups, detailed fields are only included with ?detailed=true
func reduce(c *fiber.Ctx, value interface{}) (interface{}, error) {
	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	return sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
}

func sendReduced(c *fiber.Ctx, value interface{}) error {
	reduced, err := reduce(c, value)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response",
		})
	}

	return c.JSON(reduced)
}

func sendError(c *fiber.Ctx, err error) error {
	c.Status(statusForError(err))
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusForError(err error) int {
	var fiberError *fiber.Error
	var serverError *ldbws.ServerError
	var transportError *ldbws.TransportError
	var decodeError *ldbws.DecodeError
	var mappingError *ldbws.MappingError

	switch {
	case errors.As(err, &fiberError):
		return fiberError.Code
	case errors.Is(err, ldbws.ErrInvalidCRS):
		return fiber.StatusBadRequest
	case errors.Is(err, monitor.ErrNoStation):
		return fiber.StatusNotFound
	case errors.As(err, &transportError):
		return fiber.StatusGatewayTimeout
	case errors.As(err, &serverError), errors.As(err, &decodeError), errors.As(err, &mappingError):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// applyFilter narrows the board with the ?filter= expression if there is one
func applyFilter(c *fiber.Ctx, board *railmodel.DepartureBoard) (*railmodel.DepartureBoard, error) {
	expression := c.Query("filter")
	if expression == "" {
		return board, nil
	}

	filter, err := boardfilter.Compile(expression)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	filtered, err := filter.Apply(board)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return filtered, nil
}
