package boardfilter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/railnav/pkg/railmodel"
	"github.com/travigo/railnav/pkg/util"
	"golang.org/x/exp/slices"
)

// Environment is what a filter expression can see of a service, for example
// `isDelayed && destination == "LDS"` or `"HUD" in callsAt`
type Environment struct {
	ID           string   `expr:"id"`
	Origin       string   `expr:"origin"`
	Destination  string   `expr:"destination"`
	Operator     string   `expr:"operator"`
	OperatorCode string   `expr:"operatorCode"`
	Platform     string   `expr:"platform"`
	Status       string   `expr:"status"`
	IsCancelled  bool     `expr:"isCancelled"`
	IsDelayed    bool     `expr:"isDelayed"`
	DelayMinutes int      `expr:"delayMinutes"`
	CallsAt      []string `expr:"callsAt"`
}

func NewEnvironment(service railmodel.TrainService) Environment {
	environment := Environment{
		ID:           service.ID,
		Origin:       service.Origin.ID,
		Destination:  service.Destination.ID,
		Operator:     service.Operator.Name,
		OperatorCode: service.Operator.Code,
		Status:       string(service.Status),
		IsCancelled:  service.IsCancelled,
		IsDelayed:    service.IsDelayed,
	}

	if service.Platform != nil {
		environment.Platform = *service.Platform
	}
	if service.ScheduledDeparture != nil && service.EstimatedDeparture != nil {
		environment.DelayMinutes = int(service.EstimatedDeparture.Sub(*service.ScheduledDeparture).Minutes())
	}

	for _, callingPoint := range service.CallingPoints {
		environment.CallsAt = append(environment.CallsAt, callingPoint.Station.ID)
	}

	return environment
}

type Filter struct {
	Expression string

	program *vm.Program
}

func Compile(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.Env(Environment{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}

	return &Filter{Expression: expression, program: program}, nil
}

func (f *Filter) Match(service railmodel.TrainService) (bool, error) {
	output, err := expr.Run(f.program, NewEnvironment(service))
	if err != nil {
		return false, err
	}

	return output.(bool), nil
}

// Apply returns a copy of the board holding only the matching services
func (f *Filter) Apply(board *railmodel.DepartureBoard) (*railmodel.DepartureBoard, error) {
	services := slices.Clone(board.Services)

	var matchErr error
	util.InPlaceFilter(&services, func(service railmodel.TrainService) bool {
		if matchErr != nil {
			return false
		}

		matched, err := f.Match(service)
		if err != nil {
			matchErr = fmt.Errorf("filter %q on service %s: %w", f.Expression, service.ID, err)
			return false
		}

		return matched
	})
	if matchErr != nil {
		return nil, matchErr
	}

	filtered := *board
	filtered.Services = services

	return &filtered, nil
}
