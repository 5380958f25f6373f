package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/ldbws"
	"github.com/travigo/railnav/pkg/railmodel"
	"golang.org/x/exp/slices"
)

const DefaultInterval = 30 * time.Second

var ErrNoStation = errors.New("no station is being monitored")

// BoardFetcher is satisfied by ldbws.Client
type BoardFetcher interface {
	GetBoard(ctx context.Context, crs string) (*railmodel.DepartureBoard, error)
}

type State string

const (
	StateIdle     State = "Idle"
	StateActive   State = "Active"
	StateFetching State = "Fetching"
)

// Snapshot is replaced as a whole and never modified after it is published
type Snapshot struct {
	Station   string
	Board     *railmodel.DepartureBoard
	LastError error
	UpdatedAt time.Time
	State     State
}

// Listener is told about every fetch result that gets published
type Listener interface {
	OnBoardUpdated(station string, board *railmodel.DepartureBoard)
	OnError(station string, err error)
}

// Monitor keeps the board for a single station fresh by polling on a fixed interval.
// At most one fetch runs per session and results from a stopped or restarted session are dropped.
type Monitor struct {
	Fetcher  BoardFetcher
	Interval time.Duration
	Now      func() time.Time

	mu        sync.Mutex
	session   uint64
	station   string
	inFlight  bool
	ctx       context.Context
	cancel    context.CancelFunc
	listeners []Listener

	snapshot atomic.Pointer[Snapshot]
}

func New(fetcher BoardFetcher, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}

	m := &Monitor{
		Fetcher:  fetcher,
		Interval: interval,
		Now:      time.Now,
	}
	m.snapshot.Store(&Snapshot{State: StateIdle})

	return m
}

func (m *Monitor) AddListener(listener Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, listener)
}

// Start begins monitoring a station with an immediate fetch. Starting a different station
// replaces the current one, starting the same station again does nothing.
func (m *Monitor) Start(crs string) error {
	crs = strings.ToUpper(strings.TrimSpace(crs))
	if !railmodel.IsValidCRS(crs) {
		return fmt.Errorf("%w: %q", ldbws.ErrInvalidCRS, crs)
	}

	m.mu.Lock()
	if m.station == crs {
		m.mu.Unlock()
		return nil
	}

	m.stopLocked()

	m.session++
	session := m.session
	m.station = crs
	m.ctx, m.cancel = context.WithCancel(context.Background())
	ctx := m.ctx

	m.snapshot.Store(&Snapshot{Station: crs, State: StateActive})
	m.mu.Unlock()

	log.Info().Str("crs", crs).Str("interval", m.Interval.String()).Msg("Started monitoring station")

	m.refresh(session)
	go m.run(ctx, session)

	return nil
}

// Stop cancels the timer and abandons any fetch in flight. The last board stays readable.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.station == "" {
		return
	}

	log.Info().Str("crs", m.station).Msg("Stopped monitoring station")

	m.stopLocked()

	stopped := *m.snapshot.Load()
	stopped.State = StateIdle
	m.snapshot.Store(&stopped)
}

func (m *Monitor) stopLocked() {
	if m.cancel != nil {
		m.cancel()
	}

	m.session++
	m.station = ""
	m.inFlight = false
	m.ctx = nil
	m.cancel = nil
}

// RefreshNow asks for an immediate fetch. It returns false when nothing is being monitored
// or a fetch is already in flight.
func (m *Monitor) RefreshNow() bool {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()

	return m.refresh(session)
}

func (m *Monitor) Snapshot() Snapshot {
	return *m.snapshot.Load()
}

func (m *Monitor) Station() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.station == "" {
		return "", ErrNoStation
	}

	return m.station, nil
}

// Board returns a deep copy of the cached board so callers cannot modify the snapshot
func (m *Monitor) Board() *railmodel.DepartureBoard {
	board := m.snapshot.Load().Board
	if board == nil {
		return nil
	}

	var copied railmodel.DepartureBoard
	if err := copier.CopyWithOption(&copied, board, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy board")
		return nil
	}

	return &copied
}

func (m *Monitor) LastError() error {
	return m.snapshot.Load().LastError
}

func (m *Monitor) run(ctx context.Context, session uint64) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.refresh(session)
		}
	}
}

func (m *Monitor) refresh(session uint64) bool {
	m.mu.Lock()

	if session != m.session || m.station == "" {
		m.mu.Unlock()
		return false
	}
	if m.inFlight {
		log.Debug().Str("crs", m.station).Msg("Fetch already in flight, skipping refresh")
		m.mu.Unlock()
		return false
	}

	m.inFlight = true
	station := m.station
	ctx := m.ctx

	fetching := *m.snapshot.Load()
	fetching.State = StateFetching
	m.snapshot.Store(&fetching)

	m.mu.Unlock()

	go m.fetch(ctx, session, station)

	return true
}

func (m *Monitor) fetch(ctx context.Context, session uint64, station string) {
	board, err := m.Fetcher.GetBoard(ctx, station)

	m.mu.Lock()

	if session != m.session {
		m.mu.Unlock()
		log.Debug().Str("crs", station).Msg("Discarding result of abandoned fetch")
		return
	}

	m.inFlight = false

	next := *m.snapshot.Load()
	next.State = StateActive
	if err != nil {
		next.LastError = err
	} else {
		next.Board = board
		next.LastError = nil
		next.UpdatedAt = m.Now()
	}
	m.snapshot.Store(&next)

	listeners := slices.Clone(m.listeners)

	m.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("crs", station).Msg("Failed to refresh board, keeping previous data")
	} else {
		log.Debug().Str("crs", station).Int("services", len(board.Services)).Msg("Refreshed board")
	}

	for _, listener := range listeners {
		if err != nil {
			listener.OnError(station, err)
		} else {
			listener.OnBoardUpdated(station, board)
		}
	}
}
