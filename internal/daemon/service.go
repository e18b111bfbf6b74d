// Package daemon provides a long-running read-only status service over the
// subscription database: it polls the store, publishes spend deltas, and
// serves summary, timeline geometry, and events over a local HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/pipeline"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/store"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/timeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	MonthsBefore int
	MonthsAfter  int
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact spend state for status/event payloads.
type Snapshot struct {
	At              time.Time `json:"at"`
	Entries         int       `json:"entries"`
	Active          int       `json:"active"`
	Ended           int       `json:"ended"`
	MonthlySpend    float64   `json:"monthly_spend"`
	YearlySpend     float64   `json:"yearly_spend"`
	NextRenewal     string    `json:"next_renewal,omitempty"` // YYYY-MM-DD
	NextRenewalName string    `json:"next_renewal_name,omitempty"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Entries      int     `json:"entries"`
	Active       int     `json:"active"`
	Ended        int     `json:"ended"`
	MonthlySpend float64 `json:"monthly_spend"`
	YearlySpend  float64 `json:"yearly_spend"`
}

func (d Delta) isZero() bool {
	return d.Entries == 0 &&
		d.Active == 0 &&
		d.Ended == 0 &&
		d.MonthlySpend == 0 &&
		d.YearlySpend == 0
}

// Event is emitted whenever the spend snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// TimelineEntry is one subscription's bar geometry, served at /v1/timeline.
type TimelineEntry struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Category bool               `json:"category,omitempty"`
	Segments []model.BarSegment `json:"segments,omitempty"`
}

// TimelinePayload is the full /v1/timeline response.
type TimelinePayload struct {
	WindowStart string          `json:"window_start"` // YYYY-MM-DD
	WindowEnd   string          `json:"window_end"`
	Months      int             `json:"months"`
	Entries     []TimelineEntry `json:"entries"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	subsList    []model.Subscription
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8484"
	}
	if cfg.MonthsBefore <= 0 {
		cfg.MonthsBefore = timeline.DefaultMonthsBefore
	}
	if cfg.MonthsAfter < 1 {
		cfg.MonthsAfter = timeline.DefaultMonthsAfter
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/summary", s.handleSummary)
	mux.HandleFunc("/v1/timeline", s.handleTimeline)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	subs, err := s.loadSubscriptions()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		log.Printf("subman daemon poll error: %v", err)
		return
	}

	now := time.Now()
	stats := pipeline.Summarize(subs, now)
	snap := snapshotFromSummary(stats, len(subs), now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.subsList = subs
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "spend_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) loadSubscriptions() ([]model.Subscription, error) {
	st, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = st.Close() }()
	return st.List()
}

func snapshotFromSummary(stats model.SummaryStats, entries int, at time.Time) Snapshot {
	snap := Snapshot{
		At:           at,
		Entries:      entries,
		Active:       stats.ActiveCount,
		Ended:        stats.EndedCount,
		MonthlySpend: stats.MonthlySpend,
		YearlySpend:  stats.YearlySpend,
	}
	if !stats.NextRenewal.IsZero() {
		snap.NextRenewal = stats.NextRenewal.Format("2006-01-02")
		snap.NextRenewalName = stats.NextRenewalName
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Entries:      curr.Entries - prev.Entries,
		Active:       curr.Active - prev.Active,
		Ended:        curr.Ended - prev.Ended,
		MonthlySpend: curr.MonthlySpend - prev.MonthlySpend,
		YearlySpend:  curr.YearlySpend - prev.YearlySpend,
	}
}

// timelinePayload computes the bar geometry for the current records over the
// configured window. Geometry is derived per request, never stored.
func (s *Service) timelinePayload(now time.Time) (TimelinePayload, error) {
	s.mu.RLock()
	subs := make([]model.Subscription, len(s.subsList))
	copy(subs, s.subsList)
	s.mu.RUnlock()

	current := timeline.MonthStart(now)
	start := current.AddDate(0, -s.cfg.MonthsBefore, 0)
	end := current.AddDate(0, s.cfg.MonthsAfter, 0)
	w, err := timeline.ComputeRange(&start, &end, now)
	if err != nil {
		return TimelinePayload{}, err
	}

	payload := TimelinePayload{
		WindowStart: w.Start.Format("2006-01-02"),
		WindowEnd:   w.End.Format("2006-01-02"),
		Months:      len(w.Months),
		Entries:     make([]TimelineEntry, 0, len(subs)),
	}
	for _, sub := range subs {
		entry := TimelineEntry{
			ID:       sub.ID,
			Name:     sub.Name,
			Category: sub.IsCategory(),
		}
		if !sub.IsCategory() {
			entry.Segments = timeline.SplitBar(sub, w, now)
		}
		payload.Entries = append(payload.Entries, entry)
	}
	return payload, nil
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleSummary(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Service) handleTimeline(w http.ResponseWriter, _ *http.Request) {
	payload, err := s.timelinePayload(time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
