package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NewsRefresher is the slice of the news service the scheduler drives.
type NewsRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Status is a snapshot of the scheduler for the status endpoint.
type Status struct {
	Running   bool       `json:"running"`
	Spec      string     `json:"spec"`
	Timezone  string     `json:"timezone"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastAdded int        `json:"last_added"`
	LastError string     `json:"last_error,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
}

// Scheduler runs the daily news refresh on a cron spec. Overlapping runs are
// skipped rather than queued.
type Scheduler struct {
	cron  *cron.Cron
	news  NewsRefresher
	log   *zap.SugaredLogger
	spec  string
	tz    string
	entry cron.EntryID

	mu        sync.Mutex
	running   bool
	lastRun   time.Time
	lastAdded int
	lastErr   error
}

func New(news NewsRefresher, spec, tz string, log *zap.SugaredLogger) (*Scheduler, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		news: news,
		log:  log,
		spec: spec,
		tz:   tz,
		cron: cron.New(cron.WithLocation(loc)),
	}

	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(s.run))
	s.entry, err = s.cron.AddJob(spec, job)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	s.cron.Start()
	s.log.Infow("news scheduler started", "spec", s.spec, "tz", s.tz)
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	s.log.Infow("news scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	added, err := s.news.Refresh(ctx)

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.lastAdded = added
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.log.Errorw("scheduled news refresh failed", "error", err)
		return
	}
	s.log.Infow("scheduled news refresh finished", "added", added)
}

// RunNow triggers a refresh immediately, outside the cron cadence.
func (s *Scheduler) RunNow(ctx context.Context) (int, error) {
	added, err := s.news.Refresh(ctx)

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.lastAdded = added
	s.lastErr = err
	s.mu.Unlock()

	return added, err
}

func (s *Scheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Running:   s.running,
		Spec:      s.spec,
		Timezone:  s.tz,
		LastAdded: s.lastAdded,
	}
	if !s.lastRun.IsZero() {
		t := s.lastRun
		st.LastRun = &t
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.running {
		next := s.cron.Entry(s.entry).Next
		if !next.IsZero() {
			st.NextRun = &next
		}
	}
	return st
}
