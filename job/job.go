// Package job is C7, the job coordinator: it accepts an ingest request,
// spawns a background worker that owns the job's mutable state for its
// lifetime, and exposes status and completed results by job id. The job
// table is an alphadose/haxmap.Map, a lock-free concurrent map, since it is
// read and written from many goroutines at once.
package job

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alphadose/haxmap"

	"github.com/ChristianF88/atmsettle/aggregator"
	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/parser"
)

// State is a job's lifecycle stage.
type State string

const (
	Queued     State = "queued"
	Processing State = "processing"
	Completed  State = "completed"
	Error      State = "error"
)

// AreaTag is the three-letter operational region tag appended to output
// filenames.
type AreaTag string

const (
	EPR AreaTag = "EPR"
	PIC AreaTag = "PIC"
	FPR AreaTag = "FPR"
)

// ValidAreaTag reports whether raw names one of the three known area tags.
func ValidAreaTag(raw string) (AreaTag, bool) {
	switch AreaTag(raw) {
	case EPR, PIC, FPR:
		return AreaTag(raw), true
	}
	return "", false
}

// ErrNotFound is returned by Manager.Status and friends for an unknown id.
var ErrNotFound = errors.New("job not found")

// Job is one upload's processing state. ID, ChannelID, AreaTag and
// FileBytes are set once before the worker starts. Every field after mu is
// guarded by mu: the owning worker mutates them directly, and readers
// (the status endpoint) take the same lock rather than read a torn value.
type Job struct {
	ID        string
	ChannelID channel.ID
	AreaTag   AreaTag
	FileBytes []byte

	mu           sync.Mutex
	state        State
	progress     int
	errorMessage string
	groups       []*aggregator.Group
	stats        parser.Stats
}

// snapshot is the read-only view returned by Status.
type snapshot struct {
	State        State
	Progress     int
	ErrorMessage string
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	j.state = s
	j.mu.Unlock()
}

func (j *Job) setProgress(p int) {
	j.mu.Lock()
	j.progress = p
	j.mu.Unlock()
}

func (j *Job) fail(err error) {
	j.mu.Lock()
	j.state = Error
	j.errorMessage = err.Error()
	j.mu.Unlock()
}

func (j *Job) complete(groups []*aggregator.Group, stats parser.Stats) {
	j.mu.Lock()
	j.state = Completed
	j.progress = 100
	j.groups = groups
	j.stats = stats
	j.mu.Unlock()
}

func (j *Job) snapshot() snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return snapshot{State: j.state, Progress: j.progress, ErrorMessage: j.errorMessage}
}

// Groups returns the job's completed groups, or nil if it has not
// completed.
func (j *Job) Groups() []*aggregator.Group {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.groups
}

// Manager owns the shared job table and the worker pool that drains it on
// shutdown.
type Manager struct {
	table *haxmap.Map[string, *Job]
	wg    sync.WaitGroup

	shutdownMu sync.Mutex
	shutdown   bool
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{table: haxmap.New[string, *Job](1 << 10)}
}

// Submit validates channelID and area, stores the job, and starts its
// worker. It returns a plain validation error for an unknown channel or an
// invalid area, surfaced by the HTTP layer as a 400.
func (m *Manager) Submit(fileBytes []byte, channelID channel.ID, area string) (*Job, error) {
	if !channel.Known(channelID) {
		return nil, fmt.Errorf("unknown channel id %q", channelID)
	}
	areaTag, ok := ValidAreaTag(area)
	if !ok {
		return nil, fmt.Errorf("invalid area %q", area)
	}

	m.shutdownMu.Lock()
	if m.shutdown {
		m.shutdownMu.Unlock()
		return nil, errors.New("server is shutting down, not accepting new jobs")
	}
	m.shutdownMu.Unlock()

	j := &Job{
		ID:        newJobID(),
		ChannelID: channelID,
		AreaTag:   areaTag,
		FileBytes: fileBytes,
		state:     Queued,
	}
	m.table.Set(j.ID, j)

	m.wg.Add(1)
	go m.runWorker(j)

	return j, nil
}

func (m *Manager) runWorker(j *Job) {
	defer m.wg.Done()

	j.setState(Processing)

	defer func() {
		if r := recover(); r != nil {
			j.fail(fmt.Errorf("internal error: %v", r))
		}
	}()

	p := parser.New(j.ChannelID)
	if p == nil {
		j.fail(fmt.Errorf("unknown channel id %q", j.ChannelID))
		return
	}

	agg := aggregator.New()
	outcomes := p.Parse(j.FileBytes)
	total := len(outcomes)
	for i, o := range outcomes {
		agg.Ingest(o)
		if total > 0 && i%64 == 0 {
			j.setProgress((i * 100) / total)
		}
	}

	j.complete(agg.Groups(), p.Stats)
}

// Status returns a job's current lifecycle snapshot.
func (m *Manager) Status(id string) (State, int, string, error) {
	j, ok := m.table.Get(id)
	if !ok {
		return "", 0, "", ErrNotFound
	}
	s := j.snapshot()
	return s.State, s.Progress, s.ErrorMessage, nil
}

// FetchResult returns a completed job's groups, or an error if the job is
// unknown or has not completed.
func (m *Manager) FetchResult(id string) ([]*aggregator.Group, error) {
	j, ok := m.table.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	s := j.snapshot()
	switch s.State {
	case Completed:
		return j.Groups(), nil
	case Error:
		return nil, fmt.Errorf("job failed: %s", s.ErrorMessage)
	default:
		return nil, fmt.Errorf("job %s is still %s", id, s.State)
	}
}

// Get returns the raw job record, for callers that need AreaTag and
// ChannelID alongside the groups.
func (m *Manager) Get(id string) (*Job, error) {
	j, ok := m.table.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return j, nil
}

// Shutdown stops accepting new jobs and waits up to timeout for
// outstanding workers to finish, logging (via the returned bool) whether
// any were abandoned.
func (m *Manager) Shutdown(timeout time.Duration) (drained bool) {
	m.shutdownMu.Lock()
	m.shutdown = true
	m.shutdownMu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func newJobID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
