// Package uploads implements the simulated multi-file upload queue.
//
// Selected files are queued as ready. StartUpload moves every ready entry to
// uploading and gives it its own periodic tick that advances the progress by
// a random step until it reaches 100%. Once every file of the batch is done
// and a short settle delay has passed, the batch is finalized: done entries
// leave the queue and are prepended to the stored files in queue order.
//
// All state lives behind a single mutex; timer callbacks run on their own
// goroutines and take the same lock, so each tick is atomic with respect to
// other ticks and to the public operations. A batch epoch invalidates ticks
// that raced with CancelUpload.
package uploads

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/dropvault/internal/client/models"
	"github.com/dmitrijs2005/dropvault/internal/client/notify"
	"github.com/dmitrijs2005/dropvault/internal/common"
	"github.com/dmitrijs2005/dropvault/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultTickInterval = 200 * time.Millisecond
	DefaultSettleDelay  = 500 * time.Millisecond
)

type Manager struct {
	mu sync.Mutex

	queue  []*models.QueuedFile
	stored []models.StoredFile

	// timers holds the live per-file tick handles of the current batch.
	timers    map[string]Timer
	settle    Timer
	remaining int
	active    bool
	// finalizing is the finalize-once guard of the current batch.
	finalizing bool
	epoch      uint64

	scheduler    Scheduler
	increment    IncrementFunc
	now          func() time.Time
	newID        func() string
	tickInterval time.Duration
	settleDelay  time.Duration

	notifier notify.Notifier
	logger   logging.Logger
}

type Option func(*Manager)

func WithScheduler(s Scheduler) Option { return func(m *Manager) { m.scheduler = s } }

func WithIncrement(f IncrementFunc) Option { return func(m *Manager) { m.increment = f } }

func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

func WithIDGenerator(f func() string) Option { return func(m *Manager) { m.newID = f } }

func WithTickInterval(d time.Duration) Option { return func(m *Manager) { m.tickInterval = d } }

func WithSettleDelay(d time.Duration) Option { return func(m *Manager) { m.settleDelay = d } }

// WithStored seeds the stored-files collection.
func WithStored(files []models.StoredFile) Option {
	return func(m *Manager) { m.stored = slices.Clone(files) }
}

func NewManager(n notify.Notifier, l logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		timers:       make(map[string]Timer),
		scheduler:    RealScheduler{},
		increment:    RandomIncrement,
		now:          time.Now,
		newID:        uuid.NewString,
		tickInterval: DefaultTickInterval,
		settleDelay:  DefaultSettleDelay,
		notifier:     n,
		logger:       l.With("component", "uploads"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.tickInterval <= 0 {
		m.tickInterval = DefaultTickInterval
	}
	if m.settleDelay < 0 {
		m.settleDelay = 0
	}
	return m
}

// Enqueue appends one ready entry per handle and returns copies of the new
// entries. An empty selection is a silent no-op.
func (m *Manager) Enqueue(ctx context.Context, handles []models.FileHandle) []models.QueuedFile {
	if len(handles) == 0 {
		return nil
	}

	m.mu.Lock()
	added := make([]models.QueuedFile, 0, len(handles))
	for _, h := range handles {
		f := &models.QueuedFile{
			ID:        m.uniqueID(),
			Name:      h.Name,
			SizeBytes: h.Size,
			MimeType:  h.MimeType,
			Status:    models.StatusReady,
		}
		m.queue = append(m.queue, f)
		added = append(added, *f)
	}
	size := len(m.queue)
	m.mu.Unlock()

	m.logger.Info(ctx, "files queued", "added", len(added), "queue_size", size)
	m.notifier.Notify(ctx, notify.Event{Kind: notify.FilesAdded, Count: len(added)})
	return added
}

// uniqueID must be called with mu held.
func (m *Manager) uniqueID() string {
	for {
		id := m.newID()
		if m.indexOf(id) < 0 {
			return id
		}
	}
}

// indexOf must be called with mu held.
func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.queue, func(f *models.QueuedFile) bool { return f.ID == id })
}

// Dequeue removes a ready entry. Entries that are uploading or done belong to
// a running batch and can only be dropped with CancelUpload; for them, as for
// unknown ids, Dequeue is a silent no-op reporting false.
func (m *Manager) Dequeue(ctx context.Context, id string) bool {
	m.mu.Lock()
	i := m.indexOf(id)
	if i < 0 || m.queue[i].Status != models.StatusReady {
		m.mu.Unlock()
		return false
	}
	m.queue = slices.Delete(m.queue, i, i+1)
	m.mu.Unlock()

	m.logger.Info(ctx, "file removed from queue", "file_id", id)
	m.notifier.Notify(ctx, notify.Event{Kind: notify.FileRemoved, FileID: id})
	return true
}

// StartUpload starts a tick for every ready entry. Entries started while a
// batch is already running join that batch. An empty queue is rejected with
// common.ErrEmptyQueue and leaves the state untouched.
func (m *Manager) StartUpload(ctx context.Context) error {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		m.logger.Warn(ctx, "upload rejected", "reason", common.ErrEmptyQueue)
		m.notifier.Notify(ctx, notify.Event{Kind: notify.UploadRejectedEmptyQueue})
		return common.ErrEmptyQueue
	}

	// Callbacks outlive the caller's context.
	tickCtx := context.WithoutCancel(ctx)
	epoch := m.epoch

	started := 0
	for _, f := range m.queue {
		if f.Status != models.StatusReady {
			continue
		}
		f.Status = models.StatusUploading
		f.ProgressPercent = 0
		id := f.ID
		m.timers[id] = m.scheduler.Every(m.tickInterval, func() { m.advance(tickCtx, epoch, id) })
		started++
	}

	if started > 0 {
		m.remaining += started
		m.active = true
		if m.finalizing {
			// New files joined a batch that was settling.
			m.settle.Stop()
			m.settle = nil
			m.finalizing = false
		}
	}
	remaining := m.remaining
	m.mu.Unlock()

	m.logger.Info(ctx, "upload started", "started", started, "in_flight", remaining, "tick", m.tickInterval)
	return nil
}

// advance applies one tick to file id of the batch identified by epoch.
func (m *Manager) advance(ctx context.Context, epoch uint64, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if epoch != m.epoch {
		return
	}
	t, ok := m.timers[id]
	if !ok {
		return
	}
	i := m.indexOf(id)
	if i < 0 || m.queue[i].Status != models.StatusUploading {
		return
	}
	f := m.queue[i]

	step := m.increment()
	if step < 1 {
		step = 1
	}
	f.ProgressPercent = min(100, f.ProgressPercent+step)
	m.logger.Debug(ctx, "upload progress", "file_id", id, "progress", f.ProgressPercent)

	if f.ProgressPercent < 100 {
		return
	}

	t.Stop()
	delete(m.timers, id)
	f.Status = models.StatusDone
	m.remaining--

	if m.remaining == 0 && !m.finalizing {
		m.finalizing = true
		m.settle = m.scheduler.After(m.settleDelay, func() { m.finalize(ctx, epoch) })
	}
}

// finalize migrates the done entries of the batch identified by epoch.
func (m *Manager) finalize(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	if epoch != m.epoch || !m.finalizing {
		m.mu.Unlock()
		return
	}

	added := m.now()
	fresh := make([]models.StoredFile, 0, len(m.queue))
	rest := make([]*models.QueuedFile, 0)
	for _, f := range m.queue {
		if f.Status != models.StatusDone {
			rest = append(rest, f)
			continue
		}
		fresh = append(fresh, models.StoredFile{
			ID:        f.ID,
			Name:      f.Name,
			SizeBytes: f.SizeBytes,
			DateAdded: added,
		})
	}

	m.stored = append(fresh, m.stored...)
	m.queue = rest
	m.endBatch()
	m.mu.Unlock()

	m.logger.Info(ctx, "upload batch stored", "files", len(fresh))
	m.notifier.Notify(ctx, notify.Event{Kind: notify.UploadCompleted, Count: len(fresh)})
}

// endBatch stops every timer of the current batch and moves to a new epoch.
// It must be called with mu held.
func (m *Manager) endBatch() {
	for _, t := range m.timers {
		t.Stop()
	}
	clear(m.timers)
	if m.settle != nil {
		m.settle.Stop()
		m.settle = nil
	}
	m.remaining = 0
	m.active = false
	m.finalizing = false
	m.epoch++
}

// CancelUpload stops the running batch. Its entries stay queued, reset to
// ready with no progress. Returns false, without notifying, when idle.
func (m *Manager) CancelUpload(ctx context.Context) bool {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return false
	}

	m.endBatch()
	reset := 0
	for _, f := range m.queue {
		if f.Status == models.StatusReady {
			continue
		}
		f.Status = models.StatusReady
		f.ProgressPercent = 0
		reset++
	}
	m.mu.Unlock()

	m.logger.Info(ctx, "upload cancelled", "files", reset)
	m.notifier.Notify(ctx, notify.Event{Kind: notify.UploadCancelled, Count: reset})
	return true
}

// Shutdown stops all timers without notifying. Queue contents are kept.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endBatch()
}

// ToggleStar flips the starred flag of a stored file.
func (m *Manager) ToggleStar(ctx context.Context, id string) bool {
	m.mu.Lock()
	i := m.storedIndex(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.stored[i].Starred = !m.stored[i].Starred
	starred := m.stored[i].Starred
	m.mu.Unlock()

	m.logger.Info(ctx, "file star toggled", "file_id", id, "starred", starred)
	m.notifier.Notify(ctx, notify.Event{Kind: notify.FileStarToggled, FileID: id})
	return true
}

// DeleteStored removes a stored file.
func (m *Manager) DeleteStored(ctx context.Context, id string) bool {
	m.mu.Lock()
	i := m.storedIndex(id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.stored = slices.Delete(m.stored, i, i+1)
	m.mu.Unlock()

	m.logger.Info(ctx, "stored file deleted", "file_id", id)
	m.notifier.Notify(ctx, notify.Event{Kind: notify.FileDeleted, FileID: id})
	return true
}

func (m *Manager) storedIndex(id string) int {
	return slices.IndexFunc(m.stored, func(f models.StoredFile) bool { return f.ID == id })
}

// Queue returns a snapshot of the queue in order.
func (m *Manager) Queue() []models.QueuedFile {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.QueuedFile, len(m.queue))
	for i, f := range m.queue {
		out[i] = *f
	}
	return out
}

// Stored returns a snapshot of the stored files, newest batch first.
func (m *Manager) Stored() []models.StoredFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.stored)
}

// Uploading reports whether a batch is in progress, settle delay included.
func (m *Manager) Uploading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
