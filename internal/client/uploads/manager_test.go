package uploads

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/dropvault/internal/client/models"
	"github.com/dmitrijs2005/dropvault/internal/client/notify"
	"github.com/dmitrijs2005/dropvault/internal/common"
	"github.com/dmitrijs2005/dropvault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler fires callbacks only when the test asks it to.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
	// ignoreStop keeps stopped timers firing, emulating callbacks that
	// were already scheduled when Stop was called.
	ignoreStop bool
}

type manualTimer struct {
	fn       func()
	periodic bool
	stopped  atomic.Bool
	fired    atomic.Bool
}

func (t *manualTimer) Stop() { t.stopped.Store(true) }

func (s *manualScheduler) add(fn func(), periodic bool) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{fn: fn, periodic: periodic}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) Timer { return s.add(fn, true) }
func (s *manualScheduler) After(_ time.Duration, fn func()) Timer  { return s.add(fn, false) }

func (s *manualScheduler) due(periodic bool) []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		if t.periodic != periodic {
			continue
		}
		if !periodic && t.fired.Load() {
			continue
		}
		if t.stopped.Load() && !s.ignoreStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Tick fires every live periodic timer once, in creation order.
func (s *manualScheduler) Tick() {
	for _, t := range s.due(true) {
		t.fn()
	}
}

func (s *manualScheduler) TickN(n int) {
	for range n {
		s.Tick()
	}
}

// Settle fires every pending one-shot timer.
func (s *manualScheduler) Settle() {
	for _, t := range s.due(false) {
		t.fired.Store(true)
		t.fn()
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if t.periodic && !t.stopped.Load() {
			n++
		}
	}
	return n
}

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) last() notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("q%d", n)
	}
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *manualScheduler, *recorder) {
	t.Helper()
	s := &manualScheduler{}
	rec := &recorder{}
	base := []Option{
		WithScheduler(s),
		WithIncrement(Sequence(10)),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(counterIDs()),
	}
	m := NewManager(rec, logging.Discard(), append(base, opts...)...)
	t.Cleanup(m.Shutdown)
	return m, s, rec
}

func twoFiles() []models.FileHandle {
	return []models.FileHandle{
		{Name: "a.txt", Size: 1000, MimeType: "text/plain"},
		{Name: "b.png", Size: 2000, MimeType: "image/png"},
	}
}

func TestEnqueue_AppendsReadyEntries(t *testing.T) {
	m, _, rec := newTestManager(t)
	ctx := context.Background()

	added := m.Enqueue(ctx, twoFiles())
	require.Len(t, added, 2)

	q := m.Queue()
	require.Len(t, q, 2)
	for i, f := range q {
		assert.Equal(t, models.StatusReady, f.Status)
		assert.Equal(t, 0, f.ProgressPercent)
		assert.Equal(t, added[i].ID, f.ID)
	}
	assert.NotEqual(t, q[0].ID, q[1].ID)
	assert.Equal(t, "b.png", q[1].Name)
	assert.Equal(t, int64(2000), q[1].SizeBytes)
	assert.Equal(t, "image/png", q[1].MimeType)

	m.Enqueue(ctx, twoFiles()[:1])
	assert.Len(t, m.Queue(), 3)

	require.Equal(t, []notify.Kind{notify.FilesAdded, notify.FilesAdded}, rec.kinds())
	assert.Equal(t, 1, rec.last().Count)
}

func TestEnqueue_EmptyIsSilentNoop(t *testing.T) {
	m, _, rec := newTestManager(t)

	assert.Nil(t, m.Enqueue(context.Background(), nil))
	assert.Empty(t, m.Queue())
	assert.Empty(t, rec.kinds())
}

func TestEnqueue_RegeneratesCollidingIDs(t *testing.T) {
	ids := []string{"dup", "dup", "other"}
	i := 0
	m, _, _ := newTestManager(t, WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))

	m.Enqueue(context.Background(), twoFiles())

	q := m.Queue()
	assert.Equal(t, "dup", q[0].ID)
	assert.Equal(t, "other", q[1].ID)
}

func TestDequeue(t *testing.T) {
	m, s, rec := newTestManager(t)
	ctx := context.Background()
	added := m.Enqueue(ctx, twoFiles())

	assert.False(t, m.Dequeue(ctx, "missing"))
	assert.True(t, m.Dequeue(ctx, added[0].ID))
	assert.False(t, m.Dequeue(ctx, added[0].ID))

	q := m.Queue()
	require.Len(t, q, 1)
	assert.Equal(t, added[1].ID, q[0].ID)
	assert.Equal(t, []notify.Kind{notify.FilesAdded, notify.FileRemoved}, rec.kinds())

	require.NoError(t, m.StartUpload(ctx))
	s.Tick()
	assert.False(t, m.Dequeue(ctx, added[1].ID), "uploading entries cannot be dequeued")
	assert.Len(t, m.Queue(), 1)
}

func TestStartUpload_EmptyQueueRejected(t *testing.T) {
	m, s, rec := newTestManager(t)

	err := m.StartUpload(context.Background())

	require.ErrorIs(t, err, common.ErrEmptyQueue)
	assert.Empty(t, m.Queue())
	assert.False(t, m.Uploading())
	assert.Equal(t, 0, s.live())
	assert.Equal(t, []notify.Kind{notify.UploadRejectedEmptyQueue}, rec.kinds())
}

func TestUpload_TwoFilesScenario(t *testing.T) {
	seed := models.DemoStoredFiles()
	m, s, rec := newTestManager(t, WithStored(seed))
	ctx := context.Background()
	added := m.Enqueue(ctx, twoFiles())

	require.NoError(t, m.StartUpload(ctx))
	assert.True(t, m.Uploading())
	for _, f := range m.Queue() {
		assert.Equal(t, models.StatusUploading, f.Status)
	}
	assert.Equal(t, 2, s.live())

	s.TickN(9)
	for _, f := range m.Queue() {
		assert.Equal(t, 90, f.ProgressPercent)
		assert.Equal(t, models.StatusUploading, f.Status)
	}

	s.Tick()
	for _, f := range m.Queue() {
		assert.Equal(t, 100, f.ProgressPercent)
		assert.Equal(t, models.StatusDone, f.Status)
	}
	assert.Equal(t, 0, s.live())
	assert.Len(t, m.Stored(), len(seed), "nothing is stored before the settle delay")
	assert.True(t, m.Uploading())

	s.Settle()

	assert.Empty(t, m.Queue())
	assert.False(t, m.Uploading())
	stored := m.Stored()
	require.Len(t, stored, len(seed)+2)
	assert.Equal(t, models.StoredFile{ID: added[0].ID, Name: "a.txt", SizeBytes: 1000, DateAdded: testNow}, stored[0])
	assert.Equal(t, models.StoredFile{ID: added[1].ID, Name: "b.png", SizeBytes: 2000, DateAdded: testNow}, stored[1])
	assert.Equal(t, seed[0], stored[2])

	assert.Equal(t, notify.UploadCompleted, rec.last().Kind)
	assert.Equal(t, 2, rec.last().Count)
}

func TestUpload_ProgressMonotonicAndExactlyHundred(t *testing.T) {
	m, s, _ := newTestManager(t, WithIncrement(RandomIncrement))
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))

	prev := map[string]int{}
	for tick := 0; tick < 200 && s.live() > 0; tick++ {
		s.Tick()
		for _, f := range m.Queue() {
			require.GreaterOrEqual(t, f.ProgressPercent, prev[f.ID])
			require.LessOrEqual(t, f.ProgressPercent, 100)
			if f.Status == models.StatusDone {
				require.Equal(t, 100, f.ProgressPercent)
			} else {
				require.Less(t, f.ProgressPercent, 100)
			}
			prev[f.ID] = f.ProgressPercent
		}
	}
	require.Equal(t, 0, s.live())
}

func TestUpload_FinalizesOnlyAfterLastFile(t *testing.T) {
	// Ticks alternate a, b while both run: a gets 50, b gets 20.
	m, s, rec := newTestManager(t, WithIncrement(Sequence(50, 20)))
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))

	s.TickN(2)
	q := m.Queue()
	assert.Equal(t, models.StatusDone, q[0].Status)
	assert.Equal(t, 40, q[1].ProgressPercent)
	assert.Equal(t, 1, s.live())

	s.Settle()
	assert.Len(t, m.Queue(), 2, "no finalization while a file is still uploading")

	s.TickN(3)
	assert.Equal(t, models.StatusDone, m.Queue()[1].Status)

	s.Settle()
	s.Settle()
	assert.Empty(t, m.Queue())
	assert.Len(t, m.Stored(), 2)

	completed := 0
	for _, k := range rec.kinds() {
		if k == notify.UploadCompleted {
			completed++
		}
	}
	assert.Equal(t, 1, completed)
}

func TestUpload_IncrementIsClamped(t *testing.T) {
	m, s, _ := newTestManager(t, WithIncrement(Sequence(0, 250)))
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles()[:1])
	require.NoError(t, m.StartUpload(ctx))

	s.Tick()
	assert.Equal(t, 1, m.Queue()[0].ProgressPercent)

	s.Tick()
	assert.Equal(t, 100, m.Queue()[0].ProgressPercent)
	assert.Equal(t, models.StatusDone, m.Queue()[0].Status)
}

func TestUpload_FilesStartedMidBatchJoinIt(t *testing.T) {
	m, s, _ := newTestManager(t, WithIncrement(Sequence(50)))
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles()[:1])
	require.NoError(t, m.StartUpload(ctx))
	s.TickN(2)

	// First file is done and the batch is settling.
	m.Enqueue(ctx, twoFiles()[1:])
	require.NoError(t, m.StartUpload(ctx))
	s.Settle()
	assert.Len(t, m.Queue(), 2, "settling was aborted by the joining file")

	s.TickN(2)
	s.Settle()
	assert.Empty(t, m.Queue())
	stored := m.Stored()
	require.Len(t, stored, 2)
	assert.Equal(t, "a.txt", stored[0].Name)
	assert.Equal(t, "b.png", stored[1].Name)
}

func TestUpload_ReadyEntriesSurviveFinalization(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles()[:1])
	require.NoError(t, m.StartUpload(ctx))
	m.Enqueue(ctx, twoFiles()[1:])

	s.TickN(10)
	s.Settle()

	q := m.Queue()
	require.Len(t, q, 1)
	assert.Equal(t, "b.png", q[0].Name)
	assert.Equal(t, models.StatusReady, q[0].Status)
	assert.Len(t, m.Stored(), 1)
}

func TestCancelUpload_StopsAllProgress(t *testing.T) {
	m, s, rec := newTestManager(t)
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))
	s.TickN(3)

	require.True(t, m.CancelUpload(ctx))

	assert.False(t, m.Uploading())
	assert.Equal(t, 0, s.live())
	s.TickN(20)
	s.Settle()

	q := m.Queue()
	require.Len(t, q, 2)
	for _, f := range q {
		assert.Equal(t, models.StatusReady, f.Status)
		assert.Equal(t, 0, f.ProgressPercent)
	}
	assert.Empty(t, m.Stored())
	assert.Equal(t, notify.UploadCancelled, rec.last().Kind)
	assert.Equal(t, 2, rec.last().Count)
}

func TestCancelUpload_IgnoresTicksAlreadyInFlight(t *testing.T) {
	m, s, _ := newTestManager(t)
	s.ignoreStop = true
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))
	s.TickN(2)

	require.True(t, m.CancelUpload(ctx))
	s.TickN(5)

	for _, f := range m.Queue() {
		assert.Equal(t, 0, f.ProgressPercent)
		assert.Equal(t, models.StatusReady, f.Status)
	}
}

func TestCancelUpload_DuringSettleAbortsFinalization(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))
	s.TickN(10)

	require.True(t, m.CancelUpload(ctx))
	s.Settle()

	assert.Empty(t, m.Stored())
	for _, f := range m.Queue() {
		assert.Equal(t, models.StatusReady, f.Status)
	}
}

func TestCancelUpload_IdleIsSilentNoop(t *testing.T) {
	m, _, rec := newTestManager(t)
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())

	assert.False(t, m.CancelUpload(ctx))
	assert.Equal(t, []notify.Kind{notify.FilesAdded}, rec.kinds())
}

func TestCancelUpload_ThenRestart(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()
	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))
	s.TickN(5)
	require.True(t, m.CancelUpload(ctx))

	require.NoError(t, m.StartUpload(ctx))
	s.TickN(9)
	assert.Equal(t, 90, m.Queue()[0].ProgressPercent)
	s.Tick()
	s.Settle()

	assert.Empty(t, m.Queue())
	assert.Len(t, m.Stored(), 2)
}

func TestToggleStarAndDeleteStored(t *testing.T) {
	m, _, rec := newTestManager(t, WithStored(models.DemoStoredFiles()))
	ctx := context.Background()

	assert.True(t, m.ToggleStar(ctx, "2"))
	assert.True(t, m.Stored()[1].Starred)
	assert.True(t, m.ToggleStar(ctx, "2"))
	assert.False(t, m.Stored()[1].Starred)

	assert.True(t, m.DeleteStored(ctx, "1"))
	stored := m.Stored()
	require.Len(t, stored, 3)
	assert.Equal(t, "2", stored[0].ID)

	assert.Equal(t, []notify.Kind{notify.FileStarToggled, notify.FileStarToggled, notify.FileDeleted}, rec.kinds())
}

func TestToggleStarAndDelete_UnknownIDIsNoop(t *testing.T) {
	seed := models.DemoStoredFiles()
	m, _, rec := newTestManager(t, WithStored(seed))
	ctx := context.Background()

	assert.False(t, m.ToggleStar(ctx, "nope"))
	assert.False(t, m.DeleteStored(ctx, "nope"))

	assert.Equal(t, seed, m.Stored())
	assert.Empty(t, rec.kinds())
}

func TestSnapshotsAreCopies(t *testing.T) {
	m, _, _ := newTestManager(t, WithStored(models.DemoStoredFiles()))
	m.Enqueue(context.Background(), twoFiles())

	q := m.Queue()
	q[0].ProgressPercent = 77
	st := m.Stored()
	st[0].Starred = false

	assert.Equal(t, 0, m.Queue()[0].ProgressPercent)
	assert.True(t, m.Stored()[0].Starred)
}

func TestManager_WithRealScheduler(t *testing.T) {
	rec := &recorder{}
	m := NewManager(rec, logging.Discard(),
		WithTickInterval(time.Millisecond),
		WithSettleDelay(time.Millisecond),
		WithIncrement(Sequence(25)),
	)
	t.Cleanup(m.Shutdown)
	ctx := context.Background()

	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))

	require.Eventually(t, func() bool { return len(m.Stored()) == 2 }, 5*time.Second, 5*time.Millisecond)
	assert.Empty(t, m.Queue())
	assert.False(t, m.Uploading())
	assert.Eventually(t, func() bool { return rec.last().Kind == notify.UploadCompleted }, time.Second, 5*time.Millisecond)
}

func TestManager_RealSchedulerCancel(t *testing.T) {
	m := NewManager(notify.Nop, logging.Discard(),
		WithTickInterval(time.Millisecond),
		WithIncrement(Sequence(1)),
	)
	t.Cleanup(m.Shutdown)
	ctx := context.Background()

	m.Enqueue(ctx, twoFiles())
	require.NoError(t, m.StartUpload(ctx))
	require.Eventually(t, func() bool { return m.Queue()[0].ProgressPercent > 0 }, 5*time.Second, time.Millisecond)

	require.True(t, m.CancelUpload(ctx))
	time.Sleep(20 * time.Millisecond)

	for _, f := range m.Queue() {
		assert.Equal(t, 0, f.ProgressPercent)
		assert.Equal(t, models.StatusReady, f.Status)
	}
}
