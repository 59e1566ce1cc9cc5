package syncsvc

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fairwaylink/golf-services/internal/comm"
	"github.com/fairwaylink/golf-services/internal/golf"
	"github.com/fairwaylink/golf-services/internal/scoresvc/models"
)

// ErrTransient marks a delivery failure worth retrying: connection drop,
// timeout, broker unavailable. Transports wrap such failures with it.
var ErrTransient = errors.New("transient delivery failure")

func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Transport delivers queued mutations to the score service.
type Transport interface {
	SubmitScore(ctx context.Context, sub comm.ScoreSubmit) error
	RecordDecision(ctx context.Context, sub comm.DecisionSubmit) error
	AwardBonus(ctx context.Context, sub comm.AwardSubmit) error
}

type cellState struct {
	pending *comm.ScoreSubmit
	entry   *models.ScoreEntry
}

// Coordinator owns the offline mutation queue and the local view of the
// active round. Local edits land in the view immediately and queue for
// delivery; remote entries merge underneath unless a local edit is still
// pending for the same cell.
type Coordinator struct {
	transport   Transport
	queue       *Queue
	maxAttempts int
	baseBackoff time.Duration

	mu       sync.Mutex
	online   bool
	inflight map[Key]bool
	view     map[golf.Cell]*cellState
}

type Option func(*Coordinator)

func WithBackoff(maxAttempts int, base time.Duration) Option {
	return func(c *Coordinator) {
		c.maxAttempts = maxAttempts
		c.baseBackoff = base
	}
}

func NewCoordinator(transport Transport, opts ...Option) *Coordinator {
	c := &Coordinator{
		transport:   transport,
		queue:       NewQueue(),
		maxAttempts: 5,
		baseBackoff: 500 * time.Millisecond,
		inflight:    make(map[Key]bool),
		view:        make(map[golf.Cell]*cellState),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetOnline records connectivity. Going online does not flush by itself;
// the owner calls Flush once the transport is usable again.
func (c *Coordinator) SetOnline(online bool) {
	c.mu.Lock()
	c.online = online
	c.mu.Unlock()
}

func (c *Coordinator) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// SubmitScore records a local score edit. The cell shows the new value
// immediately; the intent queues for delivery and coalesces with any
// unsent edit to the same cell. Offline edits are tagged so the server
// can tell a late arrival from a live one.
func (c *Coordinator) SubmitScore(sub comm.ScoreSubmit) {
	c.mu.Lock()
	if !c.online {
		sub.ClientMeta.SavedOffline = true
	}
	cell := golf.Cell{RoundParticipantID: sub.RoundParticipantId, HoleNumber: sub.HoleNumber}
	st := c.cellLocked(cell)
	st.pending = &sub
	c.mu.Unlock()

	c.queue.Put(&Intent{
		Key: Key{
			ScopeID:    sub.RoundParticipantId,
			HoleNumber: sub.HoleNumber,
			Kind:       KindScore,
		},
		CreatedAt: time.Now().UTC(),
		Score:     &sub,
	})
}

// RecordDecision queues a wolf decision for a hole. Only the latest
// decision per hole counts, so an unsent one is safe to replace.
func (c *Coordinator) RecordDecision(sub comm.DecisionSubmit) {
	c.queue.Put(&Intent{
		Key: Key{
			ScopeID:    sub.CompetitionId,
			HoleNumber: sub.HoleNumber,
			Kind:       KindDecision,
		},
		CreatedAt: time.Now().UTC(),
		Decision:  &sub,
	})
}

// AwardBonus queues a nearest-pin or longest-drive award.
func (c *Coordinator) AwardBonus(sub comm.AwardSubmit) {
	c.queue.Put(&Intent{
		Key: Key{
			ScopeID:    sub.CompetitionId,
			HoleNumber: sub.HoleNumber,
			Kind:       KindAward,
		},
		CreatedAt: time.Now().UTC(),
		Award:     &sub,
	})
}

// Flush delivers queued intents in creation order. Each key gets at most
// one write in flight; a transient failure backs off and retries up to
// maxAttempts, then leaves the intent queued for the next flush. Terminal
// rejections drop the intent and clear its optimistic value.
func (c *Coordinator) Flush(ctx context.Context) error {
	for _, in := range c.queue.Pending() {
		if !c.Online() {
			return ErrTransient
		}
		if !c.claim(in.Key) {
			continue
		}
		err := c.deliver(ctx, in)
		c.release(in.Key)

		switch {
		case err == nil:
			c.queue.Ack(in.Key, in.Revision)
		case IsTransient(err):
			log.Errorf("sync flush stalled on %v: %v", in.Key, err)
			return err
		default:
			log.Errorf("sync intent rejected for %v: %v", in.Key, err)
			c.queue.Drop(in.Key)
			c.clearPending(in)
		}
	}
	return nil
}

func (c *Coordinator) deliver(ctx context.Context, in *Intent) error {
	var err error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(ErrTransient, ctx.Err())
			case <-time.After(c.baseBackoff << uint(attempt-1)):
			}
		}
		err = c.send(ctx, in)
		if err == nil || !IsTransient(err) {
			return err
		}
	}
	return err
}

func (c *Coordinator) send(ctx context.Context, in *Intent) error {
	switch in.Key.Kind {
	case KindScore:
		return c.transport.SubmitScore(ctx, *in.Score)
	case KindDecision:
		return c.transport.RecordDecision(ctx, *in.Decision)
	case KindAward:
		return c.transport.AwardBonus(ctx, *in.Award)
	}
	return errors.New("unknown mutation kind")
}

func (c *Coordinator) claim(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return false
	}
	c.inflight[key] = true
	return true
}

func (c *Coordinator) release(key Key) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}

func (c *Coordinator) clearPending(in *Intent) {
	if in.Key.Kind != KindScore {
		return
	}
	cell := golf.Cell{RoundParticipantID: in.Key.ScopeID, HoleNumber: in.Key.HoleNumber}
	c.mu.Lock()
	if st, ok := c.view[cell]; ok {
		st.pending = nil
	}
	c.mu.Unlock()
}

// MergeRemote folds a realtime score entry into the local view. A cell
// with a local edit still queued keeps showing the local value; the
// remote entry lands underneath and surfaces once the edit is delivered
// or dropped. Otherwise the usual ledger precedence decides.
func (c *Coordinator) MergeRemote(entry models.ScoreEntry) {
	cell := golf.Cell{RoundParticipantID: entry.RoundParticipantID, HoleNumber: entry.HoleNumber}

	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.cellLocked(cell)
	if st.entry == nil || golf.Supersedes(entry, *st.entry) {
		st.entry = &entry
	}
	if st.pending != nil {
		if _, queued := c.queue.Get(Key{
			ScopeID:    cell.RoundParticipantID,
			HoleNumber: cell.HoleNumber,
			Kind:       KindScore,
		}); !queued {
			st.pending = nil
		}
	}
}

// CurrentView reports the strokes to display for a cell and whether the
// value is a local edit still awaiting delivery.
func (c *Coordinator) CurrentView(roundParticipantID int64, holeNumber int) (strokes int, pending bool, ok bool) {
	cell := golf.Cell{RoundParticipantID: roundParticipantID, HoleNumber: holeNumber}

	c.mu.Lock()
	defer c.mu.Unlock()

	st, exists := c.view[cell]
	if !exists {
		return 0, false, false
	}
	if st.pending != nil {
		return st.pending.Strokes, true, true
	}
	if st.entry != nil {
		return st.entry.Strokes, false, true
	}
	return 0, false, false
}

// PendingCount reports how many intents still await delivery.
func (c *Coordinator) PendingCount() int {
	return c.queue.Len()
}

func (c *Coordinator) cellLocked(cell golf.Cell) *cellState {
	st, ok := c.view[cell]
	if !ok {
		st = &cellState{}
		c.view[cell] = st
	}
	return st
}
