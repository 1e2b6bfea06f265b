package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirper/chirp-api/internal/core/domain"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.ChirpEvent
}

func (a *recordingAudit) Record(_ context.Context, event domain.ChirpEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *recordingAudit) snapshot() []domain.ChirpEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ChirpEvent, len(a.events))
	copy(out, a.events)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(4, audit, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.ChirpEvent{ChirpID: "c1", ActorID: "user-a", Action: domain.EventCreated})
	d.Enqueue(domain.ChirpEvent{ChirpID: "c2", ActorID: "user-b", Action: domain.EventCreated})

	waitFor(t, time.Second, func() bool {
		return len(audit.snapshot()) == 2
	})
}

func TestDispatcher_PreservesPerChirpOrder(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(4, audit, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []domain.ChirpEventAction{domain.EventCreated, domain.EventUpdated, domain.EventDeleted}
	for _, action := range actions {
		d.Enqueue(domain.ChirpEvent{ChirpID: "c1", Action: action})
	}

	waitFor(t, time.Second, func() bool {
		return len(audit.snapshot()) == 3
	})

	got := audit.snapshot()
	for i, action := range actions {
		if got[i].Action != action {
			t.Fatalf("per-chirp order broken at %d: expected %s, got %s", i, action, got[i].Action)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingAudit{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
