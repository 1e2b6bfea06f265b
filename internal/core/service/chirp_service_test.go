package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirper/chirp-api/internal/core/domain"
	"github.com/chirper/chirp-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubChirpRepo struct {
	byID      map[string]*domain.Chirp
	insertErr error // if set, Insert returns this error
	countErr  error // if set, CountByOwner returns this error
}

func newStubChirpRepo() *stubChirpRepo {
	return &stubChirpRepo{byID: make(map[string]*domain.Chirp)}
}

func (r *stubChirpRepo) ListAll(_ context.Context) ([]*domain.Chirp, error) {
	out := make([]*domain.Chirp, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	// Mirrors the real Mongo sort: created_at descending, stable.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubChirpRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubChirpRepo) Insert(_ context.Context, chirp *domain.Chirp) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *chirp
	r.byID[chirp.ID] = &clone
	return nil
}

func (r *stubChirpRepo) FindByID(_ context.Context, id string) (*domain.Chirp, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrChirpNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubChirpRepo) Update(_ context.Context, id, message string) error {
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrChirpNotFound
	}
	c.Message = message
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubChirpRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrChirpNotFound
	}
	delete(r.byID, id)
	return nil
}

// passthroughTx runs the function directly; transactional semantics are the
// Mongo implementation's concern.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingDispatcher captures enqueued audit events for assertions.
type recordingDispatcher struct {
	events []domain.ChirpEvent
}

func (d *recordingDispatcher) Enqueue(event domain.ChirpEvent) {
	d.events = append(d.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newTestService(repo *stubChirpRepo) (*ChirpService, *recordingDispatcher) {
	dispatcher := &recordingDispatcher{}
	return NewChirpService(repo, passthroughTx{}, dispatcher, discardLogger), dispatcher
}

func seedChirp(repo *stubChirpRepo, id, ownerID, message string, createdAt time.Time) {
	repo.byID[id] = &domain.Chirp{
		ID:        id,
		OwnerID:   ownerID,
		Message:   message,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestChirpService_Create_Success(t *testing.T) {
	repo := newStubChirpRepo()
	svc, dispatcher := newTestService(repo)

	chirp, err := svc.Create(context.Background(), ports.CreateChirpInput{
		ActorID: "user-a",
		Message: "Mon premier chirp !",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chirp.ID == "" {
		t.Fatalf("expected generated id")
	}
	if chirp.OwnerID != "user-a" || chirp.Message != "Mon premier chirp !" {
		t.Fatalf("unexpected chirp: %+v", chirp)
	}

	stored, err := repo.FindByID(context.Background(), chirp.ID)
	if err != nil {
		t.Fatalf("chirp not persisted: %v", err)
	}
	if stored.OwnerID != "user-a" || stored.Message != "Mon premier chirp !" {
		t.Fatalf("unexpected stored chirp: %+v", stored)
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Action != domain.EventCreated {
		t.Fatalf("expected one created audit event, got %+v", dispatcher.events)
	}
}

func TestChirpService_Create_EmptyMessage(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: ""})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "message" {
		t.Fatalf("expected error on field message, got %q", verr.Field)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("store must be unchanged after validation failure")
	}
}

func TestChirpService_Create_MessageTooLong(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), ports.CreateChirpInput{
		ActorID: "user-a",
		Message: strings.Repeat("a", 256),
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "message" {
		t.Fatalf("expected error on field message, got %q", verr.Field)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("store must be unchanged after validation failure")
	}
}

func TestChirpService_Create_MessageAtLimit(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Create(context.Background(), ports.CreateChirpInput{
		ActorID: "user-a",
		Message: strings.Repeat("a", 255),
	}); err != nil {
		t.Fatalf("255-char message must be accepted: %v", err)
	}
}

func TestChirpService_Create_MultibyteLengthCountsRunes(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	// 255 two-byte runes: over 255 bytes but exactly 255 characters.
	if _, err := svc.Create(context.Background(), ports.CreateChirpInput{
		ActorID: "user-a",
		Message: strings.Repeat("é", 255),
	}); err != nil {
		t.Fatalf("255-rune message must be accepted: %v", err)
	}
}

func TestChirpService_Create_WhitespaceOnlyAccepted(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	// "required" rejects only absent/empty input, not whitespace.
	if _, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: "   "}); err != nil {
		t.Fatalf("whitespace-only message must be accepted: %v", err)
	}
}

func TestChirpService_Create_QuotaExceeded(t *testing.T) {
	repo := newStubChirpRepo()
	svc, dispatcher := newTestService(repo)

	for i := 0; i < domain.MaxChirpsPerUser; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: "chirp"}); err != nil {
			t.Fatalf("seeding chirp %d: %v", i, err)
		}
	}

	_, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: "un de trop"})
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	count, _ := repo.CountByOwner(context.Background(), "user-a")
	if count != domain.MaxChirpsPerUser {
		t.Fatalf("expected exactly %d chirps after rejection, got %d", domain.MaxChirpsPerUser, count)
	}
	if len(dispatcher.events) != domain.MaxChirpsPerUser {
		t.Fatalf("no audit event may be emitted for the rejected create")
	}
}

func TestChirpService_Create_CountError(t *testing.T) {
	repo := newStubChirpRepo()
	repo.countErr = errors.New("mongo down")
	svc, dispatcher := newTestService(repo)

	_, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: "chirp"})
	if err == nil || errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if len(dispatcher.events) != 0 {
		t.Fatalf("no audit event may be emitted on store failure")
	}
}

func TestChirpService_Create_InsertError(t *testing.T) {
	repo := newStubChirpRepo()
	repo.insertErr = errors.New("mongo down")
	svc, _ := newTestService(repo)

	if _, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: "chirp"}); err == nil {
		t.Fatalf("expected insert error to propagate")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("store must be unchanged after failed insert")
	}
}

func TestChirpService_Create_QuotaIsPerUser(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	for i := 0; i < domain.MaxChirpsPerUser; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-a", Message: "chirp"}); err != nil {
			t.Fatalf("seeding chirp %d: %v", i, err)
		}
	}

	// A different user is unaffected by user-a's full quota.
	if _, err := svc.Create(context.Background(), ports.CreateChirpInput{ActorID: "user-b", Message: "chirp"}); err != nil {
		t.Fatalf("unexpected error for other user: %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestChirpService_List_NewestFirst(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedChirp(repo, "c1", "user-a", "premier", base)
	seedChirp(repo, "c3", "user-b", "troisième", base.Add(2*time.Minute))
	seedChirp(repo, "c2", "user-a", "deuxième", base.Add(time.Minute))

	chirps, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chirps) != 3 {
		t.Fatalf("expected 3 chirps, got %d", len(chirps))
	}
	if chirps[0].ID != "c3" || chirps[1].ID != "c2" || chirps[2].ID != "c1" {
		t.Fatalf("expected newest-first order, got %s %s %s", chirps[0].ID, chirps[1].ID, chirps[2].ID)
	}
}

// ---------------------------------------------------------------------------
// GetForEdit
// ---------------------------------------------------------------------------

func TestChirpService_GetForEdit_Owner(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "mon chirp", time.Now().UTC())

	chirp, err := svc.GetForEdit(context.Background(), "user-a", "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chirp.Message != "mon chirp" {
		t.Fatalf("unexpected chirp: %+v", chirp)
	}
}

func TestChirpService_GetForEdit_NonOwnerForbidden(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "mon chirp", time.Now().UTC())

	if _, err := svc.GetForEdit(context.Background(), "user-b", "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestChirpService_GetForEdit_NotFound(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.GetForEdit(context.Background(), "user-a", "missing"); !errors.Is(err, domain.ErrChirpNotFound) {
		t.Fatalf("expected ErrChirpNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestChirpService_Update_Success(t *testing.T) {
	repo := newStubChirpRepo()
	svc, dispatcher := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "Ancien message", time.Now().UTC())

	updated, err := svc.Update(context.Background(), ports.UpdateChirpInput{
		ActorID: "user-a",
		ChirpID: "c1",
		Message: "Chirp modifié",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Message != "Chirp modifié" {
		t.Fatalf("expected updated message, got %q", updated.Message)
	}

	stored, _ := repo.FindByID(context.Background(), "c1")
	if stored.Message != "Chirp modifié" {
		t.Fatalf("update not persisted: %q", stored.Message)
	}
	if stored.OwnerID != "user-a" {
		t.Fatalf("owner must never change, got %q", stored.OwnerID)
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Action != domain.EventUpdated {
		t.Fatalf("expected one updated audit event, got %+v", dispatcher.events)
	}
}

func TestChirpService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubChirpRepo()
	svc, dispatcher := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "Chirp de l'utilisateur 1", time.Now().UTC())

	// Repeated denials must never mutate the target.
	for i := 0; i < 3; i++ {
		_, err := svc.Update(context.Background(), ports.UpdateChirpInput{
			ActorID: "user-b",
			ChirpID: "c1",
			Message: "Chirp modifié par utilisateur 2",
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	}

	stored, _ := repo.FindByID(context.Background(), "c1")
	if stored.Message != "Chirp de l'utilisateur 1" {
		t.Fatalf("chirp mutated by denied update: %q", stored.Message)
	}
	if len(dispatcher.events) != 0 {
		t.Fatalf("no audit event may be emitted for a denied update")
	}
}

func TestChirpService_Update_NotFound(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), ports.UpdateChirpInput{ActorID: "user-a", ChirpID: "missing", Message: "x"})
	if !errors.Is(err, domain.ErrChirpNotFound) {
		t.Fatalf("expected ErrChirpNotFound, got %v", err)
	}
}

func TestChirpService_Update_InvalidMessage(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "Ancien message", time.Now().UTC())

	_, err := svc.Update(context.Background(), ports.UpdateChirpInput{
		ActorID: "user-a",
		ChirpID: "c1",
		Message: strings.Repeat("A", 256),
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "message" {
		t.Fatalf("expected ValidationError on message, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), "c1")
	if stored.Message != "Ancien message" {
		t.Fatalf("store must be unchanged after validation failure: %q", stored.Message)
	}
}

func TestChirpService_Update_ForbiddenBeatsValidation(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "intact", time.Now().UTC())

	// A non-owner sending an invalid message gets 403, not a validation error.
	_, err := svc.Update(context.Background(), ports.UpdateChirpInput{ActorID: "user-b", ChirpID: "c1", Message: ""})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Destroy
// ---------------------------------------------------------------------------

func TestChirpService_Destroy_Success(t *testing.T) {
	repo := newStubChirpRepo()
	svc, dispatcher := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "à supprimer", time.Now().UTC())

	if err := svc.Destroy(context.Background(), "user-a", "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "c1"); !errors.Is(err, domain.ErrChirpNotFound) {
		t.Fatalf("chirp must be hard-deleted")
	}
	if len(dispatcher.events) != 1 || dispatcher.events[0].Action != domain.EventDeleted {
		t.Fatalf("expected one deleted audit event, got %+v", dispatcher.events)
	}
}

func TestChirpService_Destroy_NonOwnerForbidden(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)
	seedChirp(repo, "c1", "user-a", "intact", time.Now().UTC())

	if err := svc.Destroy(context.Background(), "user-b", "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "c1"); err != nil {
		t.Fatalf("chirp must survive a denied delete: %v", err)
	}
}

func TestChirpService_Destroy_NotFound(t *testing.T) {
	repo := newStubChirpRepo()
	svc, _ := newTestService(repo)

	if err := svc.Destroy(context.Background(), "user-a", "missing"); !errors.Is(err, domain.ErrChirpNotFound) {
		t.Fatalf("expected ErrChirpNotFound, got %v", err)
	}
}
