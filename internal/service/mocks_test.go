package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/regsvc/user-api/internal/domain"
	"github.com/regsvc/user-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore. Create enforces the email
// and username unique constraints the way the database schema does, so the
// duplicate-race translation path can be exercised without Postgres.
type fakeUserStore struct {
	mu            sync.Mutex
	byID          map[uuid.UUID]*domain.User
	createErr     error // forced Create failure, checked before constraints
	failLastLogin bool
	lastLoginFor  []uuid.UUID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uuid.UUID]*domain.User{}}
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}

	copied := *user
	s.byID[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byID {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byID {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byID {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failLastLogin {
		return store.ErrTransactionFailed
	}
	if _, ok := s.byID[id]; !ok {
		return store.ErrUserNotFound
	}
	s.lastLoginFor = append(s.lastLoginFor, id)
	return nil
}

func (s *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *fakeUserStore) snapshot() map[uuid.UUID]*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[uuid.UUID]*domain.User, len(s.byID))
	for id, user := range s.byID {
		copied := *user
		snap[id] = &copied
	}
	return snap
}

func (s *fakeUserStore) restore(snap map[uuid.UUID]*domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = snap
}

// fakeProfileStore is an in-memory store.ProfileStore.
type fakeProfileStore struct {
	mu        sync.Mutex
	byUserID  map[uuid.UUID]*domain.UserProfile
	createErr error
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byUserID: map[uuid.UUID]*domain.UserProfile{}}
}

var _ store.ProfileStore = (*fakeProfileStore)(nil)

func (s *fakeProfileStore) Create(ctx context.Context, profile *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	copied := *profile
	s.byUserID[profile.UserID] = &copied
	return nil
}

func (s *fakeProfileStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.byUserID[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *fakeProfileStore) WithTx(tx *sql.Tx) store.ProfileStore { return s }

func (s *fakeProfileStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUserID)
}

// fakeTxRunner imitates transactional semantics over the fake stores: on
// error it restores the user and profile maps captured before the callback
// ran, mirroring a rollback.
type fakeTxRunner struct {
	users    *fakeUserStore
	profiles *fakeProfileStore
}

var _ store.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunTx(ctx context.Context, fn store.TxFn) error {
	userSnap := r.users.snapshot()

	r.profiles.mu.Lock()
	profileSnap := make(map[uuid.UUID]*domain.UserProfile, len(r.profiles.byUserID))
	for id, profile := range r.profiles.byUserID {
		copied := *profile
		profileSnap[id] = &copied
	}
	r.profiles.mu.Unlock()

	if err := fn(ctx, nil); err != nil {
		r.users.restore(userSnap)
		r.profiles.mu.Lock()
		r.profiles.byUserID = profileSnap
		r.profiles.mu.Unlock()
		return err
	}
	return nil
}

// recordingNotifier captures welcome notifications. When failing is set it
// drops them silently, imitating a notifier whose delivery backend is down.
type recordingNotifier struct {
	mu       sync.Mutex
	failing  bool
	received []WelcomeNotification
}

var _ Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) NotifyWelcome(ctx context.Context, notification WelcomeNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failing {
		return
	}
	n.received = append(n.received, notification)
}

func (n *recordingNotifier) notifications() []WelcomeNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]WelcomeNotification(nil), n.received...)
}

// allowAllPolicy accepts every password, for tests that target other rules.
type allowAllPolicy struct{}

func (allowAllPolicy) Validate(password string, userAttributes []string) error { return nil }
