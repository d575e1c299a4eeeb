// Package service contains the application services orchestrating
// registration, login and token refresh.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/regsvc/user-api/internal/domain"
	"github.com/regsvc/user-api/internal/platform/logger"
	"github.com/regsvc/user-api/internal/service/auth"
	"github.com/regsvc/user-api/internal/store"
)

// RegisterInput is the candidate registration payload after request parsing.
type RegisterInput struct {
	Email           string
	Username        string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
}

// AccountService orchestrates credential validation, persistence and token
// issuance for the registration and login flows.
type AccountService struct {
	txRunner     store.TxRunner
	userStore    store.UserStore
	profileStore store.ProfileStore
	jwtService   auth.JWTService
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier
	policy       auth.PasswordPolicy
	notifier     Notifier
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService with the given dependencies.
func NewAccountService(
	txRunner store.TxRunner,
	userStore store.UserStore,
	profileStore store.ProfileStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	policy auth.PasswordPolicy,
	notifier Notifier,
	log *slog.Logger,
) *AccountService {
	if log == nil {
		log = slog.Default()
	}

	return &AccountService{
		txRunner:     txRunner,
		userStore:    userStore,
		profileStore: profileStore,
		jwtService:   jwtService,
		hasher:       hasher,
		verifier:     verifier,
		policy:       policy,
		notifier:     notifier,
		logger:       log.With(slog.String("component", "account_service")),
	}
}

// Register validates the payload, persists the user together with its
// profile, mints a token pair and dispatches the welcome notification.
// On validation failure it returns ValidationErrors and nothing is persisted.
func (s *AccountService) Register(
	ctx context.Context,
	input RegisterInput,
) (*domain.User, *auth.TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateRegistration(ctx, input); err != nil {
		return nil, nil, err
	}

	user, err := domain.NewUser(
		input.Email,
		input.Username,
		input.FirstName,
		input.LastName,
		input.Password,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid user data: %w", err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = "" // never carried past hashing

	profile, err := domain.NewUserProfile(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build profile: %w", err)
	}

	// The user and its profile are committed as a single unit. The database
	// unique constraints are the authority on duplicates: a concurrent
	// registration that slipped past the existence pre-checks surfaces here
	// as a duplicate error and is translated back into the same validation
	// error shape the pre-checks produce.
	err = s.txRunner.RunTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.profileStore.WithTx(tx).Create(ctx, profile)
	})
	if err != nil {
		if verrs := duplicateToValidationErrors(err); verrs != nil {
			log.Info("registration lost duplicate race",
				slog.String("username", user.Username))
			return nil, nil, verrs
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.jwtService.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	// Fire-and-forget: the registration outcome never depends on the
	// notification being delivered.
	s.notifier.NotifyWelcome(ctx, WelcomeNotification{
		UserID: user.ID,
		Email:  user.Email,
	})

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return user, pair, nil
}

// Login checks the credentials and mints a fresh token pair.
// A wrong password and an unknown email fail identically with
// ErrInvalidCredentials; an unverified account fails with
// ErrEmailNotVerified.
func (s *AccountService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, *auth.TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if email == "" || password == "" {
		verrs := ValidationErrors{}
		verrs.Add(FieldNonField, MsgMissingCredentials)
		return nil, nil, verrs
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, nil, ErrEmailNotVerified
	}

	// Best effort: a failed timestamp update must not reject a valid login.
	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Warn("failed to update last login",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
	} else {
		user.LastLogin = time.Now().UTC()
	}

	pair, err := s.jwtService.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	return user, pair, nil
}

// Refresh validates the refresh token and mints a fresh pair for its owner.
func (s *AccountService) Refresh(
	ctx context.Context,
	refreshToken string,
) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	// The account must still exist; deleted users cannot refresh.
	if _, err := s.userStore.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	pair, err := s.jwtService.IssueTokenPair(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

// GetUser loads a user by ID for authenticated profile reads.
func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// validateRegistration applies all field rules, accumulating failures so a
// single response names every offending field. A nil return means the
// payload is acceptable; any store error aborts validation as an internal
// failure instead.
func (s *AccountService) validateRegistration(ctx context.Context, input RegisterInput) error {
	verrs := ValidationErrors{}

	switch {
	case input.Email == "":
		verrs.Add(FieldEmail, MsgFieldRequired)
	case !domain.ValidEmailFormat(input.Email):
		verrs.Add(FieldEmail, MsgInvalidEmail)
	default:
		exists, err := s.userStore.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if exists {
			verrs.Add(FieldEmail, MsgEmailExists)
		}
	}

	if input.Username == "" {
		verrs.Add(FieldUsername, MsgFieldRequired)
	} else {
		exists, err := s.userStore.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if exists {
			verrs.Add(FieldUsername, MsgUsernameExists)
		}
	}

	switch {
	case input.Password == "":
		verrs.Add(FieldPassword, MsgFieldRequired)
	case len(input.Password) < domain.MinPasswordLength:
		verrs.Add(FieldPassword, MsgPasswordTooShort)
	case len(input.Password) > domain.MaxPasswordLength:
		verrs.Add(FieldPassword, MsgPasswordTooLong)
	default:
		attrs := []string{input.Email, input.Username, input.FirstName, input.LastName}
		if err := s.policy.Validate(input.Password, attrs); err != nil {
			verrs.Add(FieldPassword, policyMessage(err))
		}
	}

	if input.PasswordConfirm == "" {
		verrs.Add(FieldPasswordConfirm, MsgFieldRequired)
	} else if input.Password != "" && input.Password != input.PasswordConfirm {
		verrs.Add(FieldPassword, MsgPasswordMismatch)
	}

	if verrs.Empty() {
		return nil
	}
	return verrs
}

// duplicateToValidationErrors translates insert-time duplicate-key errors
// into the field-keyed validation error shape. Returns nil for any other
// error.
func duplicateToValidationErrors(err error) ValidationErrors {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		verrs := ValidationErrors{}
		verrs.Add(FieldEmail, MsgEmailExists)
		return verrs
	case errors.Is(err, store.ErrUsernameExists):
		verrs := ValidationErrors{}
		verrs.Add(FieldUsername, MsgUsernameExists)
		return verrs
	default:
		return nil
	}
}

// policyMessage renders a password policy violation as a sentence suitable
// for the field-keyed error map.
func policyMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrPasswordEntirelyNumeric):
		return "This password is entirely numeric."
	case errors.Is(err, auth.ErrPasswordTooSimilar):
		return "The password is too similar to your other personal information."
	default:
		return "This password is too common or too weak."
	}
}
