package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/errors"
	"github.com/vitalii-holoienko/MediaBase/internal/id"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// accountsCollection holds credential records keyed by normalized email.
const accountsCollection = "accounts"

var emailFolder = cases.Fold()

// normalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// AuthService registers accounts and issues access tokens.
type AuthService struct {
	store  store.DocumentStore
	tokens *auth.TokenService
	logger *slog.Logger
	now    func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(docs store.DocumentStore, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  docs,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an account with an Argon2id password hash.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := normalizeEmail(email)

	_, err := s.store.Get(ctx, accountsCollection, normalized)
	if err == nil {
		return nil, errors.AlreadyExists("an account with this email already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "check account %s", normalized)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, errors.Validation(err.Error())
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate user ID")
	}

	account := &domain.Account{
		ID:           userID,
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Set(ctx, accountsCollection, normalized, accountDocument(account)); err != nil {
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "save account %s", normalized)
	}

	s.logger.Info("account registered", "user_id", userID)
	return account, nil
}

// Login verifies credentials and returns an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	normalized := normalizeEmail(email)

	doc, err := s.store.Get(ctx, accountsCollection, normalized)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, errors.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.CodeUnavailable, "read account %s", normalized)
	}

	account := accountFromDocument(doc)
	if !auth.VerifyPassword(account.PasswordHash, password) {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(account)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.CodeInternal, "issue access token")
	}

	s.logger.Info("user logged in", "user_id", account.ID)
	return token, account, nil
}

func accountDocument(a *domain.Account) store.Document {
	return store.Document{
		"id":           a.ID,
		"email":        a.Email,
		"passwordHash": a.PasswordHash,
		"createdAt":    a.CreatedAt.Format(time.RFC3339Nano),
	}
}

func accountFromDocument(doc store.Document) *domain.Account {
	account := &domain.Account{}
	account.ID, _ = doc.StringField("id")
	account.Email, _ = doc.StringField("email")
	account.PasswordHash, _ = doc.StringField("passwordHash")
	if created, ok := doc.TimeField("createdAt"); ok {
		account.CreatedAt = created
	}
	return account
}
