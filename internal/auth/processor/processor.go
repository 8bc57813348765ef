package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"forms-server/internal/clients/googleoauth"
	"forms-server/internal/observability"
	"forms-server/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrUserNotFound       = errors.New("user not found")
	ErrGoogleAuthDisabled = errors.New("google sign-in is not configured")
	ErrFailedSignIn       = errors.New("failed to sign in")
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrParseJWTToken      = errors.New("failed to parse jwt token")
	ErrExpiredToken       = errors.New("token expired")
	ErrMissingGoogleEmail = errors.New("google account has no verified email")
)

const minPasswordLength = 8

const defaultTokenTTL = 24 * time.Hour

// AuthStore defines the database operations required by AuthProcessor
type AuthStore interface {
	CreateUser(ctx context.Context, params store.CreateUserParams) (store.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (store.User, error)
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (store.User, error)
	LinkGoogleAccount(ctx context.Context, userID uuid.UUID, googleID string) (store.User, error)
}

// GoogleOAuthClient defines the OAuth operations required by AuthProcessor
type GoogleOAuthClient interface {
	GetAccessToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (googleoauth.UserInfo, error)
}

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AuthProcessor struct {
	store  AuthStore
	google GoogleOAuthClient
	config Config
	logger *observability.Logger
}

// New builds the processor. google may be nil when Google sign-in is not configured.
func New(store AuthStore, google GoogleOAuthClient, config Config, logger *observability.Logger) AuthProcessor {
	if config.TokenTTL <= 0 {
		config.TokenTTL = defaultTokenTTL
	}
	return AuthProcessor{
		store:  store,
		google: google,
		config: config,
		logger: logger,
	}
}

// AuthResult is returned by every successful sign-in flow
type AuthResult struct {
	Token string     `json:"token"`
	User  store.User `json:"user"`
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (p *AuthProcessor) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	if !isStrongPassword(params.Password) {
		return AuthResult{}, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		p.logger.Error(ctx, "failed to hash password", err)
		return AuthResult{}, err
	}
	hash := string(hashed)

	user, err := p.store.CreateUser(ctx, store.CreateUserParams{
		Email:        email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: &hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrUniqueViolation) {
			return AuthResult{}, ErrEmailAlreadyExists
		}
		p.logger.Error(ctx, "failed to create user", err)
		return AuthResult{}, err
	}

	return p.issue(ctx, user)
}

func (p *AuthProcessor) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	ctx = observability.WithFields(ctx, observability.Field{Key: "email", Value: email})

	user, err := p.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		p.logger.Error(ctx, "failed to get user by email", err)
		return AuthResult{}, err
	}

	// Google-only accounts have no password to compare against.
	if user.PasswordHash == nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		p.logger.Info(ctx, "password mismatch")
		return AuthResult{}, ErrInvalidCredentials
	}

	return p.issue(ctx, user)
}

// SignInWithGoogle exchanges an authorization code and signs the Google
// account in, creating or linking the local user as needed.
func (p *AuthProcessor) SignInWithGoogle(ctx context.Context, code string) (AuthResult, error) {
	if p.google == nil {
		return AuthResult{}, ErrGoogleAuthDisabled
	}

	token, err := p.google.GetAccessToken(ctx, code)
	if err != nil {
		p.logger.Error(ctx, "failed to get google access token", err)
		return AuthResult{}, ErrFailedSignIn
	}

	info, err := p.google.GetUserInfo(ctx, token)
	if err != nil {
		p.logger.Error(ctx, "failed to get google user info", err)
		return AuthResult{}, ErrFailedSignIn
	}
	if info.Email == "" || !info.EmailVerified {
		return AuthResult{}, ErrMissingGoogleEmail
	}

	email := normalizeEmail(info.Email)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email", Value: email},
		observability.Field{Key: "google_id", Value: info.ID},
	)

	user, err := p.store.GetUserByGoogleID(ctx, info.ID)
	if err == nil {
		return p.issue(ctx, user)
	}
	if !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get user by google id", err)
		return AuthResult{}, err
	}

	user, err = p.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		user, err = p.store.LinkGoogleAccount(ctx, user.ID, info.ID)
		if err != nil {
			p.logger.Error(ctx, "failed to link google account", err)
			return AuthResult{}, err
		}
	case errors.Is(err, store.ErrNotFound):
		googleID := info.ID
		user, err = p.store.CreateUser(ctx, store.CreateUserParams{
			Email:     email,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			GoogleID:  &googleID,
		})
		if err != nil {
			p.logger.Error(ctx, "failed to create google user", err)
			return AuthResult{}, err
		}
		p.logger.Info(ctx, "created user from google sign-in")
	default:
		p.logger.Error(ctx, "failed to get user by email", err)
		return AuthResult{}, err
	}

	return p.issue(ctx, user)
}

func (p *AuthProcessor) GetProfile(ctx context.Context, userID uuid.UUID) (store.User, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID.String()})
	user, err := p.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, ErrUserNotFound
		}
		p.logger.Error(ctx, "failed to get user", err)
		return store.User{}, err
	}
	return user, nil
}

func (p *AuthProcessor) issue(ctx context.Context, user store.User) (AuthResult, error) {
	token, err := p.generateJWTToken(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
