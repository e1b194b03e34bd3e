package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bilguun/peergram/auth"
	"github.com/bilguun/peergram/cache"
)

// MediaStore is the binary-object collaborator: given a payload and a
// name, it returns a public URL.
type MediaStore interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

const profileCacheTTL = 30 * time.Second

// AccountService owns registration, authentication, and profile
// operations. Edges and counters are out of its reach; the engagement
// service owns those.
type AccountService struct {
	users    UserStore
	hasher   *auth.Hasher
	tokens   *auth.TokenService
	media    MediaStore
	profiles cache.Store
	newID    func() string
	now      func() time.Time
}

// AccountServiceConfig wires the dependencies for AccountService. Media
// and Profiles are optional; the rest are required.
type AccountServiceConfig struct {
	Users    UserStore
	Hasher   *auth.Hasher
	Tokens   *auth.TokenService
	Media    MediaStore
	Profiles cache.Store
	IDFunc   func() string
	Now      func() time.Time
}

func NewAccountService(cfg AccountServiceConfig) (*AccountService, error) {
	if cfg.Users == nil || cfg.Hasher == nil || cfg.Tokens == nil {
		return nil, errors.New("social: account service requires users, hasher, and tokens")
	}
	svc := &AccountService{
		users:    cfg.Users,
		hasher:   cfg.Hasher,
		tokens:   cfg.Tokens,
		media:    cfg.Media,
		profiles: cfg.Profiles,
		newID:    cfg.IDFunc,
		now:      cfg.Now,
	}
	if svc.newID == nil {
		svc.newID = uuid.NewString
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// SignUpInput carries the raw registration fields.
type SignUpInput struct {
	Credential string
	Password   string
	FullName   string
	Handle     string
}

// SignUp classifies the credential, checks password strength, hashes, and
// persists. Duplicate handle/email/phone surface as conflict sentinels
// from the store; validation happens before any storage access.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	switch {
	case in.Credential == "":
		return User{}, fmt.Errorf("%w: email or phone required", ErrInvalidInput)
	case in.Password == "":
		return User{}, fmt.Errorf("%w: password required", ErrInvalidInput)
	case in.FullName == "":
		return User{}, fmt.Errorf("%w: fullname required", ErrInvalidInput)
	case in.Handle == "":
		return User{}, fmt.Errorf("%w: username required", ErrInvalidInput)
	}

	if err := auth.CheckPasswordStrength(in.Password); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	id := auth.ClassifyIdentifier(in.Credential)
	if id.Kind == auth.IdentifierUnrecognized {
		return User{}, ErrInvalidCredential
	}

	digest, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return User{}, fmt.Errorf("social: hash password: %w", err)
	}

	now := s.now()
	user := User{
		ID:             s.newID(),
		FullName:       in.FullName,
		Handle:         in.Handle,
		PasswordDigest: digest,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	switch id.Kind {
	case auth.IdentifierPhone:
		user.Phone = id.Value
	case auth.IdentifierEmail:
		user.Email = id.Value
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// SignIn matches the credential against email, phone, or handle, verifies
// the password, and issues a session token.
func (s *AccountService) SignIn(ctx context.Context, credential, password string) (User, string, error) {
	if credential == "" || password == "" {
		return User{}, "", fmt.Errorf("%w: credential and password required", ErrInvalidInput)
	}

	user, err := s.users.GetUserByCredential(ctx, credential)
	if err != nil {
		return User{}, "", err
	}

	if !s.hasher.Verify(ctx, password, user.PasswordDigest) {
		return User{}, "", ErrIncorrectPassword
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return User{}, "", fmt.Errorf("social: issue token: %w", err)
	}
	return user, token, nil
}

// ChangePassword re-checks the current credential before accepting a new
// password.
func (s *AccountService) ChangePassword(ctx context.Context, credential, password, newPassword string) error {
	if err := auth.CheckPasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	user, err := s.users.GetUserByCredential(ctx, credential)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(ctx, password, user.PasswordDigest) {
		return ErrIncorrectPassword
	}

	digest, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("social: hash password: %w", err)
	}
	if err := s.users.UpdatePasswordDigest(ctx, user.ID, digest); err != nil {
		return err
	}
	s.evictProfile(ctx, user.Handle)
	return nil
}

// ChangeEmail re-checks the credential, validates the new address, and
// relies on the store's uniqueness constraint for the final word.
func (s *AccountService) ChangeEmail(ctx context.Context, credential, password, newEmail string) error {
	if auth.ClassifyIdentifier(newEmail).Kind != auth.IdentifierEmail {
		return fmt.Errorf("%w: new email is malformed", ErrInvalidInput)
	}

	user, err := s.users.GetUserByCredential(ctx, credential)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(ctx, password, user.PasswordDigest) {
		return ErrIncorrectPassword
	}

	if err := s.users.UpdateEmail(ctx, user.ID, newEmail); err != nil {
		return err
	}
	s.evictProfile(ctx, user.Handle)
	return nil
}

// Profile fetches a user's public record by handle, through the profile
// cache when one is configured. Mutations here and in the feed service
// evict the entries they invalidate.
func (s *AccountService) Profile(ctx context.Context, handle string) (User, error) {
	if handle == "" {
		return User{}, fmt.Errorf("%w: username required", ErrInvalidInput)
	}

	if s.profiles != nil {
		if payload, err := s.profiles.Get(ctx, profileKey(handle)); err == nil {
			var user User
			if err := json.Unmarshal(payload, &user); err == nil {
				return user, nil
			}
		}
	}

	user, err := s.users.GetUserByHandle(ctx, handle)
	if err != nil {
		return User{}, err
	}

	if s.profiles != nil {
		if payload, err := json.Marshal(user); err == nil {
			_ = s.profiles.Set(ctx, profileKey(handle), payload, profileCacheTTL)
		}
	}
	return user, nil
}

// UpdateProfileImage stores the payload with the media collaborator and
// patches the user's profile URL with the returned location.
func (s *AccountService) UpdateProfileImage(ctx context.Context, userID, filename string, data []byte) (string, error) {
	if s.media == nil {
		return "", errors.New("social: media store not configured")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.media.Upload(ctx, filename, data)
	if err != nil {
		return "", fmt.Errorf("social: media upload: %w", err)
	}

	if err := s.users.UpdateProfileURL(ctx, user.ID, url); err != nil {
		return "", err
	}
	s.evictProfile(ctx, user.Handle)
	return url, nil
}

// ResolvePrincipal implements auth.PrincipalResolver: the gateway's single
// storage lookup per request.
func (s *AccountService) ResolvePrincipal(ctx context.Context, id string) (auth.Principal, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, auth.ErrPrincipalGone
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) evictProfile(ctx context.Context, handle string) {
	if s.profiles != nil && handle != "" {
		_ = s.profiles.Delete(ctx, profileKey(handle))
	}
}

func profileKey(handle string) string { return "profile:" + handle }
