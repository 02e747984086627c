package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rzbill/flake/internal/users"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
	"github.com/rzbill/flake/pkg/password"
)

// SuccessMessage is returned with every successful registration.
const SuccessMessage = "User registered successfully"

// IDSource mints unique IDs. *id.Generator satisfies it.
type IDSource interface {
	NextContext(ctx context.Context) (id.ID, error)
}

// Request is a sign-up request.
type Request struct {
	Username string
	Password string
	Fullname string
	Age      int32
	Address  string
}

// Response reports the newly assigned user ID.
type Response struct {
	UserID  id.ID
	Message string
}

// Profile is a stored user without credentials.
type Profile struct {
	UserID    id.ID     `json:"userId"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	Age       int32     `json:"age"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// Options tunes a Service.
type Options struct {
	// Policy is an optional CEL admission expression.
	Policy            string
	MinPasswordLength int
	Logger            logpkg.Logger
	// Now stamps CreatedAt. Defaults to time.Now.
	Now func() time.Time
}

// Service registers and looks up users.
type Service struct {
	ids     IDSource
	store   users.Store
	policy  Policy
	minPass int
	logger  logpkg.Logger
	now     func() time.Time
}

// New returns a Service drawing IDs from ids and persisting to store.
func New(ids IDSource, store users.Store, opts Options) (*Service, error) {
	if ids == nil || store == nil {
		return nil, errors.New("registration: id source and store are required")
	}
	policy, err := CompilePolicy(opts.Policy)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	minPass := opts.MinPasswordLength
	if minPass < 1 {
		minPass = 1
	}
	return &Service{
		ids:     ids,
		store:   store,
		policy:  policy,
		minPass: minPass,
		logger:  logger.With(logpkg.Component("registration")),
		now:     now,
	}, nil
}

// Register creates a user. A taken username fails with ErrAlreadyExists
// before any ID is drawn.
func (s *Service) Register(ctx context.Context, req Request) (Response, error) {
	log := s.logger.WithContext(ctx).With(logpkg.Operation("register"), logpkg.Str("username", req.Username))

	if err := s.validate(req); err != nil {
		return Response{}, err
	}
	ok, err := s.policy.Admit(req)
	if err != nil {
		log.Warn("policy evaluation failed", logpkg.Err(err))
		return Response{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if !ok {
		log.Info("registration rejected by policy", logpkg.Str("policy", s.policy.String()))
		return Response{}, ErrRejected
	}

	exists, err := s.store.Exists(ctx, req.Username)
	if err != nil {
		return Response{}, fmt.Errorf("registration: check username: %w", err)
	}
	if exists {
		return Response{}, ErrAlreadyExists
	}

	userID, err := s.ids.NextContext(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("registration: generate user id: %w", err)
	}
	saltID, err := s.ids.NextContext(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("registration: generate salt: %w", err)
	}
	salt := saltID.String()

	u := users.User{
		ID:           userID,
		Username:     req.Username,
		Fullname:     req.Fullname,
		PasswordHash: password.Hash(req.Password, salt),
		PasswordSalt: salt,
		CreatedAt:    s.now().UTC(),
	}
	info := users.Info{UserID: userID, Age: req.Age, Address: req.Address}
	if err := s.store.Create(ctx, u, info); err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			return Response{}, ErrAlreadyExists
		}
		return Response{}, fmt.Errorf("registration: persist user: %w", err)
	}

	log.Info("user registered", logpkg.Uint64("user_id", uint64(userID)))
	return Response{UserID: userID, Message: SuccessMessage}, nil
}

// Lookup returns the profile for userID.
func (s *Service) Lookup(ctx context.Context, userID id.ID) (Profile, error) {
	u, info, err := s.store.Get(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("registration: lookup %s: %w", userID, err)
	}
	return Profile{
		UserID:    u.ID,
		Username:  u.Username,
		Fullname:  u.Fullname,
		Age:       info.Age,
		Address:   info.Address,
		CreatedAt: u.CreatedAt,
	}, nil
}

// Authenticate checks a username and password against the stored hash and
// returns the user ID on success.
func (s *Service) Authenticate(ctx context.Context, username, secret string) (id.ID, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if errors.Is(err, users.ErrNotFound) {
		return 0, ErrUnauthenticated
	}
	if err != nil {
		return 0, fmt.Errorf("registration: authenticate: %w", err)
	}
	if !password.Verify(secret, u.PasswordSalt, u.PasswordHash) {
		return 0, ErrUnauthenticated
	}
	return u.ID, nil
}

func (s *Service) validate(req Request) error {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return fmt.Errorf("%w: username is required", ErrInvalidArgument)
	case req.Password == "":
		return fmt.Errorf("%w: password is required", ErrInvalidArgument)
	case len(req.Password) < s.minPass:
		return fmt.Errorf("%w: password must be at least %d bytes", ErrInvalidArgument, s.minPass)
	case req.Age < 0:
		return fmt.Errorf("%w: age must not be negative", ErrInvalidArgument)
	}
	return nil
}
