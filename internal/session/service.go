package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal/storage"
	"github.com/strenvy/strenvy/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "strenvy-session||"
	tokensSetKey     = "strenvy-sessions"
)

var (
	ErrWrongUsername = errors.New("wrong username")
	ErrWrongPassword = errors.New("wrong password")
	ErrNotLoggedIn   = errors.New("not logged in")
)

type Admin struct {
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type snapshotStore interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Service owns the current user identity and its session tokens. Tokens
// live in redis, the identity snapshot in durable storage.
type Service struct {
	admin       *Admin
	redisClient *redis.Client
	ttl         time.Duration
	store       snapshotStore

	mutex       sync.Mutex
	currentUser *User

	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	// injectable clock for tests
	NowFunc func() time.Time
}

func NewService(
	ctx context.Context,
	admin *Admin,
	ttl time.Duration,
	redisClient *redis.Client,
	store snapshotStore,
) *Service {
	s := &Service{
		admin:          admin,
		ttl:            ttl,
		redisClient:    redisClient,
		store:          store,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}

	var user User
	if err := store.Load(ctx, storage.KeyUser, &user); err == nil {
		s.currentUser = &user
	} else if !errors.Is(err, storage.ErrNoSnapshot) {
		log.Errorf("load user snapshot: %s", err)
	}

	return s
}

// Login starts a standard session: any name/email pair is accepted and
// becomes the current identity.
func (s *Service) Login(ctx context.Context, name, email string) (string, *User, error) {
	user := User{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Role:        RoleStandard,
		Preferences: DefaultPreferences(),
		CreatedAt:   s.NowFunc(),
	}
	return s.startSession(ctx, user)
}

// LoginAsAdmin checks the credentials against the configured admin and
// starts an admin session with the fixed admin identity.
func (s *Service) LoginAsAdmin(ctx context.Context, credentials Credentials) (string, *User, error) {
	if credentials.Username != s.admin.Username {
		return "", nil, ErrWrongUsername
	}
	if !pkg.CheckPasswordHash(credentials.Password, s.admin.PasswordHash) {
		return "", nil, ErrWrongPassword
	}

	user := User{
		ID:          "admin",
		Name:        s.admin.Username,
		Email:       s.admin.Username + "@strenvy.local",
		Role:        RoleAdmin,
		Preferences: DefaultPreferences(),
		CreatedAt:   s.NowFunc(),
	}
	return s.startSession(ctx, user)
}

func (s *Service) startSession(ctx context.Context, user User) (string, *User, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", nil, err
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, s.NowFunc().Unix(), 0).Err(); err != nil {
		return "", nil, err
	}
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.currentUser = &user
	if err := s.store.Save(ctx, storage.KeyUser, user); err != nil {
		return "", nil, err
	}

	log.Debugf("session started for %s [%s]", user.Name, user.Role)
	loggedIn := user
	return token, &loggedIn, nil
}

// Logout invalidates the token and clears the stored identity.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := s.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return false, err
	}

	if err := s.redisClient.Set(ctx, sessionKey, 0, 0).Err(); err != nil {
		return false, err
	}
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.currentUser = nil
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		return false, err
	}

	return createdAtUnix > 0, nil
}

// CurrentUser returns a copy of the current identity, nil when logged out.
func (s *Service) CurrentUser() *User {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}

// IsAdmin reports whether the current identity holds the admin role.
func (s *Service) IsAdmin(_ context.Context) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.currentUser != nil && s.currentUser.IsAdmin()
}

// UpdateProfile changes name and email of the current identity.
func (s *Service) UpdateProfile(ctx context.Context, name, email string) (*User, error) {
	return s.updateCurrentUser(ctx, func(user *User) {
		if name != "" {
			user.Name = name
		}
		if email != "" {
			user.Email = email
		}
	})
}

// UpdatePreferences merges non-nil fields into the preferences record.
func (s *Service) UpdatePreferences(ctx context.Context, patch PreferencesPatch) (*User, error) {
	return s.updateCurrentUser(ctx, func(user *User) {
		if patch.Units != nil {
			user.Preferences.Units = *patch.Units
		}
		if patch.Theme != nil {
			user.Preferences.Theme = *patch.Theme
		}
		if patch.Notifications != nil {
			user.Preferences.Notifications = *patch.Notifications
		}
	})
}

// SetGoals replaces the goals record.
func (s *Service) SetGoals(ctx context.Context, goals Goals) (*User, error) {
	return s.updateCurrentUser(ctx, func(user *User) {
		user.Goals = goals
	})
}

type PreferencesPatch struct {
	Units         *string `json:"units"`
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
}

func (s *Service) updateCurrentUser(ctx context.Context, apply func(*User)) (*User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.currentUser == nil {
		return nil, ErrNotLoggedIn
	}

	apply(s.currentUser)
	if err := s.store.Save(ctx, storage.KeyUser, *s.currentUser); err != nil {
		return nil, err
	}

	user := *s.currentUser
	return &user, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! session service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Warnln("=> session service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> session service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		cmd := s.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			log.Errorf("=> session service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
		if err != nil {
			log.Errorf("=> session service, scan and clean token %s: %s", token, err)
			continue
		}

		if s.NowFunc().Sub(time.Unix(createdAtUnix, 0)) > s.ttl {
			log.Warnf("=>\twill clean the session with token: %s", token)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		sessionKey := sessionKeyPrefix + token
		if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("=> session service, clean token %s: %s", token, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> session service, clean token %s: %s", token, err)
			continue
		}
	}
}
