package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/auth"
	"github.com/spec-kit/hr-console/internal/domain"
	"github.com/spec-kit/hr-console/internal/events"
)

const (
	localsKey = "console_session"

	// MaxCookieValueSize keeps the device cookie under the 4096 byte limit browsers enforce
	// for name, value and attributes together.
	MaxCookieValueSize = 3800
)

var (
	// ErrNoSession is returned by Update when the device has no live session.
	ErrNoSession = errors.New("no active session")
	// ErrSessionTooLarge is returned when the device cookie would exceed MaxCookieValueSize.
	ErrSessionTooLarge = errors.New("session does not fit in a cookie")
)

// Options configures the device cookie and the fallback lifetime.
type Options struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

type snapshot struct {
	session domain.Session
	ok      bool
	handle  string
}

// Manager owns the single session record of each device.
type Manager struct {
	store      Store
	codec      *Codec
	tokens     *auth.TokenInspector
	opts       Options
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewManager wires a manager over a store. dispatcher may be nil.
func NewManager(store Store, codec *Codec, opts Options, dispatcher events.Dispatcher, logger *zap.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "hr_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 8 * time.Hour
	}
	return &Manager{
		store:      store,
		codec:      codec,
		tokens:     auth.NewTokenInspector(),
		opts:       opts,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// StoreName reports the backing store.
func (m *Manager) StoreName() string {
	return m.store.Name()
}

// Middleware loads the session snapshot once per request into Locals and the user context.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.load(c)
		return c.Next()
	}
}

// Read returns the device session. Absence, corruption and expiry all read as false.
func (m *Manager) Read(c *fiber.Ctx) (domain.Session, bool) {
	snap := m.load(c)
	return snap.session, snap.ok
}

// Create persists s as the device session, replacing any previous one. The new snapshot is
// visible to the rest of the request as soon as Create returns.
func (m *Manager) Create(c *fiber.Ctx, s domain.Session) (domain.Session, error) {
	prev := m.load(c)
	if prev.handle != "" {
		if err := m.store.Delete(c.UserContext(), prev.handle); err != nil && !errors.Is(err, ErrNotFound) {
			m.logger.Warn("failed to delete replaced session", zap.Error(err))
		}
		if prev.ok {
			m.publish(c.UserContext(), events.EventSessionDestroyed, prev.session,
				events.SessionDestroyedPayload{Reason: events.ReasonReplaced})
		}
	}

	now := m.now()
	if s.IssuedAt.IsZero() {
		s.IssuedAt = now
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = m.tokens.ExpiryOr(s.Token, now, m.opts.TTL)
	}

	handle, err := m.persist(c, "", s)
	if err != nil {
		return domain.Session{}, err
	}
	m.remember(c, snapshot{session: s, ok: true, handle: handle})

	m.logger.Info("session created",
		zap.String("email", s.Email),
		zap.String("role", s.Role.String()),
		zap.String("store", m.store.Name()),
		zap.Time("expires_at", s.ExpiresAt))
	m.publish(c.UserContext(), events.EventSessionCreated, s,
		events.SessionCreatedPayload{Store: m.store.Name(), ExpiresAt: s.ExpiresAt})
	return s, nil
}

// Update replaces the device session with fn(current).
func (m *Manager) Update(c *fiber.Ctx, fn func(domain.Session) domain.Session) (domain.Session, error) {
	snap := m.load(c)
	if !snap.ok {
		return domain.Session{}, ErrNoSession
	}

	next := fn(snap.session)
	if next.IssuedAt.IsZero() {
		next.IssuedAt = snap.session.IssuedAt
	}
	if next.ExpiresAt.IsZero() {
		next.ExpiresAt = snap.session.ExpiresAt
	}

	handle, err := m.persist(c, snap.handle, next)
	if err != nil {
		return domain.Session{}, err
	}
	m.remember(c, snapshot{session: next, ok: true, handle: handle})

	m.publish(c.UserContext(), events.EventSessionUpdated, next, events.SessionUpdatedPayload{
		InitialSetupComplete: next.InitialSetupComplete,
		OnboardingComplete:   next.OnboardingComplete,
	})
	return next, nil
}

// Destroy removes the device session unconditionally. Destroying an absent session is a no-op.
func (m *Manager) Destroy(c *fiber.Ctx, reason events.DestroyReason) error {
	snap := m.load(c)
	handle := snap.handle
	if handle == "" {
		handle = utils.CopyString(c.Cookies(m.opts.CookieName))
	}

	var err error
	if handle != "" {
		if delErr := m.store.Delete(c.UserContext(), handle); delErr != nil && !errors.Is(delErr, ErrNotFound) {
			err = delErr
		}
		m.clearCookie(c)
	}
	m.remember(c, snapshot{})

	if snap.ok {
		m.logger.Info("session destroyed",
			zap.String("email", snap.session.Email),
			zap.String("reason", string(reason)))
		m.publish(c.UserContext(), events.EventSessionDestroyed, snap.session,
			events.SessionDestroyedPayload{Reason: reason})
	}
	return err
}

func (m *Manager) load(c *fiber.Ctx) snapshot {
	if snap, ok := c.Locals(localsKey).(*snapshot); ok && snap != nil {
		return *snap
	}
	snap := m.readDevice(c)
	m.remember(c, snap)
	return snap
}

func (m *Manager) readDevice(c *fiber.Ctx) snapshot {
	// Cookies returns a view into the pooled request buffer.
	handle := utils.CopyString(c.Cookies(m.opts.CookieName))
	if handle == "" {
		return snapshot{}
	}

	ctx := c.UserContext()
	payload, err := m.store.Load(ctx, handle)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Warn("session store unavailable; treating device as signed out", zap.Error(err))
			return snapshot{}
		}
		m.clearCookie(c)
		return snapshot{}
	}

	s, err := m.codec.Decode(payload)
	if err != nil {
		m.logger.Debug("discarding unreadable session", zap.Error(err))
		_ = m.store.Delete(ctx, handle)
		m.clearCookie(c)
		return snapshot{}
	}

	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, handle)
		m.clearCookie(c)
		m.publish(ctx, events.EventSessionDestroyed, s,
			events.SessionDestroyedPayload{Reason: events.ReasonExpired})
		return snapshot{}
	}

	return snapshot{session: s, ok: true, handle: handle}
}

func (m *Manager) persist(c *fiber.Ctx, handle string, s domain.Session) (string, error) {
	payload, err := m.codec.Encode(s)
	if err != nil {
		return "", err
	}

	ttl := s.ExpiresAt.Sub(m.now())
	if ttl < time.Second {
		ttl = time.Second
	}

	handle, err = m.store.Save(c.UserContext(), handle, payload, ttl)
	if err != nil {
		return "", err
	}
	if len(handle) > MaxCookieValueSize {
		m.logger.Error("session too large for the cookie store; set SESSION_STORE to memory, redis or postgres",
			zap.String("email", s.Email),
			zap.Int("bytes", len(handle)),
			zap.Int("limit", MaxCookieValueSize))
		return "", fmt.Errorf("%w: %d bytes", ErrSessionTooLarge, len(handle))
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.opts.CookieName,
		Value:    handle,
		Path:     "/",
		Expires:  s.ExpiresAt,
		Secure:   m.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return handle, nil
}

func (m *Manager) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   m.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *Manager) remember(c *fiber.Ctx, snap snapshot) {
	c.Locals(localsKey, &snap)
	if snap.ok {
		c.SetUserContext(WithSession(c.UserContext(), snap.session))
	} else {
		c.SetUserContext(Detach(c.UserContext()))
	}
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, s domain.Session, payload any) {
	if m.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Email: s.Email, Role: s.Role},
		Timestamp: m.now(),
		Payload:   payload,
	}
	if err := m.dispatcher.Publish(ctx, event); err != nil {
		m.logger.Warn("session event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}
