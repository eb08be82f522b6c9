package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"soundgate/config"
	"soundgate/internal/core"
	"soundgate/internal/database/mongodb/model"
	cErr "soundgate/internal/pkg/error"
	"soundgate/internal/telemetry"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is not active")
	ErrInvalidToken = errors.New("invalid session token")
)

// Session 已登入使用者
type Session struct {
	ID          string
	UserID      string
	Email       string
	DisplayName string
	ExpiresAt   time.Time
}

// Resolver 從請求取出 session；沒有有效 session 時回傳 nil, nil
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (*Session, error)
}

type UserStore interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*model.User, error)
	UpdateLastSeen(ctx context.Context, userID primitive.ObjectID, lastSeen time.Time) (int64, error)
}

type RevocationStore interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
}

type Service struct {
	logger      *zap.Logger
	trace       *telemetry.Trace
	users       UserStore
	revocations RevocationStore
	secret      []byte
	issuer      string
	cookieName  string
	ttl         time.Duration
	now         func() time.Time
}

func NewService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	conf *config.Configuration,
	users UserStore,
	revocations RevocationStore,
) *Service {
	ttl := time.Duration(conf.Session.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = config.DefaultSessionTTLMinutes * time.Minute
	}
	cookieName := conf.Session.CookieName
	if cookieName == "" {
		cookieName = config.DefaultSessionCookieName
	}
	return &Service{
		logger:      logger,
		trace:       trace,
		users:       users,
		revocations: revocations,
		secret:      []byte(conf.Session.Secret),
		issuer:      conf.Session.Issuer,
		cookieName:  cookieName,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Resolve 驗證 cookie 或 Bearer token。
// token 缺少、簽章錯誤、過期、已撤銷、使用者不存在或停用都視為未登入；
// 只有 Redis / Mongo 本身的錯誤才會回傳 error。
func (s *Service) Resolve(ctx context.Context, r *http.Request) (_ *Session, err error) {
	ctx, span, end := s.trace.WithSpan(ctx, string(core.SpanSessionResolve))
	meta := core.TraceSessionMeta{}
	defer func() {
		s.trace.ApplyTraceAttributes(span, meta)
		end(err)
	}()

	token, where := s.tokenFromRequest(r)
	if token == "" {
		meta.Status = "no_token"
		return nil, nil
	}
	meta.Where = where

	claims, err := s.parse(token)
	if err != nil {
		meta.Status = "invalid_token"
		// 不是請求失敗，只在 span 上記錄
		span.RecordError(cErr.InvalidSession(err.Error()))
		s.logger.Debug("session token rejected", zap.String("where", where), zap.Error(err))
		return nil, nil
	}
	meta.SessionID = claims.ID
	meta.UserID = claims.Subject

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		meta.Status = "revoked"
		return nil, nil
	}

	user, err := s.activeUser(ctx, claims.Subject)
	switch {
	case errors.Is(err, ErrUserNotFound):
		meta.Status = "user_not_found"
		return nil, nil
	case errors.Is(err, ErrUserInactive):
		meta.Status = "inactive_user"
		return nil, nil
	case err != nil:
		return nil, err
	}

	meta.Status = "success"
	sess := &Session{
		ID:          claims.ID,
		UserID:      user.ID.Hex(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Issue 為 active 使用者簽發新的 session token
func (s *Service) Issue(ctx context.Context, userID string) (string, *Session, error) {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	jti, err := uuid.NewV7()
	if err != nil {
		jti = uuid.New()
	}
	now := s.now().UTC()
	claims := core.SessionClaims{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   user.ID.Hex(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	if _, err := s.users.UpdateLastSeen(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to update lastSeen", zap.String("userId", user.ID.Hex()), zap.Error(err))
	}
	return signed, &Session{
		ID:          claims.ID,
		UserID:      claims.Subject,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// Revoke 讓 token 在到期前失效；已過期的 token 不需要記錄
func (s *Service) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		var validationErr *jwt.ValidationError
		if !errors.As(err, &validationErr) || validationErr.Errors != jwt.ValidationErrorExpired {
			return ErrInvalidToken
		}
		return nil
	}
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

func (s *Service) tokenFromRequest(r *http.Request) (token, where string) {
	if r == nil {
		return "", ""
	}
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, "cookie"
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:]), "header"
	}
	return "", ""
}

func (s *Service) parse(token string) (*core.SessionClaims, error) {
	claims := &core.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) activeUser(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if !user.Active() {
		return nil, ErrUserInactive
	}
	return user, nil
}
