package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soundgate/config"
	"soundgate/internal/core"
	"soundgate/internal/database/mongodb/model"
	"soundgate/internal/telemetry"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUsers struct {
	users map[primitive.ObjectID]*model.User
	err   error
	seen  int
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUsers) UpdateLastSeen(context.Context, primitive.ObjectID, time.Time) (int64, error) {
	f.seen++
	return 1, nil
}

type fakeRevocations struct {
	revoked map[string]time.Duration
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[id]
	return ok, nil
}

func (f *fakeRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	f.revoked[id] = ttl
	return nil
}

type fixture struct {
	service     *Service
	users       *fakeUsers
	revocations *fakeRevocations
	active      *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := &config.Configuration{}
	conf.Session.Secret = testSecret
	conf.Session.Issuer = "soundgate"
	conf.Session.TTLMinutes = 60

	active := &model.User{
		ID:          primitive.NewObjectID(),
		Email:       "ada@example.com",
		DisplayName: "Ada",
		Role:        core.RoleUser,
		Status:      core.StatusActive,
	}
	users := &fakeUsers{users: map[primitive.ObjectID]*model.User{active.ID: active}}
	revocations := &fakeRevocations{revoked: map[string]time.Duration{}}
	return &fixture{
		service:     NewService(zap.NewNop(), &telemetry.Trace{}, conf, users, revocations),
		users:       users,
		revocations: revocations,
		active:      active,
	}
}

func requestWithCookie(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	r.AddCookie(&http.Cookie{Name: config.DefaultSessionCookieName, Value: token})
	return r
}

func signToken(t *testing.T, secret string, claims core.SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIssueAndResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, issued, err := f.service.Issue(ctx, f.active.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.seen)
	assert.NotEmpty(t, issued.ID)

	sess, err := f.service.Resolve(ctx, requestWithCookie(token))
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, f.active.ID.Hex(), sess.UserID)
	assert.Equal(t, "ada@example.com", sess.Email)
	assert.Equal(t, "Ada", sess.DisplayName)
	assert.Equal(t, issued.ID, sess.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)

	r := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	sess, err = f.service.Resolve(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestResolveAbsentSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()
	subject := f.active.ID.Hex()

	valid := func(mut func(*core.SessionClaims)) core.SessionClaims {
		c := core.SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   subject,
			Issuer:    "soundgate",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		if mut != nil {
			mut(&c)
		}
		return c
	}

	suspended := &model.User{ID: primitive.NewObjectID(), Role: core.RoleUser, Status: core.StatusSuspended}
	f.users.users[suspended.ID] = suspended
	f.revocations.revoked["jti-revoked"] = time.Hour

	tcs := []struct {
		name string
		req  *http.Request
	}{
		{"no token", httptest.NewRequest(http.MethodGet, "/api/credits", nil)},
		{"garbage token", requestWithCookie("not-a-jwt")},
		{"wrong secret", requestWithCookie(signToken(t, "another-secret-another-secret", valid(nil)))},
		{"expired", requestWithCookie(signToken(t, testSecret, valid(func(c *core.SessionClaims) {
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
		})))},
		{"wrong issuer", requestWithCookie(signToken(t, testSecret, valid(func(c *core.SessionClaims) {
			c.Issuer = "someone-else"
		})))},
		{"revoked", requestWithCookie(signToken(t, testSecret, valid(func(c *core.SessionClaims) {
			c.ID = "jti-revoked"
		})))},
		{"unknown user", requestWithCookie(signToken(t, testSecret, valid(func(c *core.SessionClaims) {
			c.Subject = primitive.NewObjectID().Hex()
		})))},
		{"malformed subject", requestWithCookie(signToken(t, testSecret, valid(func(c *core.SessionClaims) {
			c.Subject = "42"
		})))},
		{"inactive user", requestWithCookie(signToken(t, testSecret, valid(func(c *core.SessionClaims) {
			c.Subject = suspended.ID.Hex()
		})))},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := f.service.Resolve(ctx, tc.req)
			assert.NoError(t, err)
			assert.Nil(t, sess)
		})
	}
}

func TestResolveStoreFailures(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	token, _, err := f.service.Issue(ctx, f.active.ID.Hex())
	require.NoError(t, err)

	f.revocations.err = errors.New("redis: connection refused")
	_, err = f.service.Resolve(ctx, requestWithCookie(token))
	assert.ErrorContains(t, err, "connection refused")

	f.revocations.err = nil
	f.users.err = errors.New("mongo: server selection timeout")
	_, err = f.service.Resolve(ctx, requestWithCookie(token))
	assert.ErrorContains(t, err, "server selection timeout")
}

func TestRevoke(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, issued, err := f.service.Issue(ctx, f.active.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, f.service.Revoke(ctx, token))
	ttl, ok := f.revocations.revoked[issued.ID]
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	sess, err := f.service.Resolve(ctx, requestWithCookie(token))
	require.NoError(t, err)
	assert.Nil(t, sess)

	assert.ErrorIs(t, f.service.Revoke(ctx, "not-a-jwt"), ErrInvalidToken)
}

func TestIssueRejectsInactiveUser(t *testing.T) {
	f := newFixture(t)
	f.active.Status = core.StatusBlocked

	_, _, err := f.service.Issue(context.Background(), f.active.ID.Hex())
	assert.ErrorIs(t, err, ErrUserInactive)

	_, _, err = f.service.Issue(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResolveRecordsInvalidSessionOnSpan(t *testing.T) {
	f := newFixture(t)
	recorder := tracetest.NewSpanRecorder()
	f.service.trace = &telemetry.Trace{
		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)),
		ServiceName:    "test",
	}

	sess, err := f.service.Resolve(context.Background(), requestWithCookie("not-a-jwt"))
	require.NoError(t, err)
	assert.Nil(t, sess)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, string(core.SpanSessionResolve), spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "exception", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String("exception.message", "invalid-session"))
}
