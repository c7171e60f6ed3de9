package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/ctxutil"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/config"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

var errBackend = errors.New("backend unavailable")

type stubLookups struct {
	err error
}

func (s stubLookups) CustomerExists(context.Context, uint64) (bool, error) {
	return s.err == nil, s.err
}

func (s stubLookups) EmployeePermissions(context.Context, uint64) (employee.PermissionSet, bool, error) {
	return employee.PermissionSet{}, s.err == nil, s.err
}

type stubOrders struct {
	order *order.Order
	err   error
}

func (s stubOrders) FindByID(context.Context, uint64) (*order.Order, error) {
	return s.order, s.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (session.Data, bool, error) {
	return session.Data{}, false, errBackend
}
func (brokenStore) Save(context.Context, string, session.Data) error { return errBackend }
func (brokenStore) Delete(context.Context, string) error             { return errBackend }

type chain struct {
	engine  *gin.Engine
	reached bool
	who     access.Identity
	guarded *order.Order
}

func newChain(store session.Store, lookups stubLookups, orders stubOrders) *chain {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(store, session.Options{CookieName: "SHOPSESSION", TTL: time.Hour})
	engine := access.NewEngine(access.DefaultPolicy("/login", "/api/customer/logout"), lookups, lookups)
	guard := access.NewOrderGuard(orders, "/cart", []string{"/order/"}, "pay")

	ch := &chain{engine: gin.New()}
	ch.engine.Use(RequestIDMiddleware(), SessionMiddleware(sessions), AccessMiddleware(engine, sessions), OrderGuardMiddleware(guard))
	ch.engine.Any("/*path", func(c *gin.Context) {
		ch.reached = true
		ch.who = ctxutil.Identity(c)
		ch.guarded, _ = ctxutil.GuardedOrder(c)
		c.Status(http.StatusOK)
	})
	return ch
}

func (ch *chain) serve(method, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "SHOPSESSION", Value: sid})
	}
	w := httptest.NewRecorder()
	ch.engine.ServeHTTP(w, req)
	return w
}

func customerStore(t *testing.T, id uint64) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	require.NoError(t, store.Save(context.Background(), "sid", session.DataFor(access.Customer(id))))
	return store
}

func TestAccessFailsClosedOnLookupError(t *testing.T) {
	ch := newChain(customerStore(t, 7), stubLookups{err: errBackend}, stubOrders{})

	w := ch.serve(http.MethodGet, "/cart", "sid")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), errBackend.Error())
	assert.False(t, ch.reached)
}

func TestSessionStoreFailureIs500(t *testing.T) {
	ch := newChain(brokenStore{}, stubLookups{}, stubOrders{})

	w := ch.serve(http.MethodGet, "/api/products", "sid")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, ch.reached)

	// no cookie means no store access
	w = ch.serve(http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderGuardFailsClosedOnLookupError(t *testing.T) {
	ch := newChain(customerStore(t, 7), stubLookups{}, stubOrders{err: errBackend})

	w := ch.serve(http.MethodPost, "/order/5", "sid")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, ch.reached)
}

func TestAllowedRequestCarriesIdentityAndOrder(t *testing.T) {
	o := order.RebuildFromDTO(order.ReconstructionDTO{ID: 5, CustomerID: 7, Status: order.StatusPending, Version: 1})
	ch := newChain(customerStore(t, 7), stubLookups{}, stubOrders{order: o})

	w := ch.serve(http.MethodPost, "/order/5", "sid")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, ch.reached)
	id, ok := ch.who.CustomerID()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)
	require.NotNil(t, ch.guarded)
	assert.Equal(t, uint64(5), ch.guarded.ID())

	// excluded action skips the guard
	ch.guarded = nil
	w = ch.serve(http.MethodPost, "/order/5/pay", "sid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, ch.guarded)
}

func TestDenialsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer logger.Replace(zap.New(core))()

	o := order.RebuildFromDTO(order.ReconstructionDTO{ID: 5, CustomerID: 8, Status: order.StatusPending, Version: 1})
	ch := newChain(customerStore(t, 7), stubLookups{}, stubOrders{order: o})

	w := ch.serve(http.MethodGet, "/employee/product/", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	entries := logs.FilterMessage("Access denied").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "unauthorized", fields["outcome"])
	assert.Equal(t, "/employee/product/", fields["path"])

	w = ch.serve(http.MethodGet, "/order/5", "sid")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart?error=Access+denied", w.Header().Get("Location"))

	entries = logs.FilterMessage("Order access denied").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "order owned by another customer", entries[0].ContextMap()["reason"])
}

func TestRateLimitPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = ip + ":5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2"))
}
