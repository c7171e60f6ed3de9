package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adminapi "github.com/Fubuki233/WebAppDev-Ca-sub001/api/admin"
	authapi "github.com/Fubuki233/WebAppDev-Ca-sub001/api/auth"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/api/health"
	orderapi "github.com/Fubuki233/WebAppDev-Ca-sub001/api/order"
	productapi "github.com/Fubuki233/WebAppDev-Ca-sub001/api/product"
	wishlistapi "github.com/Fubuki233/WebAppDev-Ca-sub001/api/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/application/admin"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/application/auth"
	orderapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/order"
	productapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/product"
	wishlistapp "github.com/Fubuki233/WebAppDev-Ca-sub001/application/wishlist"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/config"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/mocks"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence/retry"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/session"
)

const cookieName = "SHOPSESSION"

type testServer struct {
	t        *testing.T
	engine   *gin.Engine
	repos    *mocks.Repositories
	store    *session.MemoryStore
	admin    *admin.Service
	products *productapp.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "shopfront", Version: "test", Env: "test"},
		Session: config.SessionConfig{CookieName: cookieName, TTL: time.Hour},
		Access:  config.AccessConfig{LoginURL: "/login", CartURL: "/cart", LogoutPath: "/api/customer/logout"},
	}

	repos := mocks.NewRepositories()
	uow := mocks.NewMockUnitOfWork(retry.DefaultConfig)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	authService := auth.NewService(repos.Customers, repos.Employees, repos.Roles, hasher)
	orderService := orderapp.NewService(repos.Orders, repos.Products, uow)
	productService := productapp.NewService(repos.Products, uow)
	wishlistService := wishlistapp.NewService(repos.Wishlists, repos.Products)
	adminService := admin.NewService(repos.Employees, repos.Roles, repos.Permissions, repos.Products, repos.Orders, hasher, uow)
	require.NoError(t, adminService.EnsureBootstrap(context.Background(), admin.BootstrapRequest{
		AdminName: "Root", AdminEmail: "root@shop.local", AdminPassword: "change-me",
	}))

	store := session.NewMemoryStore(cfg.Session.TTL)
	sessions := session.NewManager(store, session.Options{CookieName: cfg.Session.CookieName, TTL: cfg.Session.TTL})

	router := NewRouter(cfg, Dependencies{
		Sessions:   sessions,
		Access:     access.NewEngine(access.DefaultPolicy(cfg.Access.LoginURL, cfg.Access.LogoutPath), authService, authService),
		OrderGuard: access.NewOrderGuard(repos.Orders, cfg.Access.CartURL, []string{"/order/", "/api/orders/"}, "pay", "cancel"),
		Health:     health.NewController(cfg),
		Auth:       authapi.NewController(authService, sessions),
		Orders:     orderapi.NewController(orderService),
		Products:   productapi.NewController(productService),
		Wishlist:   wishlistapi.NewController(wishlistService),
		Admin:      adminapi.NewController(adminService),
	})
	router.SetupRoutes()

	return &testServer{t: t, engine: router.GetEngine(), repos: repos, store: store, admin: adminService, products: productService}
}

func (s *testServer) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response (status %d, body %s)", cookieName, w.Code, w.Body.String())
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) customer(email string) (*http.Cookie, uint64) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/customer/register", map[string]string{
		"name": "Customer " + email, "email": email, "password": "s3cret-pass",
	}, nil)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	id := uint64(decode(s.t, w)["data"].(map[string]any)["id"].(float64))

	w = s.do(http.MethodPost, "/api/customer/login", map[string]string{"email": email, "password": "s3cret-pass"}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(s.t, w), id
}

func (s *testServer) employee(email, password string) *http.Cookie {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/employee/login", map[string]string{"email": email, "password": password}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return sessionCookie(s.t, w)
}

func (s *testServer) clerk(nodes ...string) (*http.Cookie, uint64) {
	s.t.Helper()
	ctx := context.Background()
	role, err := s.admin.CreateRole(ctx, admin.CreateRoleRequest{Name: fmt.Sprintf("Clerk-%d", time.Now().UnixNano()), Permissions: nodes})
	require.NoError(s.t, err)
	emp, err := s.admin.CreateEmployee(ctx, admin.CreateEmployeeRequest{
		Name: "Clerk", Email: fmt.Sprintf("clerk%d@shop.local", role.ID), Password: "warehouse1", RoleID: role.ID,
	})
	require.NoError(s.t, err)
	return s.employee(emp.Email, "warehouse1"), emp.ID
}

func (s *testServer) product(sku string, stock int) uint64 {
	s.t.Helper()
	p, err := s.products.Create(context.Background(), productapp.ProductRequest{SKU: sku, Name: "Item " + sku, Price: 1000, Stock: stock})
	require.NoError(s.t, err)
	return p.ID
}

func (s *testServer) order(cookie *http.Cookie, productID uint64) uint64 {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{{"product_id": productID, "quantity": 1}},
	}, cookie)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return uint64(decode(s.t, w)["data"].(map[string]any)["id"].(float64))
}

func TestBypassRoutesIgnoreSessionState(t *testing.T) {
	s := newTestServer(t)
	s.product("KIT-1", 5)
	stale := &http.Cookie{Name: cookieName, Value: "no-such-session"}
	customerCookie, _ := s.customer("ann@example.com")
	employeeCookie, _ := s.clerk()

	// a customer whose account vanished, and an employee likewise
	goneCustomer, goneCustomerID := s.customer("gone@example.com")
	s.repos.Customers.Delete(goneCustomerID)
	goneEmployee, goneEmployeeID := s.clerk()
	s.repos.Employees.Delete(goneEmployeeID)

	states := map[string]*http.Cookie{
		"no cookie":        nil,
		"stale cookie":     stale,
		"customer":         customerCookie,
		"employee":         employeeCookie,
		"deleted customer": goneCustomer,
		"deleted employee": goneEmployee,
	}
	for name, cookie := range states {
		w := s.do(http.MethodGet, "/api/products", nil, cookie)
		assert.Equal(t, http.StatusOK, w.Code, name)
		assert.Len(t, decode(t, w)["data"], 1, name)
		assert.Empty(t, w.Result().Cookies(), "%s: bypass must not touch the session", name)

		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/health/live", nil, cookie).Code, name)
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/login", nil, cookie).Code, name)
	}

	// the live sessions survived every bypass request
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/customer/me", nil, customerCookie).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/employee/me", nil, employeeCookie).Code)
}

func TestEmployeeGatedWithoutEmployeeIs401(t *testing.T) {
	s := newTestServer(t)
	customerCookie, _ := s.customer("ann@example.com")

	for _, cookie := range []*http.Cookie{nil, customerCookie} {
		for _, path := range []string{"/employee/product/", "/api/admin/summary"} {
			w := s.do(http.MethodGet, path, nil, cookie)
			require.Equal(t, http.StatusUnauthorized, w.Code, path)
			assert.JSONEq(t, `{"success":false,"message":"Employee authentication required"}`, w.Body.String())
		}
	}
}

func TestUnknownEmployeeInvalidatesSession(t *testing.T) {
	s := newTestServer(t)
	cookie, employeeID := s.clerk("PRODUCT_VIEW")
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/employee/product/", nil, cookie).Code)

	s.repos.Employees.Delete(employeeID)

	w := s.do(http.MethodGet, "/employee/product/", nil, cookie)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Employee account not found"}`, w.Body.String())
	assert.Less(t, sessionCookie(t, w).MaxAge, 0, "cookie should be cleared")

	_, found, err := s.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.False(t, found, "session should be deleted from the store")
}

func TestPermissionMappedRoutes(t *testing.T) {
	s := newTestServer(t)
	viewer, _ := s.clerk("PRODUCT_VIEW")
	root := s.employee("root@shop.local", "change-me")
	body := map[string]any{"sku": "KIT-9", "name": "Kettle", "price": 2500, "stock": 3}

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/employee/product/", nil, viewer).Code)

	w := s.do(http.MethodPost, "/employee/product/", body, viewer)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Permission denied: PRODUCT_CREATE required"}`, w.Body.String())

	w = s.do(http.MethodPost, "/employee/product/", body, root)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := uint64(decode(t, w)["data"].(map[string]any)["id"].(float64))

	// numeric ids resolve to the prefix entry
	path := fmt.Sprintf("/employee/product/%d", id)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, path, nil, viewer).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPatch, path, map[string]int{"delta": 2}, root).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, nil, root).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/summary", nil, root).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/summary", nil, viewer).Code)
}

func TestOrderMutationGuard(t *testing.T) {
	s := newTestServer(t)
	productID := s.product("KIT-1", 10)
	owner, _ := s.customer("owner@example.com")
	other, _ := s.customer("other@example.com")
	orderID := s.order(owner, productID)
	path := fmt.Sprintf("/order/%d", orderID)
	items := map[string]any{"items": []map[string]any{{"product_id": productID, "quantity": 2}}}

	w := s.do(http.MethodPost, path, items, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, path, items, other)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cart?error=Access+denied", w.Header().Get("Location"))

	w = s.do(http.MethodGet, path, nil, other)
	assert.Equal(t, "/cart?error=Access+denied", w.Header().Get("Location"))

	// pay, then ship through the employee desk
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, path+"/pay", nil, owner).Code)
	root := s.employee("root@shop.local", "change-me")
	w = s.do(http.MethodPut, fmt.Sprintf("/employee/order/%d", orderID), map[string]string{"status": "Shipped"}, root)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, cookie := range []*http.Cookie{owner, other} {
		w = s.do(http.MethodPost, path, items, cookie)
		require.Equal(t, http.StatusFound, w.Code)
	}
	assert.Equal(t, "/cart?error=Order+cannot+be+modified", s.do(http.MethodPost, path, items, owner).Header().Get("Location"))
	assert.Equal(t, "/cart?error=Order+cannot+be+modified", s.do(http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), items, owner).Header().Get("Location"))

	// reads of a shipped order stay allowed for the owner
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, nil, owner).Code)
}

func TestMissingOrderRedirectsToCart(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.customer("owner@example.com")

	for _, path := range []string{"/order/999", "/order/abc"} {
		w := s.do(http.MethodGet, path, nil, owner)
		require.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/cart?error=Order+not+found", w.Header().Get("Location"))
	}

	w := s.do(http.MethodGet, "/cart?error=Order+not+found", nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order not found", decode(t, w)["message"])
}

func TestCustomerGatedWithoutCustomer(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/orders", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Please log in to continue","redirectTo":"/login?redirect=%2Fapi%2Forders"}`, w.Body.String())

	w = s.do(http.MethodGet, "/cart?x=1", nil, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect=%2Fcart%3Fx%3D1", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/customer/logout", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Already logged out"}`, w.Body.String())

	cookie, customerID := s.customer("ann@example.com")
	w = s.do(http.MethodPost, "/api/customer/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/customer/me", nil, cookie).Code)

	// a session whose customer vanished is invalidated, and logout still answers 200
	cookie, customerID = s.customer("bob@example.com")
	s.repos.Customers.Delete(customerID)
	w = s.do(http.MethodPost, "/api/customer/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Already logged out"}`, w.Body.String())
	_, found, _ := s.store.Get(context.Background(), cookie.Value)
	assert.False(t, found)
}

func TestCustomerFlow(t *testing.T) {
	s := newTestServer(t)
	productID := s.product("KIT-1", 2)
	cookie, _ := s.customer("ann@example.com")

	w := s.do(http.MethodGet, "/api/customer/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ann@example.com", decode(t, w)["data"].(map[string]any)["email"])

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, fmt.Sprintf("/api/wishlist/%d", productID), nil, cookie).Code)
	w = s.do(http.MethodGet, "/api/wishlist", nil, cookie)
	assert.Len(t, decode(t, w)["data"], 1)

	orderID := s.order(cookie, productID)
	s.order(cookie, productID)
	w = s.do(http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{{"product_id": productID, "quantity": 1}},
	}, cookie)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, w)["error"])

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil, cookie).Code)
	w = s.do(http.MethodGet, "/cart", nil, cookie)
	assert.Len(t, decode(t, w)["data"], 1)
}
