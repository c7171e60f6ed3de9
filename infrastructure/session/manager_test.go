package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
)

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	m := NewManager(store, Options{CookieName: "SID", TTL: time.Minute})

	// no cookie
	s, err := m.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || s.ID != "" || !s.Identity().IsAnonymous() {
		t.Fatalf("Load() without cookie = %+v, %v", s, err)
	}

	rec := httptest.NewRecorder()
	started, err := m.Start(ctx, rec, s, access.Customer(12))
	if err != nil {
		t.Fatal(err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "SID" || cookies[0].Value != started.ID || !cookies[0].HttpOnly {
		t.Fatalf("cookie = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := m.Load(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if id, ok := loaded.Identity().CustomerID(); !ok || id != 12 {
		t.Errorf("identity = %s", loaded.Identity())
	}

	// re-login rotates the id
	rotated, err := m.Start(ctx, httptest.NewRecorder(), loaded, access.Employee(3))
	if err != nil {
		t.Fatal(err)
	}
	if rotated.ID == started.ID {
		t.Error("session id not rotated")
	}
	if _, found, _ := store.Get(ctx, started.ID); found {
		t.Error("previous session survived rotation")
	}

	rec = httptest.NewRecorder()
	if err := m.Destroy(ctx, rec, rotated); err != nil {
		t.Fatal(err)
	}
	if rotated.ID != "" {
		t.Error("Destroy did not clear the session")
	}
	if c := rec.Result().Cookies(); len(c) != 1 || c[0].MaxAge >= 0 {
		t.Errorf("cookie not expired: %+v", c)
	}
	if err := m.Destroy(ctx, httptest.NewRecorder(), &Session{}); err != nil {
		t.Errorf("Destroy on empty session: %v", err)
	}
}

func TestManagerUnknownCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(time.Minute), Options{CookieName: "SID", TTL: time.Minute})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "SID", Value: "forged"})

	s, err := m.Load(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "" {
		t.Errorf("unknown cookie produced session %q", s.ID)
	}
}
