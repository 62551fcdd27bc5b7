package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-management/internal/config"
	"github.com/iliyamo/hostel-management/internal/service"
	"github.com/iliyamo/hostel-management/internal/utils"
)

const testSecret = "test-secret"

func serve(t *testing.T, h echo.HandlerFunc, mw []echo.MiddlewareFunc, auth string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/v1/probe/:id", h, mw...)
	req := httptest.NewRequest(http.MethodGet, "/v1/probe/7?x=1", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthSetsIdentityAndActor(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 3, "warden", "Admin", 5)
	if err != nil {
		t.Fatal(err)
	}
	var gotID int
	var gotActor, gotRole string
	h := func(c echo.Context) error {
		gotID = AdminID(c)
		gotRole, _ = c.Get(CtxRole).(string)
		gotActor = service.ActorFrom(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}
	rec := serve(t, h, []echo.MiddlewareFunc{JWTAuth(testSecret)}, "Bearer "+tok.Token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if gotID != 3 || gotRole != "Admin" || gotActor != "warden" {
		t.Fatalf("id=%d role=%q actor=%q", gotID, gotRole, gotActor)
	}
}

func TestJWTAuthRejects(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	other, _ := utils.NewAccessToken("other-secret", 3, "warden", "Admin", 5)
	expired, _ := utils.NewAccessToken(testSecret, 3, "warden", "Admin", -1)

	for name, auth := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer abc.def.ghi",
		"wrong secret": "Bearer " + other.Token,
		"expired":      "Bearer " + expired.Token,
	} {
		rec := serve(t, ok, []echo.MiddlewareFunc{JWTAuth(testSecret)}, auth)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d", name, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	admin, _ := utils.NewAccessToken(testSecret, 1, "a", "Admin", 5)
	super, _ := utils.NewAccessToken(testSecret, 2, "s", "SuperAdmin", 5)
	chain := []echo.MiddlewareFunc{JWTAuth(testSecret), RequireRole("SuperAdmin")}

	if rec := serve(t, ok, chain, "Bearer "+admin.Token); rec.Code != http.StatusForbidden {
		t.Fatalf("admin status = %d", rec.Code)
	}
	if rec := serve(t, ok, chain, "Bearer "+super.Token); rec.Code != http.StatusNoContent {
		t.Fatalf("super admin status = %d", rec.Code)
	}
}

func TestLimitersAndCachePassThroughWithoutRedis(t *testing.T) {
	hits := 0
	h := func(c echo.Context) error { hits++; return c.String(http.StatusOK, "ok") }
	mw := []echo.MiddlewareFunc{
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil),
		NewLoginLimiter(config.RateLimitConfig{Enabled: true, LoginCapacity: 1}, nil),
		NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil),
		Metrics(),
	}
	for i := 0; i < 3; i++ {
		if rec := serve(t, h, mw, ""); rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	if hits != 3 {
		t.Fatalf("hits = %d", hits)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	status, got, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || got.Get("Content-Type") != "application/json" || string(body) != `{"a":1}` {
		t.Fatalf("decoded %d %v %q %v", status, got, body, ok)
	}
	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0}); ok {
		t.Fatal("short header accepted")
	}
}

func TestCacheKeyDependsOnGenerationAndPath(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "hostel:cache", KeyStrategy: "route_query"}
	e := echo.New()
	ctxFor := func(path string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), httptest.NewRecorder())
		c.SetPath("/v1/rooms/:id")
		return c
	}
	a := cacheKeyFrom(cfg, 1, ctxFor("/v1/rooms/1"))
	if a != cacheKeyFrom(cfg, 1, ctxFor("/v1/rooms/1")) {
		t.Fatal("key not stable")
	}
	if a == cacheKeyFrom(cfg, 2, ctxFor("/v1/rooms/1")) {
		t.Fatal("generation ignored")
	}
	if a == cacheKeyFrom(cfg, 1, ctxFor("/v1/rooms/2")) {
		t.Fatal("path parameter ignored")
	}
}
