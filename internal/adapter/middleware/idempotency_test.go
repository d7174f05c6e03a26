package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"sangam-backend/internal/auth"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

// asUser injects an authenticated caller ahead of the idempotency middleware,
// the way JWTAuth does in the real pipeline.
func asUser(id uint64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			SetIdentity(c, auth.Identity{UserID: id, Name: "tester", Role: "secretary"})
			return next(c)
		}
	}
}

func setupEcho(rdb *redis.Client, handler echo.HandlerFunc, withIdentity bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	if withIdentity {
		e.Use(asUser(1))
	}
	e.Use(Idempotency(rdb, 30*time.Second))
	e.POST("/payments", handler)
	e.GET("/payments", handler)
	return e
}

func doReq(t *testing.T, e *echo.Echo, method string, body io.Reader, idemKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/payments", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func Test_BypassOnGET(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}, true)

	rec := doReq(t, e, http.MethodGet, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_NoHeaderPassesThrough(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	}, true)

	doReq(t, e, http.MethodPost, jsonBody(map[string]int{"x": 1}), "")
	doReq(t, e, http.MethodPost, jsonBody(map[string]int{"x": 1}), "")
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2 (no key means no dedup)", calls)
	}
}

func Test_InvalidKeyFormatRejected(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, true)

	rec := doReq(t, e, http.MethodPost, jsonBody(map[string]int{"x": 1}), "not!a!key")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func Test_RequiresAuthenticatedCaller(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, false)

	rec := doReq(t, e, http.MethodPost, jsonBody(map[string]int{"x": 1}), strings.Repeat("a", 32))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func Test_ReplaySameKeySameBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"payment_id": 42})
	}, true)

	key := strings.Repeat("b", 32)
	body := map[string]any{"member_id": 3, "amount": 50}

	first := doReq(t, e, http.MethodPost, jsonBody(body), key)
	if first.Code != http.StatusCreated {
		t.Fatalf("first request: %d", first.Code)
	}

	second := doReq(t, e, http.MethodPost, jsonBody(body), key)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d, want 201", second.Code)
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1 (second must be replayed)", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func Test_SameKeyDifferentBodyConflicts(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	}, true)

	key := strings.Repeat("c", 32)
	doReq(t, e, http.MethodPost, jsonBody(map[string]int{"amount": 50}), key)
	rec := doReq(t, e, http.MethodPost, jsonBody(map[string]int{"amount": 999}), key)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func Test_InProgressConflicts(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, true)

	key := strings.Repeat("d", 32)
	body := map[string]int{"amount": 50}

	// seed a provisional lock as if another request were mid-flight
	b, _ := json.Marshal(body)
	entry := idempEntry{InProgress: true, BodySHA256: bodyHash(b), Key: key, CreatedAt: time.Now().UTC()}
	redisKey := buildKey(http.MethodPost, "/payments", "1", key)
	if ok, err := provisionalSet(context.Background(), rdb, redisKey, entry); err != nil || !ok {
		t.Fatalf("seed lock: ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, jsonBody(body), key)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while in progress, got %d", rec.Code)
	}
}

func Test_KeysAreScopedPerUser(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	handler := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	}

	key := strings.Repeat("e", 32)
	body := map[string]int{"amount": 50}

	// same key, two different authenticated users: both must execute
	for _, uid := range []uint64{1, 2} {
		e := echo.New()
		e.HideBanner = true
		e.Use(asUser(uid))
		e.Use(Idempotency(rdb, 30*time.Second))
		e.POST("/payments", handler)
		rec := doReq(t, e, http.MethodPost, jsonBody(body), key)
		if rec.Code != http.StatusCreated {
			t.Fatalf("user %d: status %d", uid, rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2 (keys scoped per user)", calls)
	}
}
