package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cfgpkg "github.com/fedorov/pw44-wsi-conversion/internal/config"
	"github.com/fedorov/pw44-wsi-conversion/internal/runtime"
	pebblestore "github.com/fedorov/pw44-wsi-conversion/internal/storage/pebble"
	logpkg "github.com/fedorov/pw44-wsi-conversion/pkg/log"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	logger, _ := logpkg.ApplyConfig(&logpkg.Config{Level: "error", Format: "text"})
	return New(rt, logger)
}

func doJSON(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	var obj map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &obj)
	return w, obj
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	w, obj := doJSON(t, s, http.MethodGet, "/v1/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if obj["status"] != "ok" {
		t.Fatalf("body: %v", obj)
	}
}

func TestGetOrCreateHandler(t *testing.T) {
	s := newTestServer(t)

	w1, obj1 := doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"specimen","domainKey":"SAMPLE_001"}`)
	if w1.Code != http.StatusOK {
		t.Fatalf("status: %d body %s", w1.Code, w1.Body.String())
	}
	uid1, _ := obj1["uid"].(string)
	if !strings.HasPrefix(uid1, "2.25.") {
		t.Fatalf("uid form: %q", uid1)
	}

	w2, obj2 := doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"specimen","domainKey":"SAMPLE_001"}`)
	if w2.Code != http.StatusOK {
		t.Fatalf("status: %d", w2.Code)
	}
	if obj2["uid"] != uid1 {
		t.Fatalf("uid drifted: %v vs %q", obj2["uid"], uid1)
	}
}

func TestGetOrCreateRejectsEmptyKey(t *testing.T) {
	s := newTestServer(t)
	w, _ := doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"specimen","domainKey":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestGetOrCreateRejectsBadCategory(t *testing.T) {
	s := newTestServer(t)
	w, _ := doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"NOT ALLOWED","domainKey":"x"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestResolveHandler(t *testing.T) {
	s := newTestServer(t)

	w0, _ := doJSON(t, s, http.MethodGet, "/v1/uids/resolve?category=specimen&domainKey=SAMPLE_001", "")
	if w0.Code != http.StatusNotFound {
		t.Fatalf("resolve before create: %d", w0.Code)
	}

	_, created := doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"specimen","domainKey":"SAMPLE_001"}`)
	w1, rec := doJSON(t, s, http.MethodGet, "/v1/uids/resolve?category=specimen&domainKey=SAMPLE_001", "")
	if w1.Code != http.StatusOK {
		t.Fatalf("resolve after create: %d", w1.Code)
	}
	if rec["uid"] != created["uid"] {
		t.Fatalf("resolve mismatch: %v vs %v", rec["uid"], created["uid"])
	}
}

func TestListHandlerWithFilter(t *testing.T) {
	s := newTestServer(t)
	for _, k := range []string{"S_001", "S_002", "T_001"} {
		doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"specimen","domainKey":"`+k+`"}`)
	}

	w, obj := doJSON(t, s, http.MethodGet, "/v1/uids/list?category=specimen&filter="+
		"domain_key.startsWith(%22S_%22)", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d body %s", w.Code, w.Body.String())
	}
	recs, _ := obj["records"].([]any)
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %v", obj)
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"specimen","domainKey":"S_001"}`)
	doJSON(t, s, http.MethodPost, "/v1/uids/get-or-create", `{"category":"study","domainKey":"P01"}`)

	w, obj := doJSON(t, s, http.MethodGet, "/v1/uids/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	cats, _ := obj["categories"].(map[string]any)
	if cats["specimen"] != float64(1) || cats["study"] != float64(1) {
		t.Fatalf("stats: %v", obj)
	}
}

func TestStampHandlerFirstWriteWins(t *testing.T) {
	s := newTestServer(t)

	w1, obj1 := doJSON(t, s, http.MethodPost, "/v1/stamps/get-or-set", `{"category":"study","domainKey":"P01","value":"20240115103000"}`)
	if w1.Code != http.StatusOK {
		t.Fatalf("status: %d", w1.Code)
	}
	w2, obj2 := doJSON(t, s, http.MethodPost, "/v1/stamps/get-or-set", `{"category":"study","domainKey":"P01","value":"29990101000000"}`)
	if w2.Code != http.StatusOK {
		t.Fatalf("status: %d", w2.Code)
	}
	if obj1["value"] != obj2["value"] {
		t.Fatalf("stamp drifted: %v vs %v", obj1["value"], obj2["value"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	w, _ := doJSON(t, s, http.MethodGet, "/v1/uids/get-or-create", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", w.Code)
	}
}
