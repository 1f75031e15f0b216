package cms_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel_allocation/internal/adapters/cms"
	"hotel_allocation/internal/domain"
)

func docs(v ...map[string]any) map[string]any { return map[string]any{"docs": v} }

func TestClient_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tenant-constraints" || r.URL.Query().Get("tenant") != "acme" || r.URL.Query().Get("enabled") != "true" {
			t.Errorf("unexpected request: %s", r.URL)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_ = json.NewEncoder(w).Encode(docs(
				map[string]any{"code": "ROOM_TYPE_MATCH", "kind": "HARD", "enabled": true},
				map[string]any{"code": "BUDGET_CONSTRAINT", "kind": "SOFT", "weight": -75.0, "params": map[string]any{"bufferPercent": 15.0}},
			))
		}
	}))
	defer ts.Close()

	cl, err := cms.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.GetTenantConstraints(ctx, "acme")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
	if len(got) != 2 || got[0].TenantID != "acme" || got[1].Weight == nil || *got[1].Weight != -75 {
		t.Fatalf("unexpected configs: %+v", got)
	}
	if got[1].Params["bufferPercent"] != 15.0 {
		t.Fatalf("params lost: %+v", got[1].Params)
	}
}

func TestClient_404IsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := cms.New(ts.URL, "test-key", 100)
	got, err := cl.GetTenantConstraints(context.Background(), "acme")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %+v %v", got, err)
	}
}

func TestClient_UnauthorizedPropagates(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := cms.New(ts.URL, "test-key", 100)
	_, err := cl.GetTenantConstraints(context.Background(), "acme")
	if !errors.Is(err, cms.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if hits != 1 {
		t.Fatalf("401 must not be retried, got %d calls", hits)
	}
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cl, _ := cms.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := cl.GetTenantConstraints(ctx, "acme"); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if hits != 4 {
		t.Fatalf("expected 4 attempts, got %d", hits)
	}
}

func TestClient_RequiresKey(t *testing.T) {
	if _, err := cms.New("http://cms", "", 1); err == nil {
		t.Fatalf("expected error without key")
	}
}

func TestMapConstraint_Aliases(t *testing.T) {
	cfg, err := cms.MapConstraint("acme", map[string]any{
		"constraint_code": "vip_ocean_view",
		"is_enabled":      "false",
		"weight_override": "150",
		"constraint":      map[string]any{"name": "VIP ocean view", "type": "soft", "default_weight": 100.0},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Code != "VIP_OCEAN_VIEW" || cfg.Name != "VIP ocean view" || cfg.Kind != domain.KindSoft {
		t.Fatalf("aliases not resolved: %+v", cfg)
	}
	if cfg.Enabled || cfg.Weight == nil || *cfg.Weight != 150 || cfg.DefaultWeight != 100 {
		t.Fatalf("unexpected flags: %+v", cfg)
	}

	if _, err := cms.MapConstraint("acme", map[string]any{"name": "nameless"}); !errors.Is(err, domain.ErrConfigLoad) {
		t.Fatalf("expected ErrConfigLoad for missing code, got %v", err)
	}
}
