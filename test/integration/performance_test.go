package integration

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/dcf-valuation/internal/config"
	"github.com/iwvelando/dcf-valuation/internal/server"
	"github.com/iwvelando/dcf-valuation/internal/valuation"
	"github.com/iwvelando/dcf-valuation/pkg/testutil"
	"go.uber.org/zap"
)

// TestRunner is a simple test runner for debugging
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	start := time.Now()
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	raw := conf.Assumptions.ToRawInput()
	longHorizon := float64(500)
	raw.GrowthPeriodYears = &longHorizon

	start = time.Now()
	result, err := valuation.Compute(raw)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	computeTime := time.Since(start)

	if len(result.Projections) != 500 {
		t.Errorf("expected 500 projections, got %d", len(result.Projections))
	}

	t.Logf("Performance metrics:")
	t.Logf("  Config loading: %v", loadTime)
	t.Logf("  500-year valuation: %v", computeTime)

	if computeTime > time.Second {
		t.Errorf("500-year valuation took too long: %v", computeTime)
	}
}

// TestConcurrentRequests checks the handler under parallel load.
func TestConcurrentRequests(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	expected, err := valuation.Compute(conf.Assumptions.ToRawInput())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	handler := server.NewHandler(zap.NewNop(), server.Options{})
	body := testutil.ReferenceJSON()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", rr.Code)
			}
		}()
	}
	wg.Wait()

	if expected.SharePrice <= 0 {
		t.Errorf("unexpected share price %v", expected.SharePrice)
	}
}

func BenchmarkCompute(b *testing.B) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		b.Fatalf("LoadConfiguration failed: %v", err)
	}
	raw := conf.Assumptions.ToRawInput()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := valuation.Compute(raw); err != nil {
			b.Fatal(err)
		}
	}
}
