package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAnalyzeSuccess(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"annual_rent_income": [0, 8000000, 7524000],
			"befor_tax_cash_flow": [0, 1, 2],
			"internal_rate_of_return": 0.061,
			"dead_cross_year": 22,
			"total_pl": 123456789
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zap.NewNop())
	result, err := client.Analyze(context.Background(), Request{TotalPrice: 100000000, GrossYield: 0.08})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if received["total_price"] != 100000000.0 || received["gross_yield"] != 0.08 {
		t.Errorf("unexpected request body: %v", received)
	}
	if result.Conditions.TotalPrice != 100000000 {
		t.Errorf("conditions not attached: %+v", result.Conditions)
	}
	if len(result.AnnualRentIncome) != 3 || result.AnnualRentIncome[1] != 8000000 {
		t.Errorf("AnnualRentIncome = %v", result.AnnualRentIncome)
	}
	if len(result.BeforeTaxCashFlow) != 3 {
		t.Errorf("BeforeTaxCashFlow = %v", result.BeforeTaxCashFlow)
	}
	if result.InternalRateOfReturn != 0.061 || result.DeadCrossYear != 22 {
		t.Errorf("ratios not decoded: %+v", result.Analysis)
	}
}

func TestAnalyzeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, nil)
	_, err := client.Analyze(context.Background(), Request{})

	var valErr *ValuationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValuationError, got %v", err)
	}
	if valErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", valErr.StatusCode)
	}
}

func TestAnalyzeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, nil)
	_, err := client.Analyze(context.Background(), Request{})

	var valErr *ValuationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValuationError, got %v", err)
	}
	if valErr.StatusCode != 0 || valErr.Err == nil {
		t.Errorf("expected a transport error, got %+v", valErr)
	}
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"annual_rent_income": "lots"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	_, err := client.Analyze(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var valErr *ValuationError
	if errors.As(err, &valErr) {
		t.Errorf("decode failure should not be a ValuationError: %v", err)
	}
}

func TestAnalyzeHonorsContext(t *testing.T) {
	// The handler does not read the body, so net/http may never notice the
	// client hanging up; release unblocks it before the server closes.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, 10*time.Second, nil)
	_, err := client.Analyze(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
