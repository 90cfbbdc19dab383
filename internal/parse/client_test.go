package parse

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
)

func TestParse_ConvertsRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart upload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"records": [
				{"date": "01/05", "description": "FRYS FOOD STORE #12", "amount": -45.00},
				{"date": "01/07", "description": "PAYROLL DEPOSIT", "amount": 2500.00}
			],
			"pages": 2
		}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-key")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	txns, err := client.Parse(context.Background(), "january.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("transaction count = %d, want 2", len(txns))
	}

	if txns[0].Direction != model.DirectionWithdrawal || txns[0].Amount != 45.00 {
		t.Errorf("negative amount must become a withdrawal magnitude: %+v", txns[0])
	}
	if txns[1].Direction != model.DirectionDeposit || txns[1].Amount != 2500.00 {
		t.Errorf("positive amount must become a deposit: %+v", txns[1])
	}
	if txns[0].ID == "" || txns[0].ID == txns[1].ID {
		t.Error("transactions must get distinct ids")
	}
}

func TestParse_UpstreamFailureIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Parse(context.Background(), "january.pdf", strings.NewReader("x"))
	if !errors.Is(err, common.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestParse_UnreachableServiceIsTyped(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Parse(context.Background(), "january.pdf", strings.NewReader("x"))
	if !errors.Is(err, common.ErrUpstreamUnavailable) {
		t.Errorf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestParse_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Parse(context.Background(), "january.pdf", strings.NewReader("x"))
	if !errors.Is(err, common.ErrRateLimit) {
		t.Errorf("expected ErrRateLimit, got %v", err)
	}
}

func TestParse_EmptyStatement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records": [], "pages": 1}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Parse(context.Background(), "empty.pdf", strings.NewReader("x"))
	if !errors.Is(err, common.ErrNoTransactions) {
		t.Errorf("expected ErrNoTransactions, got %v", err)
	}
}

func TestNewClient_RequiresURL(t *testing.T) {
	if _, err := NewClient("", "key"); !errors.Is(err, common.ErrMissingConfig) {
		t.Errorf("expected ErrMissingConfig, got %v", err)
	}
}
