package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/syrianarchive/archivectl/internal/model"
	"github.com/syrianarchive/archivectl/internal/session"
)

func paymentsService(t *testing.T, handler http.Handler) *PaymentsService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, testStore(t, &session.Session{AccessToken: "a", RefreshToken: "r"}))
	return &PaymentsService{client: client}
}

func TestPayments_ProcessDefaults(t *testing.T) {
	svc := paymentsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/process-payment/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req model.PaymentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Currency != "USD" {
			t.Errorf("currency = %q, want USD default", req.Currency)
		}
		if req.TransactionType != model.TransactionPayment {
			t.Errorf("transaction_type = %q, want payment default", req.TransactionType)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]model.Transaction{
			"transaction": {ID: "tx-1", Status: model.TransactionCompleted, Amount: req.Amount},
		})
	}))

	tx, err := svc.Process(context.Background(), model.PaymentRequest{
		PaymentMethodID: "pm-1",
		Amount:          "25.00",
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if tx.ID != "tx-1" || tx.Status != model.TransactionCompleted {
		t.Errorf("transaction = %+v", tx)
	}

	if _, err := svc.Process(context.Background(), model.PaymentRequest{Amount: "1"}); KindOf(err) != KindValidation {
		t.Errorf("missing payment method should fail validation locally")
	}
}

func TestPayments_HistoryFilters(t *testing.T) {
	svc := paymentsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "refund" || q.Get("status") != "completed" {
			t.Errorf("filters = %v", q)
		}
		_ = json.NewEncoder(w).Encode(model.PaymentHistory{
			Transactions: []model.Transaction{{ID: "tx-9", TransactionType: model.TransactionRefund}},
			Summary:      model.PaymentSummary{TotalSpent: "120.00", TotalTransactions: 8, TotalRefunds: 1},
		})
	}))

	history, err := svc.History(context.Background(), HistoryOptions{
		Type:   model.TransactionRefund,
		Status: model.TransactionCompleted,
	})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history.Transactions) != 1 || history.Summary.TotalRefunds != 1 {
		t.Errorf("history = %+v", history)
	}
}

func TestPayments_SubscribeValidatesPlan(t *testing.T) {
	svc := paymentsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["plan"] != "premium" || body["payment_method_id"] != "pm-1" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]model.Subscription{
			"subscription": {ID: "sub-1", Plan: model.PlanPremium, Status: model.SubscriptionActive},
		})
	}))

	ctx := context.Background()
	if _, err := svc.Subscribe(ctx, "gold", "pm-1"); KindOf(err) != KindValidation {
		t.Errorf("unknown plan should fail validation locally")
	}

	sub, err := svc.Subscribe(ctx, model.PlanPremium, "pm-1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if sub.Status != model.SubscriptionActive {
		t.Errorf("subscription = %+v", sub)
	}
}

func TestPayments_SubscriptionAbsent(t *testing.T) {
	svc := paymentsService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "No subscription found"}`))
	}))

	sub, err := svc.Subscription(context.Background())
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}
	if sub != nil {
		t.Errorf("subscription = %+v, want nil", sub)
	}
}
