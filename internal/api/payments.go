package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/syrianarchive/archivectl/internal/model"
)

// PaymentsService talks to the payment sub-API, which lives under its own
// base path; its client shares the session store with the main API client, so
// one refresh serves both.
type PaymentsService struct {
	client *Client
}

// Methods returns the caller's stored payment methods.
func (s *PaymentsService) Methods(ctx context.Context) ([]model.PaymentMethod, error) {
	var resp struct {
		PaymentMethods []model.PaymentMethod `json:"payment_methods"`
	}
	if err := s.client.GetFresh(ctx, "/payment-methods/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.PaymentMethods, nil
}

// AddMethod stores a new payment method.
func (s *PaymentsService) AddMethod(ctx context.Context, draft model.PaymentMethodDraft) (*model.PaymentMethod, error) {
	if !draft.PaymentType.Valid() {
		return nil, validationError("invalid payment type %q", draft.PaymentType)
	}

	var resp struct {
		PaymentMethod model.PaymentMethod `json:"payment_method"`
	}
	if err := s.client.Post(ctx, "/payment-methods/", draft, &resp); err != nil {
		return nil, err
	}
	return &resp.PaymentMethod, nil
}

// DeleteMethod removes a payment method, reporting success as a boolean.
func (s *PaymentsService) DeleteMethod(ctx context.Context, id string) bool {
	return s.client.Delete(ctx, fmt.Sprintf("/payment-methods/%s/", url.PathEscape(id)))
}

// Process charges a stored payment method.
func (s *PaymentsService) Process(ctx context.Context, req model.PaymentRequest) (*model.Transaction, error) {
	if req.PaymentMethodID == "" {
		return nil, validationError("payment_method_id is required")
	}
	if req.Amount == "" {
		return nil, validationError("amount is required")
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}
	if req.TransactionType == "" {
		req.TransactionType = model.TransactionPayment
	}

	var resp struct {
		Transaction model.Transaction `json:"transaction"`
	}
	if err := s.client.Post(ctx, "/process-payment/", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// Refund requests a refund of a completed transaction.
func (s *PaymentsService) Refund(ctx context.Context, transactionID string, reason string) (*model.Transaction, error) {
	if transactionID == "" {
		return nil, validationError("transaction id is required")
	}

	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}

	var resp struct {
		Transaction model.Transaction `json:"transaction"`
	}
	endpoint := fmt.Sprintf("/refund/%s/", url.PathEscape(transactionID))
	if err := s.client.Post(ctx, endpoint, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// HistoryOptions filters the payment history.
type HistoryOptions struct {
	ListOptions
	Type   model.TransactionType
	Status model.TransactionStatus
}

// History returns the caller's transactions plus the aggregate summary block.
func (s *PaymentsService) History(ctx context.Context, opts HistoryOptions) (*model.PaymentHistory, error) {
	params := opts.values(20)
	if opts.Type != "" {
		params.Set("type", string(opts.Type))
	}
	if opts.Status != "" {
		params.Set("status", string(opts.Status))
	}

	var history model.PaymentHistory
	if err := s.client.GetFresh(ctx, "/payment-history/", params, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// Subscription returns the caller's subscription, or nil when none exists.
func (s *PaymentsService) Subscription(ctx context.Context) (*model.Subscription, error) {
	var resp struct {
		Subscription *model.Subscription `json:"subscription"`
	}
	err := s.client.GetFresh(ctx, "/subscriptions/", nil, &resp)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return resp.Subscription, nil
}

// Subscribe creates a subscription on the given plan, billed to the given
// payment method.
func (s *PaymentsService) Subscribe(ctx context.Context, plan model.SubscriptionPlan, paymentMethodID string) (*model.Subscription, error) {
	if !plan.Valid() {
		return nil, validationError("invalid subscription plan %q", plan)
	}
	if paymentMethodID == "" {
		return nil, validationError("payment_method_id is required")
	}

	var resp struct {
		Subscription model.Subscription `json:"subscription"`
	}
	err := s.client.Post(ctx, "/subscriptions/", map[string]string{
		"plan":              string(plan),
		"payment_method_id": paymentMethodID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Subscription, nil
}

// Cancel cancels a subscription, reporting success as a boolean.
func (s *PaymentsService) Cancel(ctx context.Context, subscriptionID string) bool {
	return s.client.Delete(ctx, fmt.Sprintf("/subscriptions/%s/", url.PathEscape(subscriptionID)))
}
