package model

import "time"

// PaymentType identifies how a payment method is funded.
type PaymentType string

const (
	PaymentCreditCard   PaymentType = "credit_card"
	PaymentDebitCard    PaymentType = "debit_card"
	PaymentPayPal       PaymentType = "paypal"
	PaymentStripe       PaymentType = "stripe"
	PaymentBankTransfer PaymentType = "bank_transfer"
)

// Valid reports whether the payment type is one of the accepted values.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentCreditCard, PaymentDebitCard, PaymentPayPal, PaymentStripe,
		PaymentBankTransfer:
		return true
	}
	return false
}

// PaymentMethod is a stored funding source. IDs are server-issued UUIDs.
type PaymentMethod struct {
	ID           string      `json:"id"`
	PaymentType  PaymentType `json:"payment_type"`
	IsDefault    bool        `json:"is_default"`
	IsActive     bool        `json:"is_active"`
	CardLastFour string      `json:"card_last_four,omitempty"`
	CardBrand    string      `json:"card_brand,omitempty"`
	CardExpMonth int         `json:"card_exp_month,omitempty"`
	CardExpYear  int         `json:"card_exp_year,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// PaymentMethodDraft is the create payload for payment methods.
type PaymentMethodDraft struct {
	PaymentType  PaymentType `json:"payment_type"`
	IsDefault    bool        `json:"is_default"`
	CardLastFour *string     `json:"card_last_four,omitempty"`
	CardBrand    *string     `json:"card_brand,omitempty"`
	CardExpMonth *int        `json:"card_exp_month,omitempty"`
	CardExpYear  *int        `json:"card_exp_year,omitempty"`
}

// TransactionType classifies a payment transaction.
type TransactionType string

const (
	TransactionPayment      TransactionType = "payment"
	TransactionRefund       TransactionType = "refund"
	TransactionSubscription TransactionType = "subscription"
	TransactionDonation     TransactionType = "donation"
)

// TransactionStatus tracks a transaction's lifecycle.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionProcessing TransactionStatus = "processing"
	TransactionCompleted  TransactionStatus = "completed"
	TransactionFailed     TransactionStatus = "failed"
	TransactionCancelled  TransactionStatus = "cancelled"
	TransactionRefunded   TransactionStatus = "refunded"
)

// Transaction is a payment, refund, subscription charge or donation.
// Amounts are decimal strings to avoid float drift on money.
type Transaction struct {
	ID              string            `json:"id"`
	TransactionType TransactionType   `json:"transaction_type"`
	Status          TransactionStatus `json:"status"`
	Amount          string            `json:"amount"`
	Currency        string            `json:"currency"`
	Description     string            `json:"description,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

// PaymentRequest is the process-payment payload.
type PaymentRequest struct {
	PaymentMethodID string          `json:"payment_method_id"`
	Amount          string          `json:"amount"`
	Currency        string          `json:"currency"`
	TransactionType TransactionType `json:"transaction_type"`
	Description     *string         `json:"description,omitempty"`
}

// PaymentHistory is the history response: transactions plus a summary block.
type PaymentHistory struct {
	Transactions []Transaction  `json:"transactions"`
	Summary      PaymentSummary `json:"summary"`
}

// PaymentSummary aggregates a user's payment activity.
type PaymentSummary struct {
	TotalSpent        string `json:"total_spent"`
	TotalTransactions int    `json:"total_transactions"`
	TotalRefunds      int    `json:"total_refunds"`
}

// SubscriptionPlan names the available subscription tiers.
type SubscriptionPlan string

const (
	PlanBasic   SubscriptionPlan = "basic"
	PlanPremium SubscriptionPlan = "premium"
	PlanPro     SubscriptionPlan = "pro"
)

// Valid reports whether the plan is one of the accepted values.
func (p SubscriptionPlan) Valid() bool {
	return p == PlanBasic || p == PlanPremium || p == PlanPro
}

// SubscriptionStatus tracks a subscription's lifecycle.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// Subscription is a user's recurring plan.
type Subscription struct {
	ID              string             `json:"id"`
	Plan            SubscriptionPlan   `json:"plan"`
	Status          SubscriptionStatus `json:"status"`
	MonthlyPrice    string             `json:"monthly_price"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         *time.Time         `json:"end_date,omitempty"`
	NextBillingDate *time.Time         `json:"next_billing_date,omitempty"`
}
