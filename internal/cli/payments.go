package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syrianarchive/archivectl/internal/api"
	"github.com/syrianarchive/archivectl/internal/model"
)

var (
	methodType     string
	methodDefault  bool
	methodLastFour string
	methodBrand    string
	methodExpMonth int
	methodExpYear  int

	payMethodID    string
	payAmount      string
	payCurrency    string
	payType        string
	payDescription string

	refundReason string

	historyPage     int
	historyPageSize int
	historyType     string
	historyStatus   string

	subscribePlan     string
	subscribeMethodID string
)

// paymentsCmd represents the payments command
var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Manage payment methods, payments and subscriptions",
	Long: `Payments talk to the archive's payment sub-API: stored payment
methods, one-off payments and donations, refunds, history with an
aggregate summary, and recurring subscriptions.`,
}

var paymentsMethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List your stored payment methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		methods, err := client.Payments.Methods(ctx)
		if err != nil {
			return err
		}

		return printResult(cfg, methods, func() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tDEFAULT\tCARD")
			for _, m := range methods {
				card := ""
				if m.CardLastFour != "" {
					card = fmt.Sprintf("%s ****%s %02d/%d", m.CardBrand, m.CardLastFour, m.CardExpMonth, m.CardExpYear)
				}
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", m.ID, m.PaymentType, m.IsDefault, card)
			}
			_ = w.Flush()
		})
	},
}

var paymentsAddMethodCmd = &cobra.Command{
	Use:   "add-method",
	Short: "Store a new payment method",
	Long: `Example:
  archivectl payments add-method --type credit_card --last-four 4242 --brand visa --exp-month 12 --exp-year 2027`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		draft := model.PaymentMethodDraft{
			PaymentType: model.PaymentType(methodType),
			IsDefault:   methodDefault,
		}
		if methodLastFour != "" {
			draft.CardLastFour = &methodLastFour
		}
		if methodBrand != "" {
			draft.CardBrand = &methodBrand
		}
		if methodExpMonth > 0 {
			draft.CardExpMonth = &methodExpMonth
		}
		if methodExpYear > 0 {
			draft.CardExpYear = &methodExpYear
		}

		method, err := client.Payments.AddMethod(ctx, draft)
		if err != nil {
			return err
		}

		fmt.Printf("Added payment method %s (%s)\n", method.ID, method.PaymentType)
		return nil
	},
}

var paymentsDeleteMethodCmd = &cobra.Command{
	Use:   "delete-method <id>",
	Short: "Remove a stored payment method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		if !client.Payments.DeleteMethod(ctx, args[0]) {
			return fmt.Errorf("payment method %s could not be deleted", args[0])
		}
		fmt.Printf("Deleted payment method %s\n", args[0])
		return nil
	},
}

var paymentsPayCmd = &cobra.Command{
	Use:   "pay",
	Short: "Charge a stored payment method",
	Long: `Pay processes a one-off payment or donation.

Example:
  archivectl payments pay --method 7f3c... --amount 25.00 --type donation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		req := model.PaymentRequest{
			PaymentMethodID: payMethodID,
			Amount:          payAmount,
			Currency:        payCurrency,
			TransactionType: model.TransactionType(payType),
		}
		if payDescription != "" {
			req.Description = &payDescription
		}

		tx, err := client.Payments.Process(ctx, req)
		if err != nil {
			return err
		}

		fmt.Printf("Transaction %s: %s %s %s (%s)\n", tx.ID, tx.TransactionType, tx.Amount, tx.Currency, tx.Status)
		return nil
	},
}

var paymentsRefundCmd = &cobra.Command{
	Use:   "refund <transaction-id>",
	Short: "Request a refund of a completed transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		tx, err := client.Payments.Refund(ctx, args[0], refundReason)
		if err != nil {
			return err
		}

		fmt.Printf("Refund %s: %s %s (%s)\n", tx.ID, tx.Amount, tx.Currency, tx.Status)
		return nil
	},
}

var paymentsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your transaction history and summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		history, err := client.Payments.History(ctx, api.HistoryOptions{
			ListOptions: api.ListOptions{Page: historyPage, PageSize: historyPageSize},
			Type:        model.TransactionType(historyType),
			Status:      model.TransactionStatus(historyStatus),
		})
		if err != nil {
			return err
		}

		return printResult(cfg, history, func() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tAMOUNT\tDATE")
			for _, tx := range history.Transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					tx.ID, tx.TransactionType, tx.Status, tx.Amount, tx.Currency, tx.CreatedAt.Format("2006-01-02"))
			}
			_ = w.Flush()
			fmt.Printf("\nTotal spent: %s over %d transactions (%d refunds)\n",
				history.Summary.TotalSpent, history.Summary.TotalTransactions, history.Summary.TotalRefunds)
		})
	},
}

// subscriptionCmd represents the payments subscription command
var subscriptionCmd = &cobra.Command{
	Use:   "subscription",
	Short: "Manage your subscription",
}

var subscriptionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your current subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		sub, err := client.Payments.Subscription(ctx)
		if err != nil {
			return err
		}
		if sub == nil {
			fmt.Println("No subscription")
			return nil
		}

		return printResult(cfg, sub, func() {
			fmt.Printf("Plan:    %s (%s/month)\n", sub.Plan, sub.MonthlyPrice)
			fmt.Printf("Status:  %s\n", sub.Status)
			fmt.Printf("Started: %s\n", sub.StartDate.Format("2006-01-02"))
			if sub.NextBillingDate != nil {
				fmt.Printf("Next billing: %s\n", sub.NextBillingDate.Format("2006-01-02"))
			}
		})
	},
}

var subscriptionSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Start a subscription",
	Long: `Example:
  archivectl payments subscription subscribe --plan premium --method 7f3c...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		sub, err := client.Payments.Subscribe(ctx, model.SubscriptionPlan(subscribePlan), subscribeMethodID)
		if err != nil {
			return err
		}

		fmt.Printf("Subscribed to %s (%s/month, status: %s)\n", sub.Plan, sub.MonthlyPrice, sub.Status)
		return nil
	},
}

var subscriptionCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newAPI()
		if err != nil {
			return err
		}
		ctx, cancel := cmdContext(cfg)
		defer cancel()

		if !client.Payments.Cancel(ctx, args[0]) {
			return fmt.Errorf("subscription %s could not be cancelled", args[0])
		}
		fmt.Printf("Cancelled subscription %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsMethodsCmd, paymentsAddMethodCmd, paymentsDeleteMethodCmd,
		paymentsPayCmd, paymentsRefundCmd, paymentsHistoryCmd, subscriptionCmd)
	subscriptionCmd.AddCommand(subscriptionShowCmd, subscriptionSubscribeCmd, subscriptionCancelCmd)

	paymentsAddMethodCmd.Flags().StringVar(&methodType, "type", "", "payment type: credit_card, debit_card, paypal, stripe, bank_transfer")
	paymentsAddMethodCmd.Flags().BoolVar(&methodDefault, "default", false, "make this the default method")
	paymentsAddMethodCmd.Flags().StringVar(&methodLastFour, "last-four", "", "card last four digits")
	paymentsAddMethodCmd.Flags().StringVar(&methodBrand, "brand", "", "card brand")
	paymentsAddMethodCmd.Flags().IntVar(&methodExpMonth, "exp-month", 0, "card expiry month")
	paymentsAddMethodCmd.Flags().IntVar(&methodExpYear, "exp-year", 0, "card expiry year")
	_ = paymentsAddMethodCmd.MarkFlagRequired("type")

	paymentsPayCmd.Flags().StringVar(&payMethodID, "method", "", "payment method id (required)")
	paymentsPayCmd.Flags().StringVar(&payAmount, "amount", "", "decimal amount, e.g. 25.00 (required)")
	paymentsPayCmd.Flags().StringVar(&payCurrency, "currency", "", "currency code (default USD)")
	paymentsPayCmd.Flags().StringVar(&payType, "type", "", "transaction type: payment or donation (default payment)")
	paymentsPayCmd.Flags().StringVar(&payDescription, "description", "", "free-form description")
	_ = paymentsPayCmd.MarkFlagRequired("method")
	_ = paymentsPayCmd.MarkFlagRequired("amount")

	paymentsRefundCmd.Flags().StringVar(&refundReason, "reason", "", "refund reason")

	paymentsHistoryCmd.Flags().IntVar(&historyPage, "page", 0, "page number")
	paymentsHistoryCmd.Flags().IntVar(&historyPageSize, "page-size", 0, "results per page")
	paymentsHistoryCmd.Flags().StringVar(&historyType, "type", "", "filter by transaction type")
	paymentsHistoryCmd.Flags().StringVar(&historyStatus, "status", "", "filter by transaction status")

	subscriptionSubscribeCmd.Flags().StringVar(&subscribePlan, "plan", "", "plan: basic, premium, pro (required)")
	subscriptionSubscribeCmd.Flags().StringVar(&subscribeMethodID, "method", "", "payment method id (required)")
	_ = subscriptionSubscribeCmd.MarkFlagRequired("plan")
	_ = subscriptionSubscribeCmd.MarkFlagRequired("method")
}
