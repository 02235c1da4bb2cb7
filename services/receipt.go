package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/repositories"
)

const (
	MsgPaymentDetailsFailed = "Failed to fetch payment details"

	// HomeRoute is the target of the "return home" action.
	HomeRoute = "/"

	notAvailable = "N/A"
	receiptDate  = "1/2/2006"
)

// ReceiptView is what the payment-success page renders.
type ReceiptView struct {
	// Reference is the payment intent id from the return URL.
	Reference string                 `json:"reference,omitempty"`
	Details   *models.PaymentDetails `json:"details,omitempty"`
	Notice    *Notice                `json:"notice,omitempty"`
}

type ReceiptService struct {
	payments repositories.PaymentRepository
	logger   *slog.Logger
}

func NewReceiptService(payments repositories.PaymentRepository, logger *slog.Logger) *ReceiptService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptService{payments: payments, logger: logger}
}

// Load looks up the payment named by the payment_intent query parameter.
// A missing reference or failed lookup still yields a renderable view.
func (s *ReceiptService) Load(ctx context.Context, query url.Values) ReceiptView {
	ref := strings.TrimSpace(query.Get("payment_intent"))
	if ref == "" {
		return ReceiptView{}
	}

	view := ReceiptView{Reference: ref}
	details, err := s.payments.GetPaymentStatus(ctx, ref)
	if err != nil {
		s.logger.Error("failed to fetch payment details", "payment_intent_id", ref, "error", err)
		view.Notice = &Notice{Kind: NoticeError, Message: MsgPaymentDetailsFailed}
		return view
	}
	view.Details = details
	return view
}

func metadataOr(details *models.PaymentDetails, key, fallback string) string {
	if details != nil {
		if v := details.Metadata[key]; v != "" {
			return v
		}
	}
	return fallback
}

func receiptPaymentID(details *models.PaymentDetails, ref string) string {
	if ref == "" {
		ref = notAvailable
	}
	return metadataOr(details, "paymentIntentId", ref)
}

func receiptAmount(details *models.PaymentDetails) string {
	if details == nil || details.Amount == 0 {
		return notAvailable
	}
	return strconv.FormatFloat(details.Amount, 'f', -1, 64)
}

func receiptStatus(details *models.PaymentDetails) string {
	if details == nil || details.Status == "" {
		return notAvailable
	}
	return details.Status
}

// ReceiptText renders the downloadable plain-text receipt.
func ReceiptText(details *models.PaymentDetails, ref string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s - PAYMENT RECEIPT\n\n", models.PreseasonCup.Name)
	fmt.Fprintf(&b, "Payment ID: %s\n", receiptPaymentID(details, ref))
	fmt.Fprintf(&b, "Amount: AED %s\n", receiptAmount(details))
	fmt.Fprintf(&b, "Date: %s\n", now.Format(receiptDate))
	fmt.Fprintf(&b, "Status: %s\n\n", receiptStatus(details))
	fmt.Fprintf(&b, "Player: %s\n", metadataOr(details, "playerName", notAvailable))
	fmt.Fprintf(&b, "Email: %s\n", metadataOr(details, "email", notAvailable))
	fmt.Fprintf(&b, "Tournament: %s\n\n", metadataOr(details, "tournament", notAvailable))
	b.WriteString("Thank you for your payment!\n")
	return b.String()
}

// ReceiptFilename is payment-receipt-<unix ms>.txt.
func ReceiptFilename(now time.Time) string {
	return fmt.Sprintf("payment-receipt-%d.txt", now.UnixMilli())
}

// MailtoURL builds the "email receipt" link addressed to the payer.
func MailtoURL(details *models.PaymentDetails, ref string, now time.Time) string {
	subject := "Payment Receipt - " + models.PreseasonCup.Name

	var body strings.Builder
	body.WriteString("Dear Player,\n\n")
	fmt.Fprintf(&body, "Thank you for your payment of AED %s for the %s.\n\n", receiptAmount(details), models.PreseasonCup.Name)
	body.WriteString("Payment Details:\n")
	fmt.Fprintf(&body, "- Payment ID: %s\n", receiptPaymentID(details, ref))
	fmt.Fprintf(&body, "- Amount: AED %s\n", receiptAmount(details))
	fmt.Fprintf(&body, "- Date: %s\n", now.Format(receiptDate))
	fmt.Fprintf(&body, "- Status: %s\n\n", receiptStatus(details))
	body.WriteString("Best regards,\nAtomics Football Team")

	return "mailto:" + metadataOr(details, "email", "") +
		"?subject=" + escapeComponent(subject) +
		"&body=" + escapeComponent(body.String())
}

// escapeComponent percent-encodes s for a mailto query, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
