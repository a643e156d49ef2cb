package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// OrderMessage is the checkout handoff: the human-readable order body and
// the messaging-service destination that carries it. Dispatching the
// destination is the caller's responsibility.
type OrderMessage struct {
	Body        string `json:"body"`
	Destination string `json:"destination"`
}

// Formatter renders cart contents plus store configuration into an order
// message. Pure; no side effects.
type Formatter struct {
	baseURL        *url.URL
	greeting       string
	currencyPrefix string
}

// NewFormatter validates the messaging base address up front so BuildOrder
// cannot fail on configuration.
func NewFormatter(cfg config.CheckoutConfig) (*Formatter, error) {
	base, err := url.Parse(cfg.MessageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing checkout base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("checkout base url must be absolute: %q", cfg.MessageBaseURL)
	}
	return &Formatter{
		baseURL:        base,
		greeting:       cfg.Greeting,
		currencyPrefix: cfg.CurrencyPrefix,
	}, nil
}

// BuildOrder assembles the order message for the current cart. Fails when the
// cart is empty or no contact channel is configured; no partial order is ever
// produced.
func (f *Formatter) BuildOrder(current cart.Cart, merchant settings.Settings) (*OrderMessage, error) {
	if current.TotalItems == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart has no items")
	}

	if !merchant.HasContact() {
		return nil, pkgerrors.New(pkgerrors.CodeMissingContact, "no contact channel configured")
	}
	phone := normalizePhone(merchant.ContactPhone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMissingContact, "no contact channel configured")
	}

	var b strings.Builder
	b.WriteString(f.greeting)
	b.WriteString("\n\n")
	for _, line := range current.Lines {
		fmt.Fprintf(&b, "%dx - %s\n", line.Quantity, line.Name)
	}
	b.WriteString("\nTotal: ")
	b.WriteString(f.currencyPrefix)
	b.WriteString(formatAmount(current))
	body := b.String()

	destination := *f.baseURL
	query := destination.Query()
	query.Set("phone", phone)
	query.Set("text", body)
	destination.RawQuery = query.Encode()

	return &OrderMessage{Body: body, Destination: destination.String()}, nil
}

// formatAmount renders the total with two fraction digits and a comma
// decimal separator.
func formatAmount(current cart.Cart) string {
	return strings.Replace(current.TotalPrice.StringFixed(2), ".", ",", 1)
}

// normalizePhone strips the formatting characters customers paste into the
// admin panel, keeping digits and a leading plus.
func normalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting only
		default:
			return ""
		}
	}
	phone := b.String()
	if !strings.ContainsAny(phone, "0123456789") {
		return ""
	}
	return phone
}
