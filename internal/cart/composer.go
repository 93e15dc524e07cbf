package cart

import (
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const (
	DefaultMessagingHost = "wa.me"
	DefaultCountryCode   = "55"
)

// Composer renders a cart into an order message addressed to the store's phone.
type Composer struct {
	Host        string // Messaging host, e.g. wa.me
	CountryCode string // Prefixed to phones that do not carry it yet
}

// NewComposer returns a composer with the given host and country code, defaulting empty values.
func NewComposer(host, countryCode string) Composer {
	if host == "" {
		host = DefaultMessagingHost
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	return Composer{Host: host, CountryCode: countryCode}
}

// Message renders the human-readable order summary.
func (c Composer) Message(cart *Cart, store *entity.StoreSettings) string {
	var b strings.Builder

	b.WriteString("🛍️ *")
	b.WriteString(store.Name)
	b.WriteString("* - Novo Pedido\n\n")
	b.WriteString("Olá! Gostaria de fazer um pedido:\n\n")

	for _, item := range cart.Items() {
		b.WriteString("• ")
		b.WriteString(strconv.Itoa(item.Quantity))
		b.WriteString("x ")
		b.WriteString(item.Product.Name)
		b.WriteString(" - R$ ")
		b.WriteString(decimal.NewFromFloat(item.Product.Price).StringFixed(2))
		b.WriteString("\n")
	}

	b.WriteString("\n*Total: R$ ")
	b.WriteString(cart.TotalPrice().StringFixed(2))
	b.WriteString("*\n\n")
	b.WriteString("Aguardo o retorno! 😊")

	return b.String()
}

// Phone returns the international phone number the message is addressed to.
func (c Composer) Phone(store *entity.StoreSettings) string {
	digits := DigitsOnly(store.Phone)
	if digits == "" {
		return ""
	}
	if len(digits) > 11 && strings.HasPrefix(digits, c.CountryCode) {
		return digits
	}

	return c.CountryCode + digits
}

// URL renders https://{host}/{phone}?text={message}.
func (c Composer) URL(cart *Cart, store *entity.StoreSettings) string {
	u := url.URL{
		Scheme:   "https",
		Host:     c.Host,
		Path:     "/" + c.Phone(store),
		RawQuery: "text=" + encodeURIComponent(c.Message(cart, store)),
	}

	return u.String()
}

// DigitsOnly strips every non-digit character.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, s)
}

// encodeURIComponent escapes as browsers do for a query component, with spaces as %20.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")

	// QueryEscape escapes these, encodeURIComponent does not.
	for _, keep := range []rune{'!', '\'', '(', ')', '*'} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(string(keep)), string(keep))
	}

	return escaped
}
