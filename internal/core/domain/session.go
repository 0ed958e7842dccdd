package domain

// PaymentMode selects what happens once the wallet hands over a payment token.
type PaymentMode string

const (
	// PaymentModeProcess forwards the token to the authorization backend.
	PaymentModeProcess PaymentMode = "PROCESS_PAYMENT"
	// PaymentModeTokenOnly completes the sheet with the token and never calls the backend.
	PaymentModeTokenOnly PaymentMode = "GENERATE_TOKEN_ONLY"
)

// Card networks accepted by the wallet sheet.
const (
	NetworkMasterCard      = "masterCard"
	NetworkVisa            = "visa"
	NetworkAmex            = "amex"
	NetworkDiscover        = "discover"
	NetworkCartesBancaires = "cartesBancaires"
	NetworkJCB             = "jcb"
)

// Merchant capabilities. Supports3DS is the mandatory baseline.
const (
	CapabilitySupports3DS    = "supports3DS"
	CapabilitySupportsCredit = "supportsCredit"
	CapabilitySupportsDebit  = "supportsDebit"
	CapabilitySupportsEMV    = "supportsEMV"
)

// DefaultNetworks is used when a config leaves SupportedNetworks empty.
var DefaultNetworks = []string{
	NetworkMasterCard, NetworkVisa, NetworkAmex, NetworkDiscover, NetworkCartesBancaires, NetworkJCB,
}

// SessionConfig holds the merchant parameters for one wallet checkout.
type SessionConfig struct {
	Amount               string      `json:"amount" yaml:"amount" validate:"required,amount"`
	CurrencyCode         string      `json:"currencyCode" yaml:"currencyCode" validate:"required,len=3,uppercase,alpha"`
	CountryCode          string      `json:"countryCode" yaml:"countryCode" validate:"required,len=2,uppercase,alpha"`
	SupportedNetworks    []string    `json:"supportedNetworks" yaml:"supportedNetworks" validate:"required,min=1,dive,oneof=masterCard visa amex discover cartesBancaires jcb"`
	MerchantCapabilities []string    `json:"merchantCapabilities" yaml:"merchantCapabilities" validate:"dive,oneof=supports3DS supportsCredit supportsDebit supportsEMV"`
	MerchantIdentifier   string      `json:"merchantIdentifier" yaml:"merchantIdentifier" validate:"required,max=255"`
	DisplayName          string      `json:"displayName" yaml:"displayName" validate:"required,max=64"`
	InitiativeContext    string      `json:"initiativeContext" yaml:"initiativeContext" validate:"required,hostname_rfc1123"`
	PaymentMode          PaymentMode `json:"paymentMode" yaml:"paymentMode" validate:"required,oneof=PROCESS_PAYMENT GENERATE_TOKEN_ONLY"`
}

// Normalize validates the config and returns a copy with the amount rewritten
// to exactly two fractional digits, duplicate networks removed and
// supports3DS present as the first capability.
func (c SessionConfig) Normalize() (SessionConfig, error) {
	if err := c.Validate(); err != nil {
		return SessionConfig{}, err
	}

	minor, err := ParseAmount(c.Amount)
	if err != nil {
		return SessionConfig{}, err
	}

	out := c
	out.Amount = FormatMinor(minor)
	out.SupportedNetworks = dedupe(c.SupportedNetworks)
	out.MerchantCapabilities = dedupe(append([]string{CapabilitySupports3DS}, c.MerchantCapabilities...))
	return out, nil
}

// MinorAmount returns the amount in integer minor units. The config must
// already be normalized.
func (c SessionConfig) MinorAmount() int64 {
	minor, _ := ParseAmount(c.Amount)
	return minor
}

// PaymentRequest builds the request handed to the wallet platform when the
// session is created.
func (c SessionConfig) PaymentRequest() PaymentRequest {
	return PaymentRequest{
		CountryCode:          c.CountryCode,
		CurrencyCode:         c.CurrencyCode,
		SupportedNetworks:    append([]string(nil), c.SupportedNetworks...),
		MerchantCapabilities: append([]string(nil), c.MerchantCapabilities...),
		Total: LineItem{
			Label:  c.DisplayName,
			Amount: c.Amount,
			Type:   LineItemFinal,
		},
	}
}

// LineItemFinal marks a total whose amount is known.
const LineItemFinal = "final"

// LineItem is a labelled amount shown on the payment sheet.
type LineItem struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// PaymentRequest is what the wallet sheet displays and signs over.
type PaymentRequest struct {
	CountryCode          string   `json:"countryCode"`
	CurrencyCode         string   `json:"currencyCode"`
	SupportedNetworks    []string `json:"supportedNetworks"`
	MerchantCapabilities []string `json:"merchantCapabilities"`
	Total                LineItem `json:"total"`
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
