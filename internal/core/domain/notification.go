package domain

// EventPaymentAuthorized is the only notification event emitted.
const EventPaymentAuthorized = "PAYMENT_AUTHORIZED"

// OutcomeNotification is posted to the merchant's notify URL after an
// authorization decision.
type OutcomeNotification struct {
	EventType     string `json:"event_type"`
	PaymentID     string `json:"payment_id"`
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id"`
	WalletType    string `json:"wallet_type"`
	Status        string `json:"status"`
	Approved      bool   `json:"approved"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}
