package dto

type CreateCheckoutRequest struct {
	PackageId string `json:"package_id" validate:"required"`
}

type CreateCheckoutResponse struct {
	SessionId string `json:"session_id"`
	URL       string `json:"url"`
}

type CreditPackageResponse struct {
	Id      string  `json:"id"`
	Credits float64 `json:"credits"`
	Price   float64 `json:"price"`
	Popular bool    `json:"popular"`
}

// PurchaseReceiptMessage is published after a settlement commits and
// consumed off the webhook path to send the receipt email.
type PurchaseReceiptMessage struct {
	Email      string  `json:"email"`
	Credits    float64 `json:"credits"`
	Amount     float64 `json:"amount"`
	PaymentRef string  `json:"payment_ref"`
}

// UnresolvedGrantMessage alerts the operator that a completed payment
// could not be matched to a user account.
type UnresolvedGrantMessage struct {
	CustomerEmail string  `json:"customer_email"`
	PaymentRef    string  `json:"payment_ref"`
	Credits       float64 `json:"credits"`
}
