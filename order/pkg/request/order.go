package request

import "github.com/google/uuid"

const (
	PaymentMethodCredit = "credit"
	PaymentMethodDebit  = "debit"
	PaymentMethodPaypal = "paypal"
)

// Checkout is the shipping and payment form. Card fields are optional at the
// form level; they are required for credit and debit during checkout.
type Checkout struct {
	Name          string `validate:"required,min=2"                     json:"name"`
	Email         string `validate:"required,email"                     json:"email"`
	Address       string `validate:"required,min=5"                     json:"address"`
	City          string `validate:"required,min=2"                     json:"city"`
	State         string `validate:"required,min=2"                     json:"state"`
	ZipCode       string `validate:"required,min=5"                     json:"zipCode"`
	PaymentMethod string `validate:"required,oneof=credit debit paypal" json:"paymentMethod"`
	CardNumber    string `validate:"omitempty,cardnumber"               json:"cardNumber"`
	ExpiryDate    string `validate:"omitempty,cardexpiry"               json:"expiryDate"`
	Cvc           string `validate:"omitempty,cardcvc"                  json:"cvc"`
}

func (c Checkout) RequiresCard() bool {
	return c.PaymentMethod == PaymentMethodCredit || c.PaymentMethod == PaymentMethodDebit
}

func (c Checkout) HasCard() bool {
	return c.CardNumber != "" && c.ExpiryDate != "" && c.Cvc != ""
}

type FindOrderById struct {
	UserId  uuid.UUID `validate:"required"`
	OrderId uuid.UUID `validate:"required"`
}
