package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type payment struct {
	Price      decimal.Decimal `validate:"price"`
	CardNumber string          `validate:"omitempty,cardnumber"`
	ExpiryDate string          `validate:"omitempty,cardexpiry"`
	Cvc        string          `validate:"omitempty,cardcvc"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   payment
		isValid bool
	}{
		{
			name: "given well formed card should be valid",
			input: payment{
				Price:      decimal.RequireFromString("249.99"),
				CardNumber: "4242 4242 4242 4242",
				ExpiryDate: "12/27",
				Cvc:        "123",
			},
			isValid: true,
		},
		{
			name:    "given empty card fields should be valid",
			input:   payment{Price: decimal.Zero},
			isValid: true,
		},
		{
			name:    "given negative price should be invalid",
			input:   payment{Price: decimal.NewFromInt(-1)},
			isValid: false,
		},
		{
			name:    "given card number without spaces should be invalid",
			input:   payment{CardNumber: "4242424242424242"},
			isValid: false,
		},
		{
			name:    "given month 13 should be invalid",
			input:   payment{ExpiryDate: "13/27"},
			isValid: false,
		},
		{
			name:    "given four digit cvc should be valid",
			input:   payment{Cvc: "1234"},
			isValid: true,
		},
		{
			name:    "given two digit cvc should be invalid",
			input:   payment{Cvc: "12"},
			isValid: false,
		},
	}

	validate := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
