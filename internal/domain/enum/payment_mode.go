package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode represents how a purchase was paid for
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeCard         PaymentMode = "Card"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeCheque       PaymentMode = "Cheque"
	PaymentModeCredit       PaymentMode = "Credit"
)

// PaymentModes lists every accepted payment mode in display order
func PaymentModes() []PaymentMode {
	return []PaymentMode{
		PaymentModeCash,
		PaymentModeCard,
		PaymentModeUPI,
		PaymentModeBankTransfer,
		PaymentModeCheque,
		PaymentModeCredit,
	}
}

// IsValid reports whether the mode is one of the accepted payment modes
func (m PaymentMode) IsValid() bool {
	for _, mode := range PaymentModes() {
		if m == mode {
			return true
		}
	}
	return false
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMode(str)
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(string(v))
	}
	return nil
}
