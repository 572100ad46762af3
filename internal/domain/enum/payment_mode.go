package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode represents how a sale was settled
type PaymentMode string

const (
	PaymentModeCash          PaymentMode = "Cash"
	PaymentModeUPI           PaymentMode = "UPI"
	PaymentModeCard          PaymentMode = "Card"
	PaymentModeOnlinePayment PaymentMode = "OnlinePayment"
)

// PaymentModes lists every accepted payment mode
var PaymentModes = []PaymentMode{
	PaymentModeCash,
	PaymentModeUPI,
	PaymentModeCard,
	PaymentModeOnlinePayment,
}

func (m PaymentMode) String() string {
	return string(m)
}

// IsValid reports whether m is one of the known payment modes
func (m PaymentMode) IsValid() bool {
	for _, known := range PaymentModes {
		if m == known {
			return true
		}
	}
	return false
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	// The cashier dropdown labels the last option "Online Payment"
	if str == "Online Payment" {
		str = string(PaymentModeOnlinePayment)
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
