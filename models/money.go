package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Money is an amount in minor units (paise). Documents store the integer so
// balances never drift; JSON carries the decimal value in major units.
type Money int64

// ToMoney converts a major-unit amount, rounding to the nearest minor unit.
func ToMoney(v float64) Money {
	return Money(math.Round(v * 100))
}

func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = ToMoney(v)
	return nil
}
