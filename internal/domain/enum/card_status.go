package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CardStatus represents whether a wallet card can be charged
type CardStatus int

const (
	CardStatusActive   CardStatus = 0
	CardStatusInactive CardStatus = 1
)

func (s CardStatus) String() string {
	switch s {
	case CardStatusActive:
		return "Active"
	case CardStatusInactive:
		return "Inactive"
	}
	return "Unknown"
}

func (s CardStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CardStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = CardStatus(i)
		return nil
	}
	switch str {
	case "Active":
		*s = CardStatusActive
	case "Inactive":
		*s = CardStatusInactive
	}
	return nil
}

func (s CardStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *CardStatus) Scan(value interface{}) error {
	if value == nil {
		*s = CardStatusActive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = CardStatus(v)
	case int:
		*s = CardStatus(v)
	}
	return nil
}
