package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// WorkStatus represents the processing status of a work order
type WorkStatus int

const (
	WorkStatusPending     WorkStatus = 0
	WorkStatusInProgress  WorkStatus = 1
	WorkStatusWaitingDocs WorkStatus = 2
	WorkStatusCompleted   WorkStatus = 3
)

func (s WorkStatus) String() string {
	switch s {
	case WorkStatusPending:
		return "Pending"
	case WorkStatusInProgress:
		return "InProgress"
	case WorkStatusWaitingDocs:
		return "WaitingDocs"
	case WorkStatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// Valid reports whether the status is one of the known work order states
func (s WorkStatus) Valid() bool {
	return s >= WorkStatusPending && s <= WorkStatusCompleted
}

func (s WorkStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *WorkStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = WorkStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = WorkStatusPending
	case "InProgress":
		*s = WorkStatusInProgress
	case "WaitingDocs":
		*s = WorkStatusWaitingDocs
	case "Completed":
		*s = WorkStatusCompleted
	}
	return nil
}

func (s WorkStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *WorkStatus) Scan(value interface{}) error {
	if value == nil {
		*s = WorkStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = WorkStatus(v)
	case int:
		*s = WorkStatus(v)
	}
	return nil
}
