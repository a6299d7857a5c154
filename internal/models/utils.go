package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/inboxd/inboxd/internal/enum"
	"github.com/inboxd/inboxd/internal/utils"
)

// AddressList is an ordered list of structured addresses stored as JSON.
type AddressList []utils.EmailAddress

// Value implements the driver.Valuer interface for AddressList
func (a AddressList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface for AddressList
func (a *AddressList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Attachment is provider-side attachment metadata; content is never stored,
// it is fetched from the provider by (resend id, attachment id).
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type AttachmentList []Attachment

func (a AttachmentList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AttachmentList) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// StatusEvent is one entry in an email's delivery timeline.
type StatusEvent struct {
	Status    enum.DeliveryStatus `json:"status"`
	Timestamp int64               `json:"timestamp"`
	Details   string              `json:"details,omitempty"`
}

// StatusHistory is append-only; entries are never rewritten.
type StatusHistory []StatusEvent

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *StatusHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, h)
}
