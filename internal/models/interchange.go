package models

import "time"

// Interchange is a generated EDIFACT ORDERS document as stored in
// postgres and the cache, keyed by the message reference.
type Interchange struct {
	MessageRef   string    `json:"message_ref"   gorm:"primary_key;unique"`
	OrderNumber  string    `json:"order_number"`
	Currency     string    `json:"currency"`
	GrandTotal   string    `json:"grand_total"`
	SegmentCount int       `json:"segment_count"`
	Payload      string    `json:"payload"       gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
