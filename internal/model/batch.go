package model

import "time"

// TicketBatch is the unit stored by the batch cache: one uploaded ticket list
// plus the time it was persisted. The cache read contract always returns the
// batch with the newest UploadedAt.
type TicketBatch struct {
	UploadedAt time.Time `json:"uploaded_at"`
	Tickets    []Ticket  `json:"tickets"`
}
