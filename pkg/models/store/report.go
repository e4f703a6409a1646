package store

import "time"

// Report is a generated brief cached in the report store. Payload holds
// the full paid-tier API document; tier projection happens on read.
type Report struct {
	ID        string
	Tier      string
	Payload   []byte
	CreatedAt time.Time
}
