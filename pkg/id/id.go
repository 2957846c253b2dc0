// Package id issues session identifiers. They are ULIDs: sortable by creation
// time, so journal rows of later sessions order after earlier ones.
package id

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewAt returns a ULID stamped with t. Ids issued within the same
// millisecond still sort in issue order.
func NewAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// Time extracts the creation time of an id issued by NewAt.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session id %q: %w", s, err)
	}
	return ulid.Time(id.Time()).UTC(), nil
}
