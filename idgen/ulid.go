package idgen

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/aatuh/api-shield/clock"
	"github.com/aatuh/api-shield/ports"
)

// ULIDGen issues ULIDs stamped with its clock. They are used as incident
// ids for blocked requests, so log lines sort by time.
type ULIDGen struct {
	clock ports.Clock
}

func (g ULIDGen) New() string {
	c := g.clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return ulid.MustNew(ulid.Timestamp(c.Now()), rand.Reader).String()
}

// NewULIDGen creates a ULID generator on the system clock.
func NewULIDGen() ports.IDGen {
	return &ULIDGen{clock: clock.NewSystemClock()}
}

// NewULIDGenWithClock creates a ULID generator on c.
func NewULIDGenWithClock(c ports.Clock) ports.IDGen {
	return &ULIDGen{clock: c}
}
