package idgen

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatuh/api-shield/clock"
)

func TestULIDGen_UsesClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := NewULIDGenWithClock(clock.Fixed(at))

	a, b := gen.New(), gen.New()
	assert.NotEqual(t, a, b)

	id, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.True(t, at.Equal(ulid.Time(id.Time())))
}

func TestULIDGen_ZeroValue(t *testing.T) {
	id := ULIDGen{}.New()
	assert.Len(t, id, ulid.EncodedSize)
}
