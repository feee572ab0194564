package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/storm-track-splitter/internal/besttrack"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	frozen := time.Date(2020, 11, 16, 12, 0, 0, 0, time.UTC)
	besttrack.SetClock(clockwork.NewFakeClockAt(frozen))
	defer besttrack.SetClock(nil)

	file := besttrack.StormFile{
		Header: besttrack.Header{ID: "AL312020", Name: "IOTA", TrackNumber: "26"},
		Path:   "single_TC/AL312020_IOTA_26.txt",
		Lines:  27,
	}

	msg, err := serializeToMessage(file)
	require.NoError(t, err)

	assert.Equal(t, []byte("AL312020"), msg.Key)
	assert.JSONEq(t,
		`{"storm_id":"AL312020","name":"IOTA","track_number":"26","path":"single_TC/AL312020_IOTA_26.txt","lines":27,"processed_at":"2020-11-16T12:00:00Z"}`,
		string(msg.Value))

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "storm_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("AL312020"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2020-11-16T12:00:00Z"), msg.Headers[1].Value)
}
