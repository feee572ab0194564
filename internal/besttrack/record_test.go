package besttrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	t.Run("plain header", func(t *testing.T) {
		h, ok := ParseHeader("AL012020, Ana , 1")
		require.True(t, ok)
		assert.Equal(t, "AL012020", h.ID)
		assert.Equal(t, "Ana", h.Name)
		assert.Equal(t, "1", h.TrackNumber)
	})

	t.Run("padded HURDAT2 header", func(t *testing.T) {
		h, ok := ParseHeader("AL312020,            IOTA,     26,\n")
		require.True(t, ok)
		assert.Equal(t, "AL312020", h.ID)
		assert.Equal(t, "IOTA", h.Name)
		assert.Equal(t, "26", h.TrackNumber)
	})

	t.Run("internal whitespace stripped from name only", func(t *testing.T) {
		h, ok := ParseHeader("EP092015, Two  Part Name , 7 ")
		require.True(t, ok)
		assert.Equal(t, "TwoPartName", h.Name)
		assert.Equal(t, "7", h.TrackNumber)
	})

	t.Run("trailing newline trimmed from third field", func(t *testing.T) {
		h, ok := ParseHeader("AL022020, Bea , 1\n")
		require.True(t, ok)
		assert.Equal(t, "1", h.TrackNumber)
	})

	cases := []struct {
		name string
		line string
	}{
		{"empty first field", "  , foo, bar"},
		{"lowercase basin", "al012020, Ana, 1"},
		{"too few digits", "AL01202, Ana, 1"},
		{"fix record", "20200916, 1200,  , HU, 13.4N, 82.7W"},
		{"fewer than three fields", "AL012020, Ana"},
		{"empty line", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name+" is not a header", func(t *testing.T) {
			_, ok := ParseHeader(tc.line)
			assert.False(t, ok)
		})
	}
}

func TestHeaderFilename(t *testing.T) {
	t.Run("deterministic naming", func(t *testing.T) {
		h, ok := ParseHeader("AL012020, Ana , 1 ")
		require.True(t, ok)
		name, err := h.Filename()
		require.NoError(t, err)
		assert.Equal(t, "AL012020_Ana_1.txt", name)
	})

	t.Run("rejects path separators", func(t *testing.T) {
		h := Header{ID: "AL012020", Name: "Ana/../../etc", TrackNumber: "1"}
		_, err := h.Filename()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsafe filename component")
	})

	t.Run("rejects parent reference in track number", func(t *testing.T) {
		h := Header{ID: "AL012020", Name: "Ana", TrackNumber: ".."}
		_, err := h.Filename()
		require.Error(t, err)
	})

	t.Run("rejects NUL bytes", func(t *testing.T) {
		h := Header{ID: "AL012020", Name: "Ana\x00", TrackNumber: "1"}
		_, err := h.Filename()
		require.Error(t, err)
	})
}

func TestIsDataLine(t *testing.T) {
	assert.True(t, IsDataLine("20201116, 0000,  , HU, 13.4N, 82.7W, 135,  920"))
	assert.False(t, IsDataLine("AL312020,            IOTA,     26,"))
	assert.False(t, IsDataLine("2020111, 0000, short date"))
	assert.False(t, IsDataLine(""))
}

func TestStatus(t *testing.T) {
	code, ok := Status("20201116, 0000,  , HU, 13.4N, 82.7W, 135,  920")
	require.True(t, ok)
	assert.Equal(t, "HU", code)

	_, ok = Status("20201116, 0000,  ,  , 13.4N, 82.7W")
	assert.False(t, ok, "empty status field")

	_, ok = Status("AL312020,            IOTA,     26,")
	assert.False(t, ok, "header line")

	_, ok = Status("20201116, 0000")
	assert.False(t, ok, "too few fields")
}
