package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/couchcryptid/storm-track-splitter/internal/besttrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, generate(&a, 3, 8, 2020, 7))
	require.NoError(t, generate(&b, 3, 8, 2020, 7))
	assert.Equal(t, a.String(), b.String())
}

func TestGenerateOutputSplitsCleanly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate(&buf, 2, 4, 2020, 1))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2*(4+1), "one header plus four fixes per storm")

	headers := 0
	for _, line := range lines {
		if h, ok := besttrack.ParseHeader(line); ok {
			headers++
			name, err := h.Filename()
			require.NoError(t, err)
			assert.Contains(t, name, h.ID)
		} else {
			assert.True(t, besttrack.IsDataLine(line), "non-header line must be a fix record: %q", line)
		}
	}
	assert.Equal(t, 2, headers)
}
