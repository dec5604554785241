package boards

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBoardsFile(t *testing.T, directory string, name string, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(directory, name), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoadDirectory(t *testing.T) {
	directory := t.TempDir()

	writeBoardsFile(t, directory, "home.yaml", `
name: home
stop: "de:09162:6"
destination-stop: "de:09184:460"
lines: [U3, U6]
destinations: [Garching]
lookahead: PT1H
---
name: work
stop: "de:09162:70"
identifier: work-board
`)
	// non-yaml files are skipped
	writeBoardsFile(t, directory, "README.md", "not a board")

	boardSet, err := LoadDirectory(directory)
	require.NoError(t, err)
	require.Len(t, boardSet.All(), 2)

	home := boardSet.Lookup("de:09162:6_de:09184:460_home")
	require.NotNil(t, home)
	assert.Equal(t, []string{"U3", "U6"}, home.Lines)
	assert.Equal(t, []string{"Garching"}, home.Destinations)

	work := boardSet.Lookup("work-board")
	require.NotNil(t, work)
	assert.Equal(t, "de:09162:70", work.Stop)

	assert.Nil(t, boardSet.Lookup("missing"))
}

func TestLoadDirectoryRejectsBoardWithoutStop(t *testing.T) {
	directory := t.TempDir()

	writeBoardsFile(t, directory, "broken.yaml", `
name: broken
lines: [U3]
`)

	_, err := LoadDirectory(directory)
	assert.Error(t, err)
}

func TestBoardIdentifierFallback(t *testing.T) {
	board := &Board{Name: "home", Stop: "de:09162:6"}
	assert.Equal(t, "de:09162:6_none_home", board.BoardIdentifier())

	board.DestinationStop = "de:09184:460"
	assert.Equal(t, "de:09162:6_de:09184:460_home", board.BoardIdentifier())

	board.Identifier = "explicit"
	assert.Equal(t, "explicit", board.BoardIdentifier())
}

func TestRequestAt(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	board := &Board{
		Name:            "home",
		Stop:            "de:09162:6",
		DestinationStop: "de:09184:460",
		Lines:           []string{"U3"},
		Destinations:    []string{"Garching"},
		Filter:          `DelayMinutes < 10`,
		Lookahead:       "PT1H",
	}

	request, err := board.RequestAt(now)
	require.NoError(t, err)

	assert.Equal(t, "de:09162:6", request.StopID)
	assert.Equal(t, "de:09184:460", request.DestinationStopID)
	assert.Equal(t, []string{"U3"}, request.LineFilter)
	assert.Equal(t, []string{"Garching"}, request.DestinationFilter)
	assert.NotNil(t, request.Filter)
	assert.Equal(t, time.Hour, request.Lookahead)
	assert.Equal(t, board.BoardIdentifier(), request.Identifier)
}

func TestRequestAtDefaults(t *testing.T) {
	board := &Board{Name: "plain", Stop: "de:09162:6"}

	request, err := board.RequestAt(time.Now())
	require.NoError(t, err)

	assert.Nil(t, request.Filter)
	assert.Zero(t, request.Lookahead)
	assert.Equal(t, 2*time.Hour, request.LookaheadWindow())
}

func TestRequestAtInvalidFilter(t *testing.T) {
	board := &Board{Name: "broken", Stop: "de:09162:6", Filter: "NotAField >"}

	_, err := board.RequestAt(time.Now())
	assert.Error(t, err)
}

func TestRequestAtInvalidLookahead(t *testing.T) {
	board := &Board{Name: "broken", Stop: "de:09162:6", Lookahead: "two hours"}

	_, err := board.RequestAt(time.Now())
	assert.Error(t, err)
}
