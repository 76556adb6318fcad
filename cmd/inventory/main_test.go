package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_ArchiveSubcommands(t *testing.T) {
	archive := newApp().Command("archive")
	require.NotNil(t, archive)

	var names []string
	for _, sub := range archive.Subcommands {
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"list", "get"}, names)
}

func TestArchiveGet_RequiresKey(t *testing.T) {
	err := newApp().Run([]string{"inventory", "archive", "get"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a KEY")
}

func TestArchiveList_RejectsBadDate(t *testing.T) {
	err := newApp().Run([]string{"inventory", "archive", "list", "--date", "yesterday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --date")
}
