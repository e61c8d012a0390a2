package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastValidate(t *testing.T) {
	t.Run("valid broadcast", func(t *testing.T) {
		b := Broadcast{Title: "Maintenance", Content: "API down at 22:00", Level: LevelWarning}
		assert.NoError(t, b.Validate())
	})

	t.Run("blank title", func(t *testing.T) {
		b := Broadcast{Title: "   ", Level: LevelInfo}
		assert.ErrorIs(t, b.Validate(), ErrTitleRequired)
	})

	t.Run("unknown level", func(t *testing.T) {
		b := Broadcast{Title: "x", Level: "critical"}
		assert.ErrorIs(t, b.Validate(), ErrUnknownLevel)
	})

	t.Run("zero value", func(t *testing.T) {
		b := Broadcast{}
		assert.Error(t, b.Validate())
		assert.False(t, b.Archived)
		assert.Equal(t, int64(0), b.ID)
	})
}

func TestBroadcastScope(t *testing.T) {
	assert.Equal(t, "all", (&Broadcast{}).Scope())
	assert.Equal(t, "all", (&Broadcast{ProjectKey: " "}).Scope())
	assert.Equal(t, "PROJ", (&Broadcast{ProjectKey: "PROJ"}).Scope())
}

func TestBroadcastLevels(t *testing.T) {
	levels := BroadcastLevels()
	assert.Equal(t, []BroadcastLevel{{Key: "info", Value: "info"}, {Key: "warning", Value: "warning"}}, levels)
	assert.True(t, IsValidLevel("info"))
	assert.False(t, IsValidLevel(""))
}

func TestProjectChoices(t *testing.T) {
	t.Run("placeholder first and non-projects dropped", func(t *testing.T) {
		got := ProjectChoices([]NavbarProjectData{
			{Type: NavbarTypeProject, Name: "A"},
			{Type: NavbarTypeGroup, Name: "B"},
		})
		assert.Equal(t, []NavbarProjectData{
			{Type: NavbarTypeProject, Name: " "},
			{Type: NavbarTypeProject, Name: "A"},
		}, got)
	})

	t.Run("empty input keeps placeholder", func(t *testing.T) {
		got := ProjectChoices(nil)
		assert.Len(t, got, 1)
		assert.Equal(t, " ", got[0].Name)
	})
}
