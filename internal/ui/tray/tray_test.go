package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restbreak/internal/core/model"
	"restbreak/internal/core/scheduler"
)

func TestSetHistoryFillsRecentSubmenu(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.True(t, manager.recentItem.Disabled)

	manager.SetHistory("Breaks today: 1/2 rested (20s)", []string{"09:41 fixed, 20s completed", "09:21 fixed, 20s skipped"})

	assert.Equal(t, "Breaks today: 1/2 rested (20s)", manager.historyItem.Label)
	assert.False(t, manager.recentItem.Disabled)
	require.Len(t, manager.recentItem.ChildMenu.Items, 2)
	assert.Equal(t, "09:41 fixed, 20s completed", manager.recentItem.ChildMenu.Items[0].Label)
	assert.True(t, manager.recentItem.ChildMenu.Items[1].Disabled)

	manager.SetHistory("Breaks today: 0/0 rested (0s)", nil)
	assert.Empty(t, manager.recentItem.ChildMenu.Items)
	assert.True(t, manager.recentItem.Disabled)
}

func TestTechniqueItemsReportSelection(t *testing.T) {
	var selected []model.Technique
	manager := New(nil, Callbacks{
		OnSelectTechnique: func(technique model.Technique) {
			selected = append(selected, technique)
		},
	})

	manager.techniqueItems[model.TechniquePomodoro].Action()
	manager.techniqueItems[model.TechniqueCustom].Action()
	assert.Equal(t, []model.Technique{model.TechniquePomodoro, model.TechniqueCustom}, selected)

	manager.SetTechnique(model.TechniquePomodoro)
	assert.True(t, manager.techniqueItems[model.TechniquePomodoro].Checked)
	assert.False(t, manager.techniqueItems[model.TechniqueCustom].Checked)
}

func TestPhaseLabels(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.Equal(t, "Start", manager.startStopItem.Label)
	assert.True(t, manager.pauseItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)

	manager.phase = scheduler.PhasePaused
	manager.applyPhase()
	assert.Equal(t, "Stop", manager.startStopItem.Label)
	assert.Equal(t, "Resume", manager.pauseItem.Label)
	assert.False(t, manager.pauseItem.Disabled)
	assert.True(t, manager.skipItem.Disabled)
}
