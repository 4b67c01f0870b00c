package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilChimeFails(t *testing.T) {
	var chime *Chime
	assert.ErrorIs(t, chime.Play(), ErrSoundInitializationFailed)
	assert.ErrorIs(t, (&Chime{}).Play(), ErrSoundInitializationFailed)
}

func TestChimeCommandsDeclared(t *testing.T) {
	for _, command := range chimeCommands() {
		assert.NotEmpty(t, command)
	}
}
