package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTechnique(t *testing.T) {
	tests := []struct {
		name string
		want Technique
		ok   bool
	}{
		{name: "20-20-20 Rule", want: TechniqueFixedInterval, ok: true},
		{name: " 20-20-20 ", want: TechniqueFixedInterval, ok: true},
		{name: "Pomodoro Technique", want: TechniquePomodoro, ok: true},
		{name: "POMODORO", want: TechniquePomodoro, ok: true},
		{name: "custom", want: TechniqueCustom, ok: true},
		{name: "", want: TechniqueUnset, ok: false},
		{name: "52-17", want: TechniqueUnset, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTechnique(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTechniqueString(t *testing.T) {
	assert.Equal(t, "Unset", TechniqueUnset.String())
	assert.Equal(t, "Custom", TechniqueCustom.String())
}
