package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonaPeakHours(t *testing.T) {
	assert.Equal(t, []int{9, 12, 17, 20}, PersonaGeneral.PeakHours())
	assert.Equal(t, []int{7, 15, 19, 22}, PersonaStudent.PeakHours())
	assert.Equal(t, []int{6, 12, 18, 21}, PersonaWorker.PeakHours())
	assert.Equal(t, []int{12, 18, 21, 23}, PersonaNightOwl.PeakHours())
}

func TestPersonaUnknownFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, PersonaGeneral.PeakHours(), Persona("astronaut").PeakHours())
	assert.False(t, Persona("astronaut").IsValid())
	assert.True(t, PersonaNightOwl.IsValid())
}

func TestPeakHoursReturnsCopy(t *testing.T) {
	hours := PersonaGeneral.PeakHours()
	hours[0] = 0
	assert.Equal(t, []int{9, 12, 17, 20}, PersonaGeneral.PeakHours())
}
