package scheduler

// Persona is an audience profile with a fixed set of peak engagement hours.
type Persona string

const (
	PersonaGeneral  Persona = "general"
	PersonaStudent  Persona = "student"
	PersonaWorker   Persona = "worker"
	PersonaNightOwl Persona = "night_owl"
)

var personaPeakHours = map[Persona][]int{
	PersonaGeneral:  {9, 12, 17, 20},
	PersonaStudent:  {7, 15, 19, 22},
	PersonaWorker:   {6, 12, 18, 21},
	PersonaNightOwl: {12, 18, 21, 23},
}

// PeakHours returns the hours of day (0-23) where engagement is assumed
// highest for the persona. Unknown personas fall back to the general profile.
func (p Persona) PeakHours() []int {
	hours, ok := personaPeakHours[p]
	if !ok {
		hours = personaPeakHours[PersonaGeneral]
	}
	out := make([]int, len(hours))
	copy(out, hours)
	return out
}

func (p Persona) IsValid() bool {
	_, ok := personaPeakHours[p]
	return ok
}
