package scheduler

import (
	"sort"
	"time"
)

// Quality grades how tightly slots had to be packed relative to the ideal
// spacing implied by the peak hours and the requested videos per day.
type Quality string

const (
	QualityOptimal    Quality = "optimal"
	QualityGood       Quality = "good"
	QualityCompressed Quality = "compressed"
	QualityTight      Quality = "tight"
)

// Config carries the scheduling constants. They are passed in explicitly
// rather than read from globals so the computation stays pure.
type Config struct {
	MaxVideosPerDay      int
	DayStartHour         int
	DayEndHour           int
	GoodIntervalMinutes  int
	TightIntervalMinutes int
}

func DefaultConfig() Config {
	return Config{
		MaxVideosPerDay:      10,
		DayStartHour:         6,
		DayEndHour:           23,
		GoodIntervalMinutes:  90,
		TightIntervalMinutes: 45,
	}
}

// Slot is one computed assignment of a video to a posting time.
type Slot struct {
	VideoIndex int       `json:"video_index"`
	At         time.Time `json:"at"`
}

type Request struct {
	VideoCount   int
	StartDate    time.Time
	VideosPerDay int
	Persona      Persona
	// CustomHours, when non-empty, take precedence over the persona's
	// built-in peak hours.
	CustomHours []int
	Now         time.Time
}

type Result struct {
	Slots           []Slot  `json:"slots"`
	TotalDays       int     `json:"total_days"`
	Quality         Quality `json:"quality"`
	IntervalMinutes int     `json:"interval_minutes"`
}

// Service computes batch posting schedules. It performs no I/O, reads no
// clocks and holds no state, so it is safe to invoke on every parameter
// change from any goroutine.
type Service struct {
	cfg Config
}

func New(cfg Config) *Service {
	if cfg.MaxVideosPerDay <= 0 {
		cfg.MaxVideosPerDay = DefaultConfig().MaxVideosPerDay
	}
	if cfg.DayEndHour <= cfg.DayStartHour {
		def := DefaultConfig()
		cfg.DayStartHour = def.DayStartHour
		cfg.DayEndHour = def.DayEndHour
	}
	return &Service{cfg: cfg}
}

// Compute assigns every video a posting time on or after the start date,
// capped at the requested videos per day, and grades the result. Identical
// inputs always produce identical output.
func (s *Service) Compute(req Request) Result {
	if req.VideoCount <= 0 {
		return Result{Slots: []Slot{}, TotalDays: 0, Quality: QualityOptimal}
	}

	perDay := req.VideosPerDay
	if perDay <= 0 {
		perDay = 1
	}
	if perDay > s.cfg.MaxVideosPerDay {
		perDay = s.cfg.MaxVideosPerDay
	}
	if perDay > req.VideoCount {
		perDay = req.VideoCount
	}

	baseHours := normalizeHours(req.CustomHours)
	if len(baseHours) == 0 {
		baseHours = req.Persona.PeakHours()
	}

	start := midnight(req.StartDate)
	if nowStart := midnight(req.Now); start.Before(nowStart) {
		start = nowStart
	}

	var (
		slots        []Slot
		interpolated bool
		videoIndex   int
	)

	remaining := req.VideoCount
	for day := 0; remaining > 0; day++ {
		dayDate := start.AddDate(0, 0, day)

		want := perDay
		if remaining < want {
			want = remaining
		}

		minutes, interp := s.dayMinutes(baseHours, want)
		if interp {
			interpolated = true
		}

		times := make([]time.Time, 0, len(minutes))
		for _, m := range minutes {
			at := dayDate.Add(time.Duration(m) * time.Minute)
			if at.Before(req.Now) {
				continue
			}
			times = append(times, at)
		}

		for _, at := range times {
			slots = append(slots, Slot{VideoIndex: videoIndex, At: at})
			videoIndex++
			remaining--
		}
	}

	interval := s.minSameDayGap(slots)

	return Result{
		Slots:           slots,
		TotalDays:       countDays(slots),
		Quality:         s.grade(interval, interpolated),
		IntervalMinutes: interval,
	}
}

// dayMinutes produces `want` minute-of-day values for a single day, drawn
// from the candidate hours. When more slots are requested than distinct
// hours exist, midpoints are inserted inside the waking window, largest gap
// first, which marks the day as compressed.
func (s *Service) dayMinutes(hours []int, want int) ([]int, bool) {
	if want <= len(hours) {
		return pickEven(hours, want), false
	}

	windowStart := s.cfg.DayStartHour * 60
	windowEnd := s.cfg.DayEndHour * 60

	minutes := make([]int, 0, want)
	for _, h := range hours {
		minutes = append(minutes, h*60)
	}
	if len(minutes) == 0 {
		minutes = append(minutes, (windowStart+windowEnd)/2)
	}

	for len(minutes) < want {
		lo, hi, ok := widestGap(minutes, windowStart, windowEnd)
		if !ok {
			// Window exhausted. Repeat the last time so every video still
			// gets a slot; the zero gap forces a tight grade.
			minutes = append(minutes, minutes[len(minutes)-1])
			continue
		}
		mid := (lo + hi) / 2
		at := sort.SearchInts(minutes, mid)
		minutes = append(minutes, 0)
		copy(minutes[at+1:], minutes[at:])
		minutes[at] = mid
	}

	return minutes, true
}

// widestGap finds the largest open span between scheduled minutes, treating
// the window edges as boundaries. Spans narrower than two minutes cannot
// hold a distinct midpoint and are skipped.
func widestGap(minutes []int, windowStart, windowEnd int) (lo, hi int, ok bool) {
	type span struct{ lo, hi int }
	spans := make([]span, 0, len(minutes)+1)

	if minutes[0] > windowStart {
		spans = append(spans, span{windowStart, minutes[0]})
	}
	for i := 0; i+1 < len(minutes); i++ {
		spans = append(spans, span{minutes[i], minutes[i+1]})
	}
	if minutes[len(minutes)-1] < windowEnd {
		spans = append(spans, span{minutes[len(minutes)-1], windowEnd})
	}

	best := span{}
	for _, sp := range spans {
		if sp.hi-sp.lo > best.hi-best.lo {
			best = sp
		}
	}
	if best.hi-best.lo < 2 {
		return 0, 0, false
	}
	return best.lo, best.hi, true
}

// pickEven selects `want` hours from the candidate list, spread as evenly as
// the list allows. A single video gets the first peak hour.
func pickEven(hours []int, want int) []int {
	if want >= len(hours) {
		out := make([]int, 0, want)
		for _, h := range hours {
			out = append(out, h*60)
		}
		return out
	}
	out := make([]int, 0, want)
	if want == 1 {
		return append(out, hours[0]*60)
	}
	step := float64(len(hours)-1) / float64(want-1)
	for i := 0; i < want; i++ {
		idx := int(float64(i)*step + 0.5)
		out = append(out, hours[idx]*60)
	}
	return out
}

func normalizeHours(hours []int) []int {
	seen := make(map[int]struct{}, len(hours))
	out := make([]int, 0, len(hours))
	for _, h := range hours {
		if h < 0 || h > 23 {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

func (s *Service) minSameDayGap(slots []Slot) int {
	windowMinutes := (s.cfg.DayEndHour - s.cfg.DayStartHour) * 60

	min := windowMinutes
	found := false
	for i := 0; i+1 < len(slots); i++ {
		a, b := slots[i], slots[i+1]
		if !sameDay(a.At, b.At) {
			continue
		}
		gap := int(b.At.Sub(a.At) / time.Minute)
		if !found || gap < min {
			min = gap
			found = true
		}
	}
	return min
}

// grade ranks the schedule. Interpolated slots sit outside the declared
// peak hours, so any interpolation caps the grade at compressed no matter
// how wide the interval came out. Losing day-0 hours to the current time
// does not degrade the grade on its own.
func (s *Service) grade(interval int, interpolated bool) Quality {
	switch {
	case interval < s.cfg.TightIntervalMinutes:
		return QualityTight
	case interpolated:
		return QualityCompressed
	case interval < s.cfg.GoodIntervalMinutes:
		return QualityGood
	default:
		return QualityOptimal
	}
}

func countDays(slots []Slot) int {
	days := 0
	for i, slot := range slots {
		if i == 0 || !sameDay(slots[i-1].At, slot.At) {
			days++
		}
	}
	return days
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
