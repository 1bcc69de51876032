// Package generation produces plausible diary data for demos and layout
// checks.
package generation

import (
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/somnus/internal/domain"
)

var sampleMemos = []string{
	"よく眠れた。",
	"少し途中覚醒があった。",
	"夢を見た。",
	"朝スッキリ目覚めた。",
	"なかなか寝付けなかった。",
	"",
}

var quarterHours = []int{0, 15, 30, 45}

// SampleMonth returns one generated entry per day of month. The same seed
// always yields the same month. UserID is left for the caller to set.
func SampleMonth(month domain.Month, seed uint64) []*domain.SleepLog {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	logs := make([]*domain.SleepLog, 0, month.Days())
	for day := month.First(); !day.After(month.Last()); day = day.AddDate(0, 0, 1) {
		logs = append(logs, sampleNight(rng, day))
	}
	return logs
}

func sampleNight(rng *rand.Rand, date time.Time) *domain.SleepLog {
	sleepiness := 2 + rng.IntN(7)
	l := &domain.SleepLog{
		Date:       date,
		Sleepiness: &sleepiness,
		Memo:       sampleMemos[rng.IntN(len(sampleMemos))],
	}

	bed := date.Add(clock(22+rng.IntN(2), pick(rng, quarterHours)))
	wake := date.AddDate(0, 0, 1).Add(clock(6+rng.IntN(3), pick(rng, quarterHours)))
	l.Segments = append(l.Segments, segment(domain.SegmentInBed, bed, wake))

	// Deep, doze, awake, then deep until shortly before waking.
	start := bed.Add(15 * time.Minute)
	end := wake.Add(-15 * time.Minute)
	deepEnd := start.Add(2 * time.Hour)
	dozeEnd := deepEnd.Add(time.Hour)
	awakeEnd := dozeEnd.Add(30 * time.Minute)
	if !awakeEnd.Before(end) {
		l.Segments = append(l.Segments, segment(domain.SegmentDeep, start, end))
	} else {
		l.Segments = append(l.Segments,
			segment(domain.SegmentDeep, start, deepEnd),
			segment(domain.SegmentDoze, deepEnd, dozeEnd),
			segment(domain.SegmentAwake, dozeEnd, awakeEnd),
			segment(domain.SegmentDeep, awakeEnd, end),
		)
	}

	if rng.Float64() < 0.3 {
		napStart := date.Add(clock(13+rng.IntN(3), pick(rng, []int{0, 30})))
		napEnd := napStart.Add(time.Duration(pick(rng, []int{30, 60, 90})) * time.Minute)
		l.Segments = append(l.Segments, segment(domain.SegmentDoze, napStart, napEnd))
	}

	if rng.Float64() < 0.3 {
		l.Events = append(l.Events, event(domain.EventSleepMed, bed.Add(-30*time.Minute)))
	}
	if rng.Float64() < 0.3 {
		at := date.AddDate(0, 0, 1).Add(clock(1+rng.IntN(4), pick(rng, []int{0, 30})))
		l.Events = append(l.Events, event(domain.EventToilet, at))
	}
	l.ToiletCount = l.CountToilets()
	return l
}

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

func pick(rng *rand.Rand, xs []int) int {
	return xs[rng.IntN(len(xs))]
}

func segment(kind domain.SegmentKind, from, to time.Time) domain.Segment {
	return domain.Segment{Kind: kind, StartAt: from.Format(domain.ClockLayout), EndAt: to.Format(domain.ClockLayout)}
}

func event(kind string, at time.Time) domain.Event {
	return domain.Event{Kind: kind, HappenedAt: at.Format(domain.ClockLayout)}
}
