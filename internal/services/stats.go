package services

import (
	"math"

	"github.com/emofit/emofit-server/internal/model"
)

// ComputeMoodStats builds the trend list and scalar average for an
// ascending-ordered window of entries. Pure function: no I/O, no clock.
//
// The trend is deliberately not resampled to one point per calendar day;
// a user who logs twice in a day gets two points with the same date.
func ComputeMoodStats(entries []*model.JournalEntry) model.MoodStats {
	trend := make([]model.TrendPoint, 0, len(entries))
	sum := 0
	for _, e := range entries {
		trend = append(trend, model.TrendPoint{
			Date:      e.Date.UTC().Format("2006-01-02"),
			Mood:      e.Mood,
			Gratitude: e.Gratitude,
		})
		sum += e.Mood
	}

	avg := 0.0
	if len(entries) > 0 {
		avg = math.Round(float64(sum)/float64(len(entries))*100) / 100
	}

	return model.MoodStats{
		MoodTrend:    trend,
		AverageMood:  avg,
		TotalEntries: len(entries),
	}
}
