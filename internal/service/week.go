package service

import (
	"sort"
	"time"

	"video-hub/internal/models"

	"github.com/rs/zerolog"
)

// WeekOf returns the ISO-8601 week bucket of day: weeks start on Monday and
// week 1 is the one holding the year's first Thursday. The year returned is
// the ISO week-numbering year, so 2024-12-30 falls in week 1 of 2025.
func WeekOf(day time.Time) (week, year int) {
	year, week = day.ISOWeek()
	return week, year
}

// FilterByWeek keeps the videos whose day falls in the given ISO week and
// returns them ordered by day. Videos with an unparsable day are skipped.
func FilterByWeek(videos []models.VideoResponse, week, year int, logger zerolog.Logger) []models.VideoResponse {
	type dated struct {
		day   time.Time
		video models.VideoResponse
	}

	var matched []dated
	for _, v := range videos {
		day, err := time.Parse(models.DayLayout, v.Day)
		if err != nil {
			logger.Warn().Str("video_id", v.ID).Str("day", v.Day).Msg("skipping video with malformed day")
			continue
		}
		if w, y := WeekOf(day); w == week && y == year {
			matched = append(matched, dated{day: day, video: v})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].day.Before(matched[j].day)
	})

	out := make([]models.VideoResponse, len(matched))
	for i, m := range matched {
		out[i] = m.video
	}
	return out
}
