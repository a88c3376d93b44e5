// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/clickgrow/growcore/pkg/domain"
)

// Reset schedules for periodic challenges, in standard 5-field cron syntax.
const (
	DailyResetSpec   = "0 0 * * *"
	WeeklyResetSpec  = "0 0 * * 1"
	MonthlyResetSpec = "0 0 1 * *"
)

var resetSchedules = map[domain.ChallengeType]cron.Schedule{
	domain.ChallengeTypeDaily:   mustParse(DailyResetSpec),
	domain.ChallengeTypeWeekly:  mustParse(WeeklyResetSpec),
	domain.ChallengeTypeMonthly: mustParse(MonthlyResetSpec),
}

func mustParse(spec string) cron.Schedule {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		panic(fmt.Sprintf("invalid reset spec %q: %v", spec, err))
	}
	return sched
}

// StartOfDay returns local midnight of t's calendar date in loc.
//
// Example (loc = Europe/Berlin):
//   - Input: 2025-10-17 14:23:45 +0200
//   - Output: 2025-10-17 00:00:00 +0200
//
// Calendar arithmetic is used instead of Truncate so DST days keep their local midnight.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfISOWeek returns Monday 00:00 of t's ISO week in loc.
// A Sunday belongs to the week that started six days earlier.
func StartOfISOWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0 ... Sunday = 6
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of t's month at 00:00 in loc.
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

// PeriodStart returns the start of the current window for a periodic challenge type.
// Non-periodic types return the zero time.
func PeriodStart(ct domain.ChallengeType, t time.Time, loc *time.Location) time.Time {
	switch ct {
	case domain.ChallengeTypeDaily:
		return StartOfDay(t, loc)
	case domain.ChallengeTypeWeekly:
		return StartOfISOWeek(t, loc)
	case domain.ChallengeTypeMonthly:
		return StartOfMonth(t, loc)
	default:
		return time.Time{}
	}
}

// NextReset returns the next boundary strictly after now for a periodic challenge type.
// ok is false for non-periodic types.
func NextReset(ct domain.ChallengeType, now time.Time, loc *time.Location) (next time.Time, ok bool) {
	sched, ok := resetSchedules[ct]
	if !ok {
		return time.Time{}, false
	}
	return sched.Next(now.In(loc)), true
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// FormatDuration renders a countdown the way the game shows it: "2d 3h", "4h 12m", "35s".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	d = d.Round(time.Second)

	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
