// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"testing"
	"time"

	"github.com/clickgrow/growcore/pkg/domain"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s not available: %v", name, err)
	}
	return loc
}

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "afternoon",
			input:    time.Date(2025, 10, 17, 14, 23, 45, 123456789, time.UTC),
			expected: time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "already midnight",
			input:    time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "just before midnight",
			input:    time.Date(2025, 10, 17, 23, 59, 59, 999999999, time.UTC),
			expected: time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfDay(tt.input, time.UTC)
			if !result.Equal(tt.expected) {
				t.Errorf("StartOfDay() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStartOfDay_LocalCalendarDate(t *testing.T) {
	loc := mustLoad(t, "America/New_York")

	// 02:30 UTC on the 18th is still the evening of the 17th in New York
	input := time.Date(2025, 10, 18, 2, 30, 0, 0, time.UTC)
	result := StartOfDay(input, loc)

	expected := time.Date(2025, 10, 17, 0, 0, 0, 0, loc)
	if !result.Equal(expected) {
		t.Errorf("StartOfDay() = %v, want %v", result, expected)
	}
}

func TestStartOfDay_DSTTransition(t *testing.T) {
	loc := mustLoad(t, "Europe/Berlin")

	// 2025-03-30 has 23 hours in Berlin
	input := time.Date(2025, 3, 30, 20, 0, 0, 0, loc)
	result := StartOfDay(input, loc)

	if result.Hour() != 0 || result.Day() != 30 {
		t.Errorf("StartOfDay() = %v, want local midnight of March 30", result)
	}
}

func TestStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "monday",
			input:    time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "wednesday",
			input:    time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday belongs to previous monday",
			input:    time.Date(2025, 10, 19, 23, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "week spanning a month boundary",
			input:    time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfISOWeek(tt.input, time.UTC)
			if !result.Equal(tt.expected) {
				t.Errorf("StartOfISOWeek() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	input := time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)
	expected := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	if result := StartOfMonth(input, time.UTC); !result.Equal(expected) {
		t.Errorf("StartOfMonth() = %v, want %v", result, expected)
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ct       domain.ChallengeType
		expected time.Time
	}{
		{domain.ChallengeTypeDaily, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)},
		{domain.ChallengeTypeWeekly, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)},
		{domain.ChallengeTypeMonthly, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
		{domain.ChallengeTypeSpecial, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			if result := PeriodStart(tt.ct, now, time.UTC); !result.Equal(tt.expected) {
				t.Errorf("PeriodStart(%s) = %v, want %v", tt.ct, result, tt.expected)
			}
		})
	}
}

func TestNextReset(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		ct       domain.ChallengeType
		expected time.Time
		ok       bool
	}{
		{domain.ChallengeTypeDaily, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), true},
		{domain.ChallengeTypeWeekly, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), true},
		{domain.ChallengeTypeMonthly, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), true},
		{domain.ChallengeTypeAchievement, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.ct), func(t *testing.T) {
			next, ok := NextReset(tt.ct, now, time.UTC)
			if ok != tt.ok {
				t.Fatalf("NextReset(%s) ok = %v, want %v", tt.ct, ok, tt.ok)
			}
			if !next.Equal(tt.expected) {
				t.Errorf("NextReset(%s) = %v, want %v", tt.ct, next, tt.expected)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 10, 17, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 10, 17, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b, time.UTC) {
		t.Error("SameDay(a, b) = false, want true")
	}
	if SameDay(b, c, time.UTC) {
		t.Error("SameDay(b, c) = true, want false")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "0s"},
		{35 * time.Second, "35s"},
		{2*time.Minute + 5*time.Second, "2m 5s"},
		{4*time.Hour + 12*time.Minute, "4h 12m"},
		{51 * time.Hour, "2d 3h"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.in); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
