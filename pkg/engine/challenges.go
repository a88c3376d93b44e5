package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clickgrow/growcore/pkg/cache"
	"github.com/clickgrow/growcore/pkg/common"
	"github.com/clickgrow/growcore/pkg/domain"
	"github.com/clickgrow/growcore/pkg/errors"
)

// Event is one progress signal routed to increment challenges.
type Event struct {
	Source domain.EventSource
	Code   string
}

// ChallengeOutcome collects what a progress update completed.
type ChallengeOutcome struct {
	Completed []*domain.ChallengeDefinition
	LevelUps  []domain.LevelUp
}

func (o *ChallengeOutcome) merge(other ChallengeOutcome) {
	o.Completed = append(o.Completed, other.Completed...)
	o.LevelUps = append(o.LevelUps, other.LevelUps...)
}

// ChallengeStats summarizes the challenge catalog against a player.
type ChallengeStats struct {
	Total        int                          `json:"total"`
	Completed    int                          `json:"completed"`
	Active       int                          `json:"active"`
	Completions  int                          `json:"completions"`
	ByType       map[domain.ChallengeType]int `json:"byType"`
	ByDifficulty map[int]int                  `json:"byDifficulty"`
}

// ActiveChallenge pairs a definition with its current progress record.
type ActiveChallenge struct {
	Definition *domain.ChallengeDefinition
	Progress   domain.ChallengeProgress
}

// ChallengeManager drives challenge activation, progress, completion and periodic resets.
//
// Progress records are created lazily the first time a challenge is looked at.
// Periodic challenges (daily, weekly, monthly) cycle back to active with current=0
// at the start of their next period. One-time challenges complete permanently.
type ChallengeManager struct {
	catalog     cache.CatalogCache
	progression *Progression
	location    *time.Location
	logger      *slog.Logger
}

// NewChallengeManager creates a manager. Period boundaries are computed in loc.
func NewChallengeManager(catalog cache.CatalogCache, progression *Progression, loc *time.Location, logger *slog.Logger) *ChallengeManager {
	if loc == nil {
		loc = time.Local
	}
	return &ChallengeManager{
		catalog:     catalog,
		progression: progression,
		location:    loc,
		logger:      logger,
	}
}

// ActiveChallenges expires challenges whose window elapsed and returns the
// active ones in catalog order.
func (m *ChallengeManager) ActiveChallenges(p *domain.PlayerState, now time.Time) []ActiveChallenge {
	var active []ActiveChallenge
	for _, def := range m.catalog.GetAllChallenges() {
		prog := m.refresh(p, def, now)
		if prog == nil || !prog.IsActive() {
			continue
		}
		if def.Type.IsPeriodic() && prog.ActivatedAt.Before(common.PeriodStart(def.Type, now, m.location)) {
			// stale until the next CheckAndApplyResets
			continue
		}
		active = append(active, ActiveChallenge{Definition: def, Progress: *prog})
	}
	return active
}

// RecordProgress adds delta to challenge id. Inactive challenges are left untouched.
// The challenge completes, and pays its rewards, the first time current reaches target.
func (m *ChallengeManager) RecordProgress(p *domain.PlayerState, id string, delta int64, now time.Time) (ChallengeOutcome, error) {
	def := m.catalog.GetChallenge(id)
	if def == nil {
		return ChallengeOutcome{}, errors.ErrUnknownChallenge(id)
	}
	if delta < 1 {
		return ChallengeOutcome{}, errors.ErrInvalidInput("challenge progress delta must be at least 1")
	}
	return m.increment(p, def, delta, false, now), nil
}

// SetProgress overwrites the current value of challenge id, for metric-mirroring challenges.
func (m *ChallengeManager) SetProgress(p *domain.PlayerState, id string, value int64, now time.Time) (ChallengeOutcome, error) {
	def := m.catalog.GetChallenge(id)
	if def == nil {
		return ChallengeOutcome{}, errors.ErrUnknownChallenge(id)
	}
	if value < 0 {
		return ChallengeOutcome{}, errors.ErrInvalidInput("challenge progress cannot be negative")
	}

	prog := m.refresh(p, def, now)
	if prog == nil || !prog.IsActive() {
		return ChallengeOutcome{}, nil
	}
	prog.Current = value
	return m.completeIfReached(p, def, prog, now), nil
}

// HandleEvent adds one unit of progress to every increment challenge fed by ev.
// Challenges tracked once per day ignore repeats within the same local day.
func (m *ChallengeManager) HandleEvent(p *domain.PlayerState, ev Event, now time.Time) ChallengeOutcome {
	var out ChallengeOutcome
	for _, def := range m.catalog.GetChallengesBySource(ev.Source, ev.Code) {
		out.merge(m.increment(p, def, 1, true, now))
	}
	return out
}

// SyncAbsolute copies the tracked metric into every active absolute challenge.
func (m *ChallengeManager) SyncAbsolute(p *domain.PlayerState, now time.Time) ChallengeOutcome {
	var out ChallengeOutcome
	for _, def := range m.catalog.GetAbsoluteChallenges() {
		prog := m.refresh(p, def, now)
		if prog == nil || !prog.IsActive() {
			continue
		}
		value := statValue(def.Tracking.Code, p)
		if value == prog.Current {
			continue
		}
		prog.Current = value
		out.merge(m.completeIfReached(p, def, prog, now))
	}
	return out
}

// CheckAndApplyResets restarts every periodic family whose reset marker predates the
// current day, ISO week or month. It returns the types that were reset.
func (m *ChallengeManager) CheckAndApplyResets(p *domain.PlayerState, now time.Time) []domain.ChallengeType {
	var reset []domain.ChallengeType
	markers := []struct {
		typ    domain.ChallengeType
		marker *time.Time
	}{
		{domain.ChallengeTypeDaily, &p.Challenges.LastReset.Daily},
		{domain.ChallengeTypeWeekly, &p.Challenges.LastReset.Weekly},
		{domain.ChallengeTypeMonthly, &p.Challenges.LastReset.Monthly},
	}

	for _, mk := range markers {
		if !mk.marker.Before(common.PeriodStart(mk.typ, now, m.location)) {
			continue
		}
		for _, def := range m.catalog.GetChallengesByType(mk.typ) {
			p.Challenges.Progress[def.ID] = &domain.ChallengeProgress{
				Status:      domain.ChallengeStatusActive,
				ActivatedAt: now,
			}
		}
		*mk.marker = now
		reset = append(reset, mk.typ)
		m.logger.Info("Challenges reset", "type", mk.typ)
	}
	return reset
}

// TimeLeft returns the time until challenge def stops accepting progress.
// Periodic challenges end at their next reset. ok is false for challenges without an end.
func (m *ChallengeManager) TimeLeft(def *domain.ChallengeDefinition, p *domain.PlayerState, now time.Time) (left time.Duration, ok bool) {
	if next, periodic := common.NextReset(def.Type, now, m.location); periodic {
		return next.Sub(now), true
	}
	if def.DurationMs == nil {
		return 0, false
	}
	start := now
	if prog := p.Challenges.Progress[def.ID]; prog != nil {
		start = prog.ActivatedAt
	}
	left = start.Add(time.Duration(*def.DurationMs) * time.Millisecond).Sub(now)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Stats counts the catalog by type and difficulty together with the player's completion state.
func (m *ChallengeManager) Stats(p *domain.PlayerState, now time.Time) ChallengeStats {
	stats := ChallengeStats{
		Active:       len(m.ActiveChallenges(p, now)),
		Completions:  len(p.Challenges.History),
		ByType:       make(map[domain.ChallengeType]int),
		ByDifficulty: make(map[int]int),
	}
	for _, def := range m.catalog.GetAllChallenges() {
		stats.Total++
		stats.ByType[def.Type]++
		stats.ByDifficulty[def.Difficulty]++

		if prog := p.Challenges.Progress[def.ID]; prog != nil && prog.IsCompleted() {
			stats.Completed++
		} else if def.IsOneTime() && p.HasCompletedOneTime(def.ID) {
			stats.Completed++
		}
	}
	return stats
}

// refresh returns the progress record of def, creating it on first sight and
// marking it expired once its window closed. It returns nil for a one-time
// challenge that completed in an earlier record.
func (m *ChallengeManager) refresh(p *domain.PlayerState, def *domain.ChallengeDefinition, now time.Time) *domain.ChallengeProgress {
	prog := p.Challenges.Progress[def.ID]
	if prog == nil {
		if def.IsOneTime() && p.HasCompletedOneTime(def.ID) {
			return nil
		}
		prog = &domain.ChallengeProgress{
			Status:      domain.ChallengeStatusActive,
			ActivatedAt: now,
		}
		p.Challenges.Progress[def.ID] = prog
	}

	if prog.IsActive() && def.DurationMs != nil {
		deadline := prog.ActivatedAt.Add(time.Duration(*def.DurationMs) * time.Millisecond)
		if deadline.Before(now) {
			prog.Status = domain.ChallengeStatusExpired
			m.logger.Info("Challenge expired", "challenge_id", def.ID)
		}
	}
	return prog
}

// increment adds delta to an active challenge. fromEvent applies the once-per-day
// limit of daily-tracked challenges; explicit progress is never throttled.
func (m *ChallengeManager) increment(p *domain.PlayerState, def *domain.ChallengeDefinition, delta int64, fromEvent bool, now time.Time) ChallengeOutcome {
	prog := m.refresh(p, def, now)
	if prog == nil || !prog.IsActive() {
		return ChallengeOutcome{}
	}
	if fromEvent && def.Tracking.Daily && prog.LastIncrementAt != nil && common.SameDay(*prog.LastIncrementAt, now, m.location) {
		return ChallengeOutcome{}
	}

	prog.Current += delta
	at := now
	prog.LastIncrementAt = &at
	return m.completeIfReached(p, def, prog, now)
}

func (m *ChallengeManager) completeIfReached(p *domain.PlayerState, def *domain.ChallengeDefinition, prog *domain.ChallengeProgress, now time.Time) ChallengeOutcome {
	if prog.Current < def.Target {
		return ChallengeOutcome{}
	}

	completedAt := now
	prog.Status = domain.ChallengeStatusCompleted
	prog.CompletedAt = &completedAt

	p.Challenges.History = append(p.Challenges.History, domain.CompletionRecord{
		ID:          uuid.NewString(),
		ChallengeID: def.ID,
		ActivatedAt: prog.ActivatedAt,
		CompletedAt: completedAt,
	})
	if def.IsOneTime() && !p.HasCompletedOneTime(def.ID) {
		p.Challenges.CompletedOneTime = append(p.Challenges.CompletedOneTime, def.ID)
	}

	m.logger.Info("Challenge completed",
		"challenge_id", def.ID,
		"type", def.Type,
		"target", def.Target,
	)

	return ChallengeOutcome{
		Completed: []*domain.ChallengeDefinition{def},
		LevelUps:  m.progression.Grant(p, def.Rewards),
	}
}

// statValue reads the player metric named by an absolute challenge's tracking code.
func statValue(code string, p *domain.PlayerState) int64 {
	switch code {
	case domain.StatLevel:
		return int64(p.Level)
	case domain.StatCoins:
		return p.Coins
	case domain.StatGems:
		return p.Gems
	case domain.StatTotalActions:
		return p.TotalActions()
	case domain.StatTotalExperience:
		return p.TotalExperience
	}
	if action, ok := strings.CutPrefix(code, domain.StatActionPrefix); ok {
		return p.ActionCounts[domain.ActionType(action)]
	}
	return 0
}
