package campaign

import (
	"time"

	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/core"
)

// EventKind identifies a campaign event.
type EventKind int

const (
	EventRoundCleared EventKind = iota
	EventPlayerDied
	EventBossDefeated
	EventCampaignComplete
)

func (k EventKind) String() string {
	switch k {
	case EventRoundCleared:
		return "round_cleared"
	case EventPlayerDied:
		return "player_died"
	case EventBossDefeated:
		return "boss_defeated"
	case EventCampaignComplete:
		return "campaign_complete"
	default:
		return "unknown"
	}
}

// Event is delivered to a Listener.
type Event struct {
	Kind     EventKind
	Round    int
	Snapshot Snapshot
	Summary  *Summary // set on EventCampaignComplete
}

// Listener observes campaign events. It runs synchronously inside Step.
type Listener func(Event)

// Summary is the end-of-campaign record.
type Summary struct {
	Player   string
	Elapsed  time.Duration
	Best     time.Duration
	NewBest  bool
	Practice bool // started past round 1, not recorded
	Final    Snapshot
}

// Hooks receives presentation cues. Implementations must return quickly;
// the game never waits on them and their effects never change combat.
type Hooks interface {
	Shot(pos core.Vec, power combat.Power)
	Hit(pos core.Vec, damage int)
	Shake(strength float64)
	Telegraph(pos core.Vec)
	BossDying(pos core.Vec)
	Banner(text string)
}

// NopHooks ignores every cue.
type NopHooks struct{}

func (NopHooks) Shot(core.Vec, combat.Power) {}
func (NopHooks) Hit(core.Vec, int)           {}
func (NopHooks) Shake(float64)               {}
func (NopHooks) Telegraph(core.Vec)          {}
func (NopHooks) BossDying(core.Vec)          {}
func (NopHooks) Banner(string)               {}
