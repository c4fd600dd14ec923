package campaign

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/park-guardian/internal/storage"
)

// Persisted keys.
const (
	KeyCompleted      = "gameCompleted"
	KeyFinalStats     = "finalStats"
	KeyRunTime        = "currentRunTime"
	KeyRunTimeSeconds = "currentRunTimeSeconds"
	KeyBestTime       = "bestRunTime"
	KeyBestSeconds    = "bestRunTimeSeconds"
	KeyTimePlayed     = "timePlayed"
	KeyMusicMuted     = "musicMuted"
	KeyMessageRead    = "messageRead"
)

// noBest is the stored best time before any completed run.
const noBest = 999999

// LoadoutKey returns the key of the snapshot saved when round n cleared.
func LoadoutKey(n int) string {
	return fmt.Sprintf("round%dLoadout", n)
}

// Keys lists every key the campaign writes for a campaign of the given
// number of rounds.
func Keys(rounds int) []string {
	keys := make([]string, 0, rounds+9)
	for n := 1; n <= rounds; n++ {
		keys = append(keys, LoadoutKey(n))
	}
	return append(keys,
		KeyCompleted, KeyFinalStats, KeyRunTime, KeyRunTimeSeconds,
		KeyBestTime, KeyBestSeconds, KeyTimePlayed, KeyMusicMuted, KeyMessageRead,
	)
}

// Records is the campaign's view of the key/value store. Reads of missing
// or corrupt values fall back to defaults; write errors are returned and
// also logged.
type Records struct {
	kv     storage.KV
	logger *log.Logger
}

// NewRecords wraps kv. A nil logger discards output.
func NewRecords(kv storage.KV, logger *log.Logger) *Records {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Records{kv: kv, logger: logger}
}

func (r *Records) get(key string) (string, bool) {
	v, ok, err := r.kv.Get(key)
	if err != nil {
		r.logger.Warn("read failed", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

func (r *Records) set(key, value string) error {
	if err := r.kv.Set(key, value); err != nil {
		r.logger.Error("write failed", "key", key, "err", err)
		return err
	}
	return nil
}

func (r *Records) flag(key string) bool {
	v, _ := r.get(key)
	return v == "true"
}

// SaveLoadout persists the snapshot taken when round n cleared.
func (r *Records) SaveLoadout(n int, s Snapshot) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	return r.set(LoadoutKey(n), data)
}

// LoadLoadout returns the snapshot saved when round n cleared.
func (r *Records) LoadLoadout(n int) (Snapshot, bool) {
	raw, ok := r.get(LoadoutKey(n))
	if !ok {
		return Snapshot{}, false
	}
	s, ok := Decode(raw)
	if !ok {
		r.logger.Warn("corrupt loadout, using defaults", "round", n)
	}
	return s, ok
}

// MarkCompleted sets the permanent campaign-complete flag.
func (r *Records) MarkCompleted() error {
	return r.set(KeyCompleted, "true")
}

// Completed reports whether the boss has ever been defeated.
func (r *Records) Completed() bool {
	return r.flag(KeyCompleted)
}

// SaveFinalStats stores the loadout the campaign ended with.
func (r *Records) SaveFinalStats(s Snapshot) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	return r.set(KeyFinalStats, data)
}

// FinalStats returns the loadout of the last completed campaign.
func (r *Records) FinalStats() (Snapshot, bool) {
	raw, ok := r.get(KeyFinalStats)
	if !ok {
		return Snapshot{}, false
	}
	return Decode(raw)
}

// RecordRunTime stores the time of the current run. The best time is only
// replaced by a completed run that beats it. It reports whether a new best
// was set.
func (r *Records) RecordRunTime(elapsed time.Duration, completed bool) (bool, error) {
	secs := int(elapsed / time.Second)
	clock := FormatClock(elapsed)
	if err := r.set(KeyRunTimeSeconds, strconv.Itoa(secs)); err != nil {
		return false, err
	}
	if err := r.set(KeyRunTime, clock); err != nil {
		return false, err
	}
	if err := r.set(KeyTimePlayed, clock); err != nil {
		return false, err
	}
	if !completed {
		return false, nil
	}

	best := noBest
	if raw, ok := r.get(KeyBestSeconds); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			best = v
		}
	}
	if secs <= 0 || secs >= best {
		return false, nil
	}
	if err := r.set(KeyBestSeconds, strconv.Itoa(secs)); err != nil {
		return false, err
	}
	if err := r.set(KeyBestTime, clock); err != nil {
		return false, err
	}
	r.logger.Info("new best time", "time", clock)
	return true, nil
}

// BestTime returns the fastest completed run.
func (r *Records) BestTime() (time.Duration, bool) {
	return r.seconds(KeyBestSeconds)
}

// LastRunTime returns the time of the most recent run.
func (r *Records) LastRunTime() (time.Duration, bool) {
	return r.seconds(KeyRunTimeSeconds)
}

func (r *Records) seconds(key string) (time.Duration, bool) {
	raw, ok := r.get(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v >= noBest {
		return 0, false
	}
	return time.Duration(v) * time.Second, true
}

// MusicMuted returns the music setting.
func (r *Records) MusicMuted() bool {
	return r.flag(KeyMusicMuted)
}

// SetMusicMuted stores the music setting.
func (r *Records) SetMusicMuted(muted bool) error {
	return r.set(KeyMusicMuted, strconv.FormatBool(muted))
}

// MessageRead reports whether the mission briefing was opened.
func (r *Records) MessageRead() bool {
	return r.flag(KeyMessageRead)
}

// MarkMessageRead records that the briefing was opened.
func (r *Records) MarkMessageRead() error {
	return r.set(KeyMessageRead, "true")
}

// Reset deletes every campaign key.
func (r *Records) Reset(rounds int) error {
	for _, k := range Keys(rounds) {
		if err := r.kv.Delete(k); err != nil {
			return fmt.Errorf("campaign: reset %s: %w", k, err)
		}
	}
	return nil
}

// FormatClock renders a duration as MM:SS. Minutes keep counting past 99.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
