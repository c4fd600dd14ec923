package combat

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/park-guardian/internal/config"
	"github.com/vovakirdan/park-guardian/internal/core"
)

type gate bool

func (g gate) Ready() bool { return bool(g) }

func arsenal(t *testing.T, round int) Arsenal {
	t.Helper()
	rc, ok := config.DefaultConfig().Round(round)
	if !ok {
		t.Fatalf("round %d missing", round)
	}
	return NewArsenal(rc.Weapons)
}

func TestFireCooldownGate(t *testing.T) {
	w := NewWeapon(arsenal(t, 2), gate(true), core.NewRNG(1))
	req := FireRequest{Origin: core.V(400, 300), Target: core.V(400, 100), Power: PowerCommon}

	fired := 0
	for _, at := range []time.Duration{0, 100 * time.Millisecond} {
		req.Time = at
		if shots := w.Fire(req); len(shots) > 0 {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("fired %d sets in [0, 100ms], want 1", fired)
	}

	req.Time = 600 * time.Millisecond
	if len(w.Fire(req)) != 1 {
		t.Error("request at 600ms should fire")
	}
	if last, ok := w.LastShot(); !ok || last != 600*time.Millisecond {
		t.Errorf("LastShot = %v, %v", last, ok)
	}
}

func TestFireBlockedUntilReady(t *testing.T) {
	w := NewWeapon(arsenal(t, 1), gate(false), core.NewRNG(1))
	if shots := w.Fire(FireRequest{Power: PowerBlue, Target: core.V(1, 0)}); shots != nil {
		t.Errorf("fired %d shots before ready", len(shots))
	}
	if _, ok := w.LastShot(); ok {
		t.Error("rejected request updated lastShot")
	}
}

func TestGoldSpread(t *testing.T) {
	w := NewWeapon(arsenal(t, 1), gate(true), core.NewRNG(9))
	shots := w.Fire(FireRequest{
		Origin: core.V(0, 0),
		Target: core.V(100, 0),
		Power:  PowerGold,
	})
	if len(shots) != 3 {
		t.Fatalf("gold fired %d shots, want 3", len(shots))
	}

	wantAngles := []float64{-0.2, 0, 0.2}
	for i, s := range shots {
		if a := s.Vel.Angle(); math.Abs(a-wantAngles[i]) > 1e-9 {
			t.Errorf("shot %d angle = %v, want %v", i, a, wantAngles[i])
		}
		if math.Abs(s.Vel.Len()-200) > 1e-9 {
			t.Errorf("shot %d speed = %v, want 200", i, s.Vel.Len())
		}
		if s.Damage < 40 || s.Damage > 60 {
			t.Errorf("shot %d damage = %d, want [40,60]", i, s.Damage)
		}
		if s.TTL != 1400*time.Millisecond || s.Faction != FactionPlayer {
			t.Errorf("shot %d = %+v", i, s)
		}
	}
}

func TestDamageRolls(t *testing.T) {
	a := arsenal(t, 3)
	r := core.NewRNG(5)
	for i := 0; i < 500; i++ {
		if d := a.Spec(PowerCommon, false).Damage.Roll(r); d != 20 && d != 50 {
			t.Fatalf("common damage = %d", d)
		}
		if d := a.Spec(PowerCommon, true).Damage.Roll(r); d < 15 || d > 30 {
			t.Fatalf("round 3 fast common damage = %d", d)
		}
		if d := a.Spec(PowerGold, false).Damage.Roll(r); d < 50 || d > 70 {
			t.Fatalf("round 3 gold damage = %d", d)
		}
	}
}

func TestSpecSelection(t *testing.T) {
	a := arsenal(t, 2)
	if got := a.Spec(PowerBlue, false); got.Lifetime != 1176*time.Millisecond || got.Speed != 400 {
		t.Errorf("blue spec = %+v", got)
	}
	if got := a.Spec(PowerCommon, true); got.Cooldown != 250*time.Millisecond {
		t.Errorf("fast common cooldown = %v", got.Cooldown)
	}
	if got := a.Spec(Power(42), false); got.Cooldown != a.Common.Cooldown {
		t.Error("unknown tier should fall back to common")
	}
}

func TestProjectileTickExpires(t *testing.T) {
	p := &Projectile{Vel: core.V(100, 0), TTL: 50 * time.Millisecond, Active: true}
	p.Tick(25 * time.Millisecond)
	if !p.Active || math.Abs(p.Pos.X-2.5) > 1e-9 {
		t.Fatalf("after 25ms: %+v", p)
	}
	p.Tick(25 * time.Millisecond)
	if p.Active {
		t.Error("projectile should expire at TTL")
	}
	if p.Consume() {
		t.Error("expired projectile consumed")
	}

	live := Compact([]*Projectile{p, {Active: true}})
	if len(live) != 1 {
		t.Errorf("Compact kept %d, want 1", len(live))
	}
}
