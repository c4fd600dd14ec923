package campaign

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/park-guardian/internal/combat"
)

func TestSnapshotRoundTrip(t *testing.T) {
	p := combat.NewPlayerState()
	p.Unlock(combat.PowerBlue)
	p.Select(combat.PowerBlue)
	p.SetHealth(70)
	p.SetArmor(0)
	p.AddCredits(120)
	p.FastCommon = true

	raw, err := FromPlayer(p).Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	want := `{"powers":["common","blue"],"health":70,"armor":0,"credits":120,"fastCommonUnlocked":true,"currentPower":"blue"}`
	if raw != want {
		t.Errorf("Encode() = %s\nwant %s", raw, want)
	}

	snap, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode() rejected its own output")
	}
	got := snap.Player()
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestDecodeRejectsCorrupt(t *testing.T) {
	for _, raw := range []string{"", "{", "not json", `{"health":"full"}`} {
		if _, ok := Decode(raw); ok {
			t.Errorf("Decode(%q) ok, want rejection", raw)
		}
	}
}

func TestDecodeRepairs(t *testing.T) {
	snap, ok := Decode(`{"powers":["gold","laser"],"health":250,"armor":-5,"credits":-3,"currentPower":"blue"}`)
	if !ok {
		t.Fatal("Decode() rejected repairable snapshot")
	}
	if !reflect.DeepEqual(snap.Powers, []string{"common", "gold"}) {
		t.Errorf("Powers = %v", snap.Powers)
	}
	if snap.Health != 100 || snap.Armor != 0 || snap.Credits != 0 {
		t.Errorf("stats = %d/%d/%d, want 100/0/0", snap.Health, snap.Armor, snap.Credits)
	}
	if snap.Current != "common" {
		t.Errorf("Current = %q, want common (blue is locked)", snap.Current)
	}
}

func TestDecodeMissingStatsUseBaseline(t *testing.T) {
	snap, ok := Decode(`{"powers":["blue"],"currentPower":"blue"}`)
	if !ok {
		t.Fatal("Decode() rejected partial snapshot")
	}
	if snap.Health != combat.BaseHealth || snap.Armor != combat.BaseArmor || snap.Credits != combat.BaseCredits {
		t.Errorf("stats = %+v", snap)
	}
	if snap.Current != "blue" {
		t.Errorf("Current = %q", snap.Current)
	}
}

func TestBaseline(t *testing.T) {
	p := Baseline(100, 50, 0).Player()
	if p.Health != 100 || p.Armor != 50 || p.Credits != 0 {
		t.Errorf("baseline = %+v", p)
	}
	if p.Current != combat.PowerCommon || p.Powers.Has(combat.PowerBlue) {
		t.Errorf("baseline powers = %v current %v", p.Powers.Strings(), p.Current)
	}
}
