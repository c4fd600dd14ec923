package campaign

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/park-guardian/internal/ai"
	"github.com/vovakirdan/park-guardian/internal/arena"
	"github.com/vovakirdan/park-guardian/internal/combat"
	"github.com/vovakirdan/park-guardian/internal/core"
)

// Glyphs.
const (
	PlayerGlyph  = '@'
	EnemyGlyph   = 'E'
	MobileGlyph  = 'M'
	BossGlyph    = '█'
	PickupGlyph  = '◆'
	ShotGlyph    = '·'
	HostileGlyph = '•'
)

const (
	hudRows         = 2
	minW, minH      = 40, 16
	barWidth        = 10
	bossBarWidth    = 20
	briefingPadding = 4
)

var briefing = []string{
	"MISSION BRIEFING",
	"",
	"Hostiles have taken Central Park.",
	"Clear the meadow, push through the forest,",
	"and bring down the commander in the lair.",
	"",
	"Your loadout carries over between rounds.",
	"",
	"Press Enter to return",
}

// layout places the arena on the terminal: two HUD rows above the framed
// arena. Key help is drawn by the host below the screen.
type layout struct {
	frame core.Rect
	grid  arena.Grid
}

func newLayout(w, h int, b arena.Bounds) layout {
	frame := core.NewRect(0, hudRows, w, max(h-hudRows, 2))
	return layout{
		frame: frame,
		grid:  arena.Grid{Bounds: b, Cols: max(frame.W-2, 1), Rows: max(frame.H-2, 1)},
	}
}

func (l layout) toScreen(p core.Vec) (int, int) {
	x, y := l.grid.ToCell(p)
	return l.frame.X + 1 + x, l.frame.Y + 1 + y
}

func (l layout) toWorld(x, y int) (core.Vec, bool) {
	cx, cy := x-l.frame.X-1, y-l.frame.Y-1
	if cx < 0 || cy < 0 || cx >= l.grid.Cols || cy >= l.grid.Rows {
		return core.Vec{}, false
	}
	return l.grid.ToWorld(cx, cy), true
}

func powerColor(p combat.Power) core.Color {
	switch p {
	case combat.PowerBlue:
		return core.ColorBrightBlue
	case combat.PowerGold:
		return core.ColorBrightYellow
	default:
		return core.ColorWhite
	}
}

// Render draws the current screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	g.layout = newLayout(w, h, g.arenaBounds())

	if w < minW || h < minH {
		dst.DrawTextCentered(h/2, "Terminal too small")
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	switch g.state {
	case StateMenu:
		g.renderMenu(dst)
	case StateBriefing:
		g.renderBriefing(dst)
	case StateVictory:
		g.renderVictory(dst)
	default:
		g.renderRound(dst)
	}
}

func (g *Game) renderMenu(dst *core.Screen) {
	y := dst.Height()/2 - len(g.menu)/2 - 4
	dst.DrawTextCenteredColored(y, g.Title(), core.ColorBrightGreen)

	killed := "No"
	if g.records.Completed() {
		killed = "Yes"
	}
	dst.DrawTextCenteredColored(y+2, "Killed Commander: "+killed, core.ColorYellow)
	best := "--:--"
	if d, ok := g.records.BestTime(); ok {
		best = FormatClock(d)
	}
	dst.DrawTextCenteredColored(y+3, "Best time: "+best, core.ColorCyan)

	for i, item := range g.menu {
		label := g.menuLabel(item)
		color := core.ColorWhite
		if i == g.cursor {
			label = "> " + label + " <"
			color = core.ColorBrightYellow
		}
		dst.DrawTextCenteredColored(y+5+i, label, color)
	}
	if g.notice != "" {
		dst.DrawTextCenteredColored(y+6+len(g.menu), g.notice, core.ColorBrightRed)
	}
	dst.DrawTextCenteredColored(dst.Height()-1, "↑/↓ select  Enter confirm  Q quit", core.ColorGray)
}

func (g *Game) menuLabel(item menuItem) string {
	switch item.action {
	case menuStart:
		return "Start Campaign"
	case menuBriefing:
		return "Mission Briefing"
	case menuPractice:
		return fmt.Sprintf("Practice Round %d", item.round)
	default:
		if g.records.MusicMuted() {
			return "Music: Off"
		}
		return "Music: On"
	}
}

func (g *Game) renderBriefing(dst *core.Screen) {
	width := 0
	for _, line := range briefing {
		width = max(width, len([]rune(line)))
	}
	width += briefingPadding * 2
	height := len(briefing) + 4
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-height)/2, width, height)
	dst.DrawBoxColored(box, core.ColorBrightCyan)
	for i, line := range briefing {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightCyan
		}
		dst.DrawTextCenteredColored(box.Y+2+i, line, color)
	}
}

func (g *Game) renderVictory(dst *core.Screen) {
	s := g.summary
	if s == nil {
		return
	}
	y := dst.Height()/2 - 5
	dst.DrawTextCenteredColored(y, "MISSION COMPLETE", core.ColorBrightGreen)
	dst.DrawTextCenteredColored(y+2, "Time: "+FormatClock(s.Elapsed), core.ColorWhite)
	best := "--:--"
	if s.Best > 0 {
		best = FormatClock(s.Best)
	}
	dst.DrawTextCenteredColored(y+3, "Best: "+best, core.ColorCyan)
	switch {
	case s.Practice:
		dst.DrawTextCenteredColored(y+4, "Practice run, time not recorded", core.ColorGray)
	case s.NewBest:
		dst.DrawTextCenteredColored(y+4, "New best time!", core.ColorBrightYellow)
	}
	stats := fmt.Sprintf("Health %d  Armor %d  Credits %d", s.Final.Health, s.Final.Armor, s.Final.Credits)
	dst.DrawTextCenteredColored(y+6, stats, core.ColorWhite)
	dst.DrawTextCenteredColored(y+7, "Weapons: "+strings.Join(s.Final.Powers, ", "), core.ColorWhite)
	dst.DrawTextCenteredColored(y+9, "Press Enter", core.ColorGray)
}

func (g *Game) renderRound(dst *core.Screen) {
	r := g.round
	if r == nil {
		return
	}
	l := g.layout
	g.renderHUD(dst, r)
	dst.DrawBoxColored(l.frame, core.ColorGreen)

	for _, pk := range r.Pickups() {
		if pk.Active {
			x, y := l.toScreen(pk.Pos)
			dst.SetColored(x, y, PickupGlyph, powerColor(pk.Power))
		}
	}
	for _, e := range r.Enemies() {
		if !e.Active {
			continue
		}
		x, y := l.toScreen(e.Pos)
		dst.SetColored(x, y, enemyGlyph(e), enemyColor(e))
	}
	if b := r.Boss(); b != nil && b.State() != ai.BossDead {
		g.renderBoss(dst, b)
	}
	if r.Player.Alive() {
		x, y := l.toScreen(r.Pos)
		dst.SetColored(x, y, PlayerGlyph, core.ColorBrightCyan)
	}
	for _, p := range r.Projectiles() {
		if !p.Active {
			continue
		}
		x, y := l.toScreen(p.Pos)
		if p.Hostile() {
			dst.SetColored(x, y, HostileGlyph, shotColor(p))
		} else {
			dst.SetColored(x, y, ShotGlyph, powerColor(p.Power))
		}
	}

	mid := l.frame.Y + l.frame.H/2
	if cd := r.Countdown(); cd > 0 {
		secs := int((cd + time.Second - 1) / time.Second)
		dst.DrawTextCenteredColored(mid-2, fmt.Sprintf("Get Ready: %d", secs), core.ColorBrightYellow)
	}
	if g.banner != "" && g.flow.Now() < g.bannerT {
		dst.DrawTextCenteredColored(mid, g.banner, core.ColorBrightWhite)
	}

	switch g.state {
	case StatePaused:
		g.renderOverlay(dst, "PAUSED", "P resume  Esc menu")
	case StateGameOver:
		g.renderOverlay(dst, "GAME OVER", "Enter menu")
	}
}

func shotColor(p *combat.Projectile) core.Color {
	switch p.Tint {
	case combat.TintRage:
		return core.ColorBrightRed
	case combat.TintTracking:
		return core.ColorBrightMagenta
	default:
		return core.ColorRed
	}
}

func (g *Game) renderBoss(dst *core.Screen, b *ai.Boss) {
	color := core.ColorOrange
	switch {
	case b.State() == ai.BossDying:
		color = core.ColorGray
	case b.Desperate():
		color = core.ColorBrightMagenta
	case b.Enraged():
		color = core.ColorBrightRed
	}
	cx, cy := g.layout.toScreen(b.Pos)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			dst.SetColored(cx+dx, cy+dy, BossGlyph, color)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, r *Round) {
	p := r.Player
	title := fmt.Sprintf("Round %d: %s", r.Number(), r.Name())
	dst.DrawTextColored(0, 0, title, core.ColorBrightGreen)
	clock := FormatClock(g.clock.Elapsed())
	dst.DrawTextColored(dst.Width()-len(clock), 0, clock, core.ColorWhite)

	if b := r.Boss(); b != nil && b.Alive() {
		x := (dst.Width() - bossBarWidth - 5) / 2
		dst.DrawTextColored(x, 0, "BOSS", core.ColorOrange)
		dst.DrawBar(x+5, 0, bossBarWidth, b.Vitals.Health, b.MaxHealth(), core.ColorOrange)
	}

	x := 0
	dst.DrawTextColored(x, 1, "HP", core.ColorWhite)
	dst.DrawBar(x+3, 1, barWidth, p.Health, combat.MaxHealth, core.ColorBrightRed)
	dst.DrawTextColored(x+4+barWidth, 1, fmt.Sprintf("%3d", p.Health), core.ColorWhite)
	x += 8 + barWidth
	dst.DrawTextColored(x, 1, "AR", core.ColorWhite)
	dst.DrawBar(x+3, 1, barWidth, p.Armor, combat.MaxArmor, core.ColorBrightBlue)
	dst.DrawTextColored(x+4+barWidth, 1, fmt.Sprintf("%3d", p.Armor), core.ColorWhite)
	x += 8 + barWidth
	credits := fmt.Sprintf("CR %d", p.Credits)
	dst.DrawTextColored(x, 1, credits, core.ColorYellow)
	x += len(credits) + 2

	for i, pw := range combat.AllPowers {
		label := fmt.Sprintf("%d:%s", i+1, pw)
		color := core.ColorGray
		switch {
		case pw == p.Current:
			label = "[" + label + "]"
			color = powerColor(pw)
		case p.Powers.Has(pw):
			color = core.ColorWhite
		}
		dst.DrawTextColored(x, 1, label, color)
		x += len(label) + 1
	}
}

func (g *Game) renderOverlay(dst *core.Screen, title, hint string) {
	width := max(len(title), len(hint)) + 6
	box := core.NewRect((dst.Width()-width)/2, g.layout.frame.Y+g.layout.frame.H/2-2, width, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextCenteredColored(box.Y+1, title, core.ColorBrightRed)
	dst.DrawTextCenteredColored(box.Y+3, hint, core.ColorGray)
}

func enemyGlyph(e *ai.Enemy) rune {
	if e.Behavior == ai.Mobile {
		return MobileGlyph
	}
	return EnemyGlyph
}

// enemyColor fades an enemy once it is below half health.
func enemyColor(e *ai.Enemy) core.Color {
	wounded := e.HealthFraction() < 0.5
	switch {
	case e.Behavior == ai.Mobile && wounded:
		return core.ColorGray
	case e.Behavior == ai.Mobile:
		return core.ColorMagenta
	case wounded:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}
