package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	_ "github.com/vovakirdan/duckstorm/internal/enemies"
	"github.com/vovakirdan/duckstorm/internal/lobby"
	"github.com/vovakirdan/duckstorm/internal/session"
	"github.com/vovakirdan/duckstorm/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionFire},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{runeKey('q'), core.ActionQuit},
		{runeKey('z'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHUD(t *testing.T) {
	h := NewHUD()
	h.SetScore(1500)
	h.SetHealth(400)
	h.ShowPanel(core.PanelHUD)
	h.ShowScoreboard(1500, 1000, true)

	if h.Score() != 1500 || h.Health() != 400 {
		t.Errorf("score/health = %d/%v", h.Score(), h.Health())
	}
	if !h.Visible(core.PanelHUD) || !h.Visible(core.PanelScoreboard) || h.Visible(core.PanelMenu) {
		t.Error("unexpected panel visibility")
	}
	score, prev, best := h.Result()
	if score != 1500 || prev != 1000 || !best {
		t.Errorf("result = %d/%d/%v", score, prev, best)
	}

	h.HidePanel(core.PanelHUD)
	if h.Visible(core.PanelHUD) {
		t.Error("HUD should be hidden")
	}
}

func testOptions() Options {
	return Options{
		Config:  config.Default(),
		Mode:    "normal",
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Best:    storage.NewMemoryKV(),
	}
}

func TestModelFlow(t *testing.T) {
	m := NewModel(testOptions())
	m.Init()
	if m.Game().State() != session.StateMenu {
		t.Fatalf("state = %v, want Menu", m.Game().State())
	}
	if !strings.Contains(m.screenText(), titleText) {
		t.Error("menu should show the title")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Game().State() != session.StatePlaying {
		t.Fatalf("state = %v, want Playing", m.Game().State())
	}
	if !strings.Contains(m.screenText(), "SCORE") {
		t.Error("HUD line missing")
	}

	before := m.Game().Arena().Cannon().Angle
	next, _ = m.Update(runeKey('a'))
	m = next.(Model)
	for range holdTicks + 2 {
		next, _ = m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	turned := before - m.Game().Arena().Cannon().Angle
	want := config.Default().Cannon.AimSpeed * (time.Second / 60).Seconds() * holdTicks
	if turned < want*0.99 || turned > want*1.01 {
		t.Errorf("turned %v, want about %v", turned, want)
	}

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestRoundSavesRun(t *testing.T) {
	runs := &fakeRuns{}
	opts := testOptions()
	opts.Runs = runs
	m := NewModel(opts)
	m.Init()

	g := m.Game()
	g.Step(time.Second/60, confirm())
	g.AddScore(1000)
	g.DamagePlayer(1e9)
	g.Step(time.Second/60, core.NewInputFrame())

	if len(runs.saved) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs.saved))
	}
	if r := runs.saved[0]; r.Score != 1000 || r.Mode != "normal" {
		t.Errorf("run = %+v", r)
	}
	if !strings.Contains(m.screenText(), "NEW BEST!") {
		t.Error("scoreboard should flag the new best")
	}
}

func TestScoreboardTabs(t *testing.T) {
	runs := &fakeRuns{saved: []storage.Run{
		{Mode: "easy", Score: 300, Duration: 75 * time.Second},
		{Mode: "hard", Score: 900},
	}}
	m := NewScoreboardModel(runs, 100, 30)
	if len(m.runs) != 2 {
		t.Fatalf("all tab shows %d runs, want 2", len(m.runs))
	}

	m.moveTab(1) // easy
	if len(m.runs) != 1 || m.runs[0].Score != 300 {
		t.Errorf("easy tab = %+v", m.runs)
	}
	m.moveTab(-2) // wraps to the last tab
	if m.tabs[m.cursor].mode != string(config.DifficultyFixed) {
		t.Errorf("cursor on %q, want fixed", m.tabs[m.cursor].mode)
	}
	if formatDuration(75*time.Second) != "1:15" {
		t.Errorf("formatDuration = %q", formatDuration(75*time.Second))
	}
}

func TestScoreboardView(t *testing.T) {
	runs := &fakeRuns{saved: []storage.Run{
		{Mode: "hard", Score: 900, Level: 3, Kills: 40},
		{Mode: "hard", Score: 400, Level: 1, Kills: 12},
	}}
	m := NewScoreboardModel(runs, 100, 30)
	if got := m.summary(); !strings.Contains(got, "2 runs, best 900 at level 3") {
		t.Errorf("summary() = %q", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab}) // wraps to fixed
	m = next.(ScoreboardModel)
	if len(m.runs) != 0 || m.summary() != "" {
		t.Errorf("fixed tab shows %d runs", len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs on this difficulty yet.") {
		t.Error("empty tab should say so")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft}) // hard
	m = next.(ScoreboardModel)
	if len(m.runs) != 2 {
		t.Errorf("hard tab shows %d runs, expected 2", len(m.runs))
	}
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), config.DifficultyHard, 0)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	r := next.(MenuModel).Result()
	if r.Quit || r.Preset != config.DifficultyFixed {
		t.Errorf("result = %+v, want fixed", r)
	}

	m = NewMenuModel(core.DefaultConfig(), config.DifficultyNormal, 0)
	next, _ = m.Update(runeKey('q'))
	if !next.(MenuModel).Result().Quit {
		t.Error("q should quit the menu")
	}
}

func TestLobbyNotices(t *testing.T) {
	reg := lobby.NewRegistry()
	alice := lobby.NewSession("alice-1", "alice", 4)
	bob := lobby.NewSession("bob-1", "bob", 4)
	reg.Join(alice)
	reg.Join(bob)
	for len(alice.Events()) > 0 {
		<-alice.Events()
	}

	opts := testOptions()
	opts.Lobby, opts.Player = reg, bob
	m := NewModel(opts)
	m.Init()

	g := m.Game()
	g.Step(time.Second/60, confirm())
	g.AddScore(700)
	g.DamagePlayer(1e9)
	g.Step(time.Second/60, core.NewInputFrame())

	select {
	case evt := <-alice.Events():
		if evt.Kind != lobby.EventNewBest || evt.User != "bob" || evt.Score != 700 {
			t.Errorf("event = %+v", evt)
		}
	default:
		t.Fatal("alice did not hear about the new best")
	}

	next, cmd := m.Update(lobbyMsg{Kind: lobby.EventJoined, User: "carol"})
	m = next.(Model)
	if cmd == nil {
		t.Error("model should keep listening for events")
	}
	if !strings.Contains(m.View(), "carol joined") {
		t.Error("notice missing from the view")
	}
	m.noticeTicks = 1
	next, _ = m.Update(TickMsg(time.Now()))
	if next.(Model).notice != "" {
		t.Error("notice should expire")
	}
}

func TestTinyTerminal(t *testing.T) {
	opts := testOptions()
	opts.Runtime.ScreenW, opts.Runtime.ScreenH = 10, 4
	m := NewModel(opts)
	m.Init()
	if !strings.HasPrefix(m.screenText(), "terminal") {
		t.Error("tiny terminals should get a notice")
	}
}

func confirm() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	return in
}

func (m Model) screenText() string {
	DrawGame(m.screen, m.game, m.hud)
	return m.screen.String()
}

type fakeRuns struct {
	saved []storage.Run
}

func (f *fakeRuns) SaveRun(r storage.Run) (int64, error) {
	f.saved = append(f.saved, r)
	return int64(len(f.saved)), nil
}

func (f *fakeRuns) TopRuns(mode string, limit int) ([]storage.Run, error) {
	var out []storage.Run
	for _, r := range f.saved {
		if mode == "" || r.Mode == mode {
			out = append(out, r)
		}
	}
	return out, nil
}
