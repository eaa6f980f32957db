package core

// Clip identifies a sound the game asks the audio collaborator to play.
type Clip int

const (
	ClipNone Clip = iota
	ClipMenuMusic
	ClipGameStart
	ClipVictory
	ClipFire
	ClipEnemyHit
	ClipEnemyDie
	ClipEnemyAttack
	ClipPlayerHit
	ClipExplosion
)

// String returns a human-readable name for the clip.
func (c Clip) String() string {
	switch c {
	case ClipNone:
		return "None"
	case ClipMenuMusic:
		return "MenuMusic"
	case ClipGameStart:
		return "GameStart"
	case ClipVictory:
		return "Victory"
	case ClipFire:
		return "Fire"
	case ClipEnemyHit:
		return "EnemyHit"
	case ClipEnemyDie:
		return "EnemyDie"
	case ClipEnemyAttack:
		return "EnemyAttack"
	case ClipPlayerHit:
		return "PlayerHit"
	case ClipExplosion:
		return "Explosion"
	default:
		return "Unknown"
	}
}

// Panel identifies a UI panel the game can show or hide.
type Panel int

const (
	PanelMenu Panel = iota
	PanelHUD
	PanelScoreboard
)

// String returns a human-readable name for the panel.
func (p Panel) String() string {
	switch p {
	case PanelMenu:
		return "Menu"
	case PanelHUD:
		return "HUD"
	case PanelScoreboard:
		return "Scoreboard"
	default:
		return "Unknown"
	}
}

// Audio is the fire-and-forget sound collaborator.
type Audio interface {
	PlayClip(c Clip)
	PlayLoop(c Clip)
	StopLoop()
}

// UI is the display collaborator. The game only writes to it and never
// reads UI state back.
type UI interface {
	SetScore(score int)
	SetHealth(health float64)
	ShowPanel(p Panel)
	HidePanel(p Panel)
	ShowScoreboard(score, previousBest int, newBest bool)
}

// NopAudio discards every sound request.
type NopAudio struct{}

func (NopAudio) PlayClip(Clip) {}
func (NopAudio) PlayLoop(Clip) {}
func (NopAudio) StopLoop()     {}

// NopUI discards every display update.
type NopUI struct{}

func (NopUI) SetScore(int)                  {}
func (NopUI) SetHealth(float64)             {}
func (NopUI) ShowPanel(Panel)               {}
func (NopUI) HidePanel(Panel)               {}
func (NopUI) ShowScoreboard(int, int, bool) {}
