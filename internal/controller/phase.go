package controller

// Phase is the position of the controller in its turn cycle.
type Phase int

const (
	Idle Phase = iota
	PlayerMoving
	AdversaryPlacing
	CheckTerminal
	Won  // reached the win value; ends the game until KeepPlaying
	Lost // no move left
)

var phaseNames = [...]string{
	Idle:             "idle",
	PlayerMoving:     "player-moving",
	AdversaryPlacing: "adversary-placing",
	CheckTerminal:    "check-terminal",
	Won:              "won",
	Lost:             "lost",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}
