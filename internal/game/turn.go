package game

import "github.com/playperu/citymarble/internal/messages"

// RollDice starts a roll: ROLL -> ROLLING, followed by FlickerFrames
// cosmetic frames and the authoritative roll.
func (e *Engine) RollDice() error {
	if err := e.ready(PhaseRoll); err != nil {
		return err
	}

	e.st.TurnPhase = PhaseRolling
	e.st.CurrentEvent = nil
	e.frame = 0
	e.say(messages.Rolling)
	e.schedule(PendingFlicker)
	return nil
}

func (e *Engine) showFlickerFrame() {
	e.st.DiceValues = [2]int{rollDie(e.flicker), rollDie(e.flicker)}
	e.frame++
	if e.frame >= FlickerFrames {
		e.schedule(PendingSettle)
	}
}

func (e *Engine) settleDice() {
	d1, d2 := rollDie(e.dice), rollDie(e.dice)
	total := d1 + d2

	e.st.DiceValues = [2]int{d1, d2}
	e.st.IsDouble = d1 == d2
	e.st.TurnPhase = PhaseMoving
	e.steps = total
	e.stepped = 0

	if e.st.IsDouble {
		e.say(messages.MovingDouble, total)
	} else {
		e.say(messages.Moving, total)
	}
	e.schedule(PendingStep)
}

// step moves the current player one tile. Every wrap onto tile 0 pays the
// salary, whether or not the move ends there.
func (e *Engine) step() {
	p := e.st.CurrentPlayer()
	p.Position = (p.Position + 1) % len(e.st.Tiles)
	e.stepped++

	if p.Position == 0 {
		p.Money += Salary
		e.say(messages.SteppedPay, e.stepped, Salary)
	} else {
		e.say(messages.Stepped, e.stepped)
	}

	if e.stepped >= e.steps {
		e.schedule(PendingArrive)
	}
}

func (e *Engine) arrive() {
	e.schedule(PendingNone)
	e.enterAction(messages.Arrived)
}

// enterAction is the landing hook: entering ACTION resolves the tile under
// the current player unless a travel destination is still being chosen.
func (e *Engine) enterAction(key string, args ...any) {
	e.st.TurnPhase = PhaseAction
	e.say(key, args...)
	if !e.st.SpaceTravelActive {
		e.resolveLanding()
	}
}

// EndTurn acknowledges END. A double hands the dice back to the same player;
// otherwise the turn passes on.
func (e *Engine) EndTurn() error {
	if err := e.ready(PhaseEnd); err != nil {
		return err
	}
	if e.st.SpaceTravelActive {
		e.say(messages.TravelPrompt)
		return nil
	}

	e.st.CurrentEvent = nil
	if e.st.IsDouble {
		e.st.TurnPhase = PhaseRoll
		e.say(messages.DoubleAgain, e.st.CurrentPlayer().Name)
		return nil
	}

	e.advanceTurn()
	return nil
}

// advanceTurn moves to the next seat, counting a round on every wrap to
// seat 0 and ending the game as soon as the round would pass MaxRounds.
// Skipped players lose this turn and have their flag cleared. The scan
// stops after one full cycle, so when every player is skipped each flag is
// consumed once and play resumes with the original next player.
func (e *Engine) advanceTurn() {
	n := len(e.st.Players)
	round := e.st.Round

	next := (e.st.CurrentPlayerIndex + 1) % n
	if next == 0 {
		round++
	}
	if round > e.st.MaxRounds {
		e.endGame()
		return
	}

	for scanned := 0; e.st.Players[next].IsSkipped && scanned < n; scanned++ {
		e.st.Players[next].IsSkipped = false
		next = (next + 1) % n
		if next == 0 {
			round++
			if round > e.st.MaxRounds {
				e.endGame()
				return
			}
		}
	}

	e.st.CurrentPlayerIndex = next
	e.st.Round = round
	e.st.TurnPhase = PhaseRoll
	e.st.IsDouble = false
	e.say(messages.YourTurn, e.st.Players[next].Name)
}

func (e *Engine) endGame() {
	e.st.Status = StatusGameOver
	e.st.IsDouble = false
	e.say(messages.GameOver)
}
