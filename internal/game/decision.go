package game

import "github.com/playperu/citymarble/internal/messages"

// awaitingDecision accepts intents only in a plain ACTION phase: no quiz
// open and no travel destination outstanding.
func (e *Engine) awaitingDecision() error {
	if err := e.ready(PhaseAction); err != nil {
		return err
	}
	if e.st.QuizActive || e.st.SpaceTravelActive {
		return ErrWrongPhase
	}
	return nil
}

// Buy purchases the unowned city under the current player. Lacking the
// money is not an error: the turn just ends with a notice.
func (e *Engine) Buy() error {
	if err := e.awaitingDecision(); err != nil {
		return err
	}
	p := e.st.CurrentPlayer()
	tile := e.st.CurrentTile()
	if tile.Kind != TileCity || tile.Owned() {
		return ErrInvalidDecision
	}

	e.st.TurnPhase = PhaseEnd
	if p.Money < tile.Price {
		e.say(messages.BuyNoFunds)
		return nil
	}

	p.Money -= tile.Price
	p.Assets = append(p.Assets, tile.ID)
	owner := p.ID
	tile.OwnerID = &owner
	tile.BuildingLevel = 0
	e.say(messages.Bought, tile.Name)
	return nil
}

// Upgrade raises the building on the current player's own city by one
// level, up to MaxBuildingLevel.
func (e *Engine) Upgrade() error {
	if err := e.awaitingDecision(); err != nil {
		return err
	}
	p := e.st.CurrentPlayer()
	tile := e.st.CurrentTile()
	if tile.Kind != TileCity || !tile.OwnedBy(p.ID) {
		return ErrInvalidDecision
	}

	e.st.TurnPhase = PhaseEnd
	cost := tile.UpgradeCost()
	switch {
	case tile.BuildingLevel >= MaxBuildingLevel:
		e.say(messages.UpgradeCapped)
	case p.Money < cost:
		e.say(messages.UpgradeNoFunds)
	default:
		p.Money -= cost
		tile.BuildingLevel++
		e.say(messages.Upgraded, tile.BuildingLevel)
	}
	return nil
}

// Pass ends the ACTION phase without doing anything.
func (e *Engine) Pass() error {
	if err := e.awaitingDecision(); err != nil {
		return err
	}

	switch {
	case e.CanBuy():
		e.say(messages.PassBuy)
	case e.CanUpgrade():
		e.say(messages.PassUpgrade)
	}
	e.st.TurnPhase = PhaseEnd
	return nil
}

// CanBuy reports whether Buy would purchase the current tile.
func (e *Engine) CanBuy() bool {
	if e.awaitingDecision() != nil {
		return false
	}
	tile := e.st.CurrentTile()
	return tile.Kind == TileCity && !tile.Owned() && e.st.CurrentPlayer().Money >= tile.Price
}

// CanUpgrade reports whether Upgrade would raise the building.
func (e *Engine) CanUpgrade() bool {
	if e.awaitingDecision() != nil {
		return false
	}
	p := e.st.CurrentPlayer()
	tile := e.st.CurrentTile()
	return tile.Kind == TileCity && tile.OwnedBy(p.ID) &&
		tile.BuildingLevel < MaxBuildingLevel && p.Money >= tile.UpgradeCost()
}

// AnswerQuiz settles the open quiz. Either way the turn ends.
func (e *Engine) AnswerQuiz(option int) error {
	if err := e.ready(PhaseAction); err != nil {
		return err
	}
	if !e.st.QuizActive {
		return ErrWrongPhase
	}
	q := e.st.CurrentQuiz
	if option < 0 || option >= len(q.Options) {
		return ErrInvalidOption
	}

	if option == q.CorrectIndex {
		e.st.CurrentPlayer().Money += QuizBonus
		e.say(messages.QuizCorrect, QuizBonus)
	} else {
		e.say(messages.QuizWrong)
	}
	e.st.QuizActive = false
	e.st.CurrentQuiz = nil
	e.st.TurnPhase = PhaseEnd
	return nil
}

// Travel moves the current player straight to tileID while space travel is
// active and resolves that tile as a fresh landing. No salary is paid.
func (e *Engine) Travel(tileID int) error {
	if err := e.ready(PhaseAction); err != nil {
		return err
	}
	if !e.st.SpaceTravelActive {
		return ErrWrongPhase
	}
	if tileID < 0 || tileID >= len(e.st.Tiles) {
		return ErrInvalidTile
	}

	e.st.CurrentPlayer().Position = tileID
	e.st.SpaceTravelActive = false
	e.st.CurrentEvent = nil
	e.enterAction(messages.Teleported, e.st.Tiles[tileID].Name)
	return nil
}
