package game

import "github.com/playperu/citymarble/internal/messages"

// resolveLanding applies the effect of the tile under the current player.
// It runs once per landing. CITY tiles awaiting a decision, QUIZ and EVENT
// tiles and the AIRPORT leave the turn in ACTION; everything else ends it.
func (e *Engine) resolveLanding() {
	p := e.st.CurrentPlayer()
	tile := e.st.CurrentTile()

	switch tile.Kind {
	case TileStart:
		e.say(messages.LandStart)
		e.st.TurnPhase = PhaseEnd

	case TileDonation:
		fine := tile.fine()
		p.Money -= fine
		e.say(messages.LandDonation, tile.Name, fine)
		e.st.TurnPhase = PhaseEnd

	case TilePark:
		if tile.Special == SpecialIsland {
			p.IsSkipped = true
			e.st.IsDouble = false
			e.say(messages.LandIsland)
		} else {
			p.Money += ParkBonus
			e.say(messages.LandPark, ParkBonus)
		}
		e.st.TurnPhase = PhaseEnd

	case TileQuiz:
		e.say(messages.LandQuiz)
		e.schedule(PendingQuizDraw)

	case TileEvent:
		ev := e.content.Events[e.dice.IntN(len(e.content.Events))]
		e.st.CurrentEvent = &ev
		e.say(messages.EventTitle, ev.Title)
		e.schedule(PendingEventReveal)

	case TileAirport:
		e.st.SpaceTravelActive = true
		e.say(messages.TravelPrompt)

	case TileCity:
		e.landOnCity(p, tile)
	}
}

func (e *Engine) landOnCity(p *Player, tile *Tile) {
	switch {
	case !tile.Owned():
		e.say(messages.LandCityFree, tile.Name, tile.Price)
	case tile.OwnedBy(p.ID):
		e.say(messages.LandCityOwn, tile.Name)
	default:
		owner := &e.st.Players[*tile.OwnerID]
		rent := tile.RentDue()
		// Rent is not floored: the payer may go negative.
		p.Money -= rent
		owner.Money += rent
		e.say(messages.LandCityRent, tile.Name, owner.Name, rent)
		e.st.TurnPhase = PhaseEnd
	}
}

func (e *Engine) drawQuiz() {
	q := e.content.Quizzes[e.dice.IntN(len(e.content.Quizzes))]
	q.Options = append([]string(nil), q.Options...)
	e.st.CurrentQuiz = &q
	e.st.QuizActive = true
	e.schedule(PendingNone)
}

func (e *Engine) revealEvent() {
	e.st.Message = e.st.CurrentEvent.Description
	e.schedule(PendingEventApply)
}

// applyEvent resolves the drawn event card. TRAVEL keeps the turn open
// until a destination is picked; the others end it.
func (e *Engine) applyEvent() {
	e.schedule(PendingNone)
	ev := e.st.CurrentEvent
	p := e.st.CurrentPlayer()

	switch ev.Kind {
	case EventTravel:
		e.st.SpaceTravelActive = true
		e.say(messages.TravelPrompt)
		return
	case EventMoney:
		p.Money += ev.Value
		if p.Money < 0 {
			p.Money = 0
		}
	case EventMove:
		n := len(e.st.Tiles)
		p.Position = ((p.Position+ev.Value)%n + n) % n
	case EventSkip:
		p.IsSkipped = true
		e.st.IsDouble = false
	}
	e.st.TurnPhase = PhaseEnd
}
