package game

import (
	"testing"

	"github.com/playperu/citymarble/internal/messages"
)

// scripted returns queued values in order and 0 once the queue runs dry.
type scripted struct {
	vals []int
}

func (s *scripted) IntN(n int) int {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	if v >= n {
		panic("scripted value out of range")
	}
	return v
}

// push queues a dice pair followed by any extra draws (event or quiz index).
func (s *scripted) push(d1, d2 int, extra ...int) {
	s.vals = append(s.vals, d1-1, d2-1)
	s.vals = append(s.vals, extra...)
}

var en = messages.New("en")

func testContent() Content {
	city := func(id int, name string, price, rent int) Tile {
		return Tile{ID: id, Name: name, Kind: TileCity, Price: price, Rent: rent}
	}
	return Content{
		Tiles: []Tile{
			{ID: 0, Name: "Start", Kind: TileStart},
			city(1, "Chuncheon", 200, 50),
			{ID: 2, Name: "Quiz", Kind: TileQuiz},
			city(3, "Jeonju", 250, 60),
			{ID: 4, Name: "Lake Park", Kind: TilePark},
			city(5, "Gyeongju", 300, 80),
			city(6, "Jeju", 350, 90),
			{ID: 7, Name: "Green Levy", Kind: TileDonation, Fine: 200},
			{ID: 8, Name: "Town News", Kind: TileEvent},
			{ID: 9, Name: "Quiz", Kind: TileQuiz},
			{ID: 10, Name: "Deserted Island", Kind: TilePark, Special: SpecialIsland},
			city(11, "Daejeon", 450, 110),
			city(12, "Daegu", 500, 130),
			city(13, "Gwangju", 550, 150),
			city(14, "Sejong", 600, 170),
			city(15, "Ulsan", 700, 200),
			city(16, "Busan", 800, 240),
			{ID: 17, Name: "Charity", Kind: TileDonation},
			{ID: 18, Name: "Incheon Airport", Kind: TileAirport},
			city(19, "Seoul", 1000, 350),
		},
		Events: []Event{
			{ID: "award", Title: "Recycling award", Description: "You won a prize.", Kind: EventMoney, Value: 300},
			{ID: "roadwork", Title: "Road work", Description: "Detour, two tiles back.", Kind: EventMove, Value: -2},
			{ID: "ticket", Title: "Speeding ticket", Description: "Pay the fine.", Kind: EventMoney, Value: -5000},
			{ID: "flu", Title: "Flu", Description: "Stay home one turn.", Kind: EventSkip},
			{ID: "space", Title: "Space trip", Description: "Fly anywhere.", Kind: EventTravel},
			{ID: "subway", Title: "New subway", Description: "Fifteen tiles ahead.", Kind: EventMove, Value: 15},
		},
		Quizzes: []Quiz{
			{Question: "Which can be recycled?", Options: []string{"food", "glass shards", "clean bottle", "tissue"}, CorrectIndex: 2},
			{Question: "Which is not a public office?", Options: []string{"city hall", "police", "fire station", "mall"}, CorrectIndex: 3},
		},
	}
}

const (
	evAward = iota
	evRoadwork
	evTicket
	evFlu
	evSpace
	evSubway
)

func newTestEngine(t *testing.T, players int) (*Engine, *scripted) {
	t.Helper()
	rolls := &scripted{}
	e := NewEngine(testContent(), WithRoller(rolls), WithFlickerRoller(&scripted{}), WithPrinter(en))

	setups := make([]PlayerSetup, players)
	names := []string{"Ana", "Bo", "Cy", "Di", "Ed"}
	for i := range setups {
		setups[i] = PlayerSetup{Name: names[i]}
	}
	if err := e.Start(setups, 0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e, rolls
}

// rollFrom places the current player on from, rolls d1+d2 and runs every
// automatic transition.
func rollFrom(t *testing.T, e *Engine, rolls *scripted, from, d1, d2 int, extra ...int) {
	t.Helper()
	e.st.CurrentPlayer().Position = from
	rolls.push(d1, d2, extra...)
	if err := e.RollDice(); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	e.Drain()
}

func intp(v int) *int { return &v }
