// Package messages holds the human-readable status lines the turn engine
// writes into the game state. Keys are the English format strings; the
// catalog adds the Korean translations.
package messages

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	SetupPrompt       = "Complete the player setup to start the game."
	DefaultPlayerName = "Player %d"
	FirstTurn         = "%s's turn!"
	YourTurn          = "%s's turn! Roll the dice."
	DoubleAgain       = "Double! %s's turn continues."
	GameOver          = "Game over! Check the results."

	Rolling      = "Rolling the dice..."
	Moving       = "Moving %d tiles!"
	MovingDouble = "Moving %d tiles! (Double!)"
	Stepped      = "Moved %d tiles..."
	SteppedPay   = "Moved %d tiles... (salary +%d)"
	Arrived      = "Arrived!"

	LandStart    = "You reached the start tile. (Salary already paid)"
	LandDonation = "%s: you pay %d."
	LandIsland   = "Stranded on the deserted island! You skip your next turn."
	LandPark     = "You rest in the park. (+%d)"
	LandQuiz     = "Quiz time! Answer correctly to earn a bonus."
	LandCityFree = "You arrived at %s. (Price: %d)"
	LandCityOwn  = "%s is your own city. You can upgrade the building."
	LandCityRent = "%s belongs to %s. You pay %d in rent."
	EventTitle   = "[News] %s"
	TravelPrompt = "Pick the tile you want to travel to!"
	Teleported   = "Teleported to %s!"

	Bought         = "You bought %s!"
	BuyNoFunds     = "Not enough money to buy this city."
	Upgraded       = "The building was upgraded! (Level %d)"
	UpgradeCapped  = "This building cannot go any higher."
	UpgradeNoFunds = "Not enough money to upgrade."
	PassBuy        = "You pass without buying."
	PassUpgrade    = "You decide not to upgrade."

	QuizCorrect = "Correct! You earned a %d prize."
	QuizWrong   = "Wrong answer. Better luck next time."
)

var korean = map[string]string{
	SetupPrompt:       "게임을 시작하려면 플레이어 설정을 완료해주세요.",
	DefaultPlayerName: "플레이어 %d",
	FirstTurn:         "%s의 차례입니다!",
	YourTurn:          "%s의 차례입니다! 주사위를 굴려주세요.",
	DoubleAgain:       "더블! %s의 차례가 계속됩니다.",
	GameOver:          "게임 종료! 결과를 확인하세요.",

	Rolling:      "주사위를 굴리는 중...",
	Moving:       "%d칸 이동합니다!",
	MovingDouble: "%d칸 이동합니다! (더블!)",
	Stepped:      "%d칸 이동...",
	SteppedPay:   "%d칸 이동... (월급 +%d)",
	Arrived:      "도착!",

	LandStart:    "출발점에 도착했습니다. (보너스 지급 완료)",
	LandDonation: "%s: %d구름을 지불합니다.",
	LandIsland:   "무인도에 갇혔습니다! 다음 턴을 쉽니다.",
	LandPark:     "공원에서 편안하게 휴식을 취합니다. (+%d구름)",
	LandQuiz:     "퀴즈 타임! 문제를 풀면 보너스를 받습니다.",
	LandCityFree: "%s에 도착했습니다. (가격: %d구름)",
	LandCityOwn:  "자신의 도시 %s에 왔습니다. 건물을 업그레이드할 수 있습니다.",
	LandCityRent: "%s은(는) %s님의 땅입니다. 통행료 %d구름을 지불합니다.",
	EventTitle:   "📢 [소식] %s",
	TravelPrompt: "🚀 이동하고 싶은 지역을 선택하세요!",
	Teleported:   "%s(으)로 순간이동 했습니다!",

	Bought:         "%s을(를) 구매했습니다!",
	BuyNoFunds:     "돈이 부족하여 구매할 수 없습니다.",
	Upgraded:       "건물을 증축했습니다! (레벨 %d)",
	UpgradeCapped:  "더 이상 건물을 높일 수 없습니다.",
	UpgradeNoFunds: "돈이 부족하여 증축할 수 없습니다.",
	PassBuy:        "구매하지 않고 지나갑니다.",
	PassUpgrade:    "증축하지 않습니다.",

	QuizCorrect: "정답입니다! 상금 %d구름을 획득했습니다.",
	QuizWrong:   "틀렸습니다. 아쉽네요.",
}

var cat = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, ko := range korean {
		// SetString only fails on malformed selectors; plain strings never do.
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Korean, key, ko)
	}
	return b
}

// Printer renders status lines in one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for the given BCP 47 language, falling back to
// English for anything the catalog does not cover.
func New(lang string) *Printer {
	tag, _, _ := language.NewMatcher(cat.Languages()).Match(language.Make(lang))
	base, _ := tag.Base()
	tag = language.Make(base.String())
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Sprintf renders key in the printer's language. Integers are written
// without digit grouping.
func (p *Printer) Sprintf(key string, args ...any) string {
	out := make([]any, len(args))
	for i, a := range args {
		if n, ok := a.(int); ok {
			a = plain(n)
		}
		out[i] = a
	}
	return p.p.Sprintf(key, out...)
}

// plain keeps the message printer from localizing a number.
type plain int

func (n plain) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "%"+string(verb), int(n))
}

func (p *Printer) Language() language.Tag {
	return p.tag
}
