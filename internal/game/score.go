package game

import "sort"

type Score struct {
	Rank       int    `json:"rank"`
	PlayerID   int    `json:"playerId"`
	Name       string `json:"name"`
	Cash       int    `json:"cash"`
	AssetValue int    `json:"assetValue"`
	NetWorth   int    `json:"netWorth"`
}

// AssetValue is the purchase price plus half the price per building level.
func AssetValue(t Tile) int {
	return t.Price + t.Price*t.BuildingLevel/2
}

// Rank orders players by net worth, highest first. Equal net worth keeps
// seating order.
func Rank(players []Player, tiles []Tile) []Score {
	scores := make([]Score, len(players))
	for i, p := range players {
		assets := 0
		for _, id := range p.Assets {
			assets += AssetValue(tiles[id])
		}
		scores[i] = Score{
			PlayerID:   p.ID,
			Name:       p.Name,
			Cash:       p.Money,
			AssetValue: assets,
			NetWorth:   p.Money + assets,
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].NetWorth > scores[j].NetWorth
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}
	return scores
}
