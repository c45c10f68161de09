package overview

import (
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/extract"
)

type Score string

const (
	ScoreExcellent        Score = "excellent"
	ScoreGood             Score = "good"
	ScoreNeedsImprovement Score = "needs-improvement"
	ScorePoor             Score = "poor"
)

// Card is the per-shift summary tile of the overview.
type Card struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Percent  int               `json:"percent"`
	Score    Score             `json:"score"`
	GoalsMet int               `json:"goals_met"`
	Total    int               `json:"total"`
	Metrics  []extract.Reading `json:"metrics"`
}

// Cards builds one summary card per shift, showing whichever key metrics
// the shift carries.
func Cards(snap Snapshot) []Card {
	cards := make([]Card, 0, len(snap.Shifts))
	for _, s := range snap.Shifts {
		c := Card{
			ID:       s.ID,
			Name:     s.Name,
			Percent:  s.Percent(),
			GoalsMet: s.GoalsMet,
			Total:    s.Total,
			Metrics:  []extract.Reading{},
		}
		c.Score = score(c.Percent)
		for _, metric := range dataset.KeyMetrics {
			if r, ok := s.Reading(metric); ok {
				c.Metrics = append(c.Metrics, r)
			}
		}
		cards = append(cards, c)
	}
	return cards
}

func score(p int) Score {
	switch {
	case p >= 90:
		return ScoreExcellent
	case p >= 75:
		return ScoreGood
	case p >= 50:
		return ScoreNeedsImprovement
	default:
		return ScorePoor
	}
}
