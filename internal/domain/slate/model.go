package slate

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
)

// ViewName is the spreadsheet-facing view holding the current slate.
const ViewName = "vw_daily_slate"

// Export file base names.
const (
	AveragesBase         = "slate_player_averages"
	TrailingAveragesBase = "slate_player_averages_l30"
)

// DefaultMinPriorGP is the games-played floor for prior-season rows in the view.
const DefaultMinPriorGP = 20

// Selection is the set of canonical players on a slate and the seasons
// their averages are drawn from.
type Selection struct {
	Players       []string
	PriorSeason   string
	CurrentSeason string
	MinPriorGP    int
}

// Repository describes slate reads over the regular-season summary view.
type Repository interface {
	// References returns the distinct canonical names in the regular-season view.
	References(ctx context.Context) ([]string, error)
	// Averages returns rows of players in seasons ordered by team, player and season descending.
	Averages(ctx context.Context, players, seasons []string) (summary.Extract, error)
	// TrailingAverages returns season rows of players with the trailing-window rate.
	TrailingAverages(ctx context.Context, players []string, season string) (summary.Extract, error)
	// CreateView drops and recreates ViewName for sel: every prior-season
	// row with at least MinPriorGP games plus every current-season row,
	// restricted to sel.Players.
	CreateView(ctx context.Context, sel Selection) error
}

// SeasonsAt returns the prior and current season keys for a date. A season
// starts in October and is keyed "YYYY-YY".
func SeasonsAt(t time.Time) (prior, current string) {
	start := t.Year()
	if t.Month() < time.October {
		start--
	}
	return seasonKey(start - 1), seasonKey(start)
}

func seasonKey(start int) string {
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
