package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JonnyRank/bigdataball-data/internal/domain/slate"
	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	qb "github.com/JonnyRank/bigdataball-data/internal/platform/querybuilder"
)

var slateColumns = []string{
	"season",
	"player",
	"team",
	"gp",
	"gs",
	"mpg",
	"gsmpg",
	"fppg",
	"gsfppg",
	"fppm",
	"gsfppm",
	"stdv_fppg AS stdv",
}

type SlateRepository struct {
	db *sqlx.DB
}

var _ slate.Repository = (*SlateRepository)(nil)

func NewSlateRepository(db *sqlx.DB) *SlateRepository {
	return &SlateRepository{db: db}
}

func (r *SlateRepository) References(ctx context.Context) ([]string, error) {
	query, args, err := qb.SelectDistinct("player").From(summary.RegularSeasonView.Name).OrderBy("player").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select reference players query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("select reference players: %w", err)
	}
	return names, nil
}

func (r *SlateRepository) Averages(ctx context.Context, players, seasons []string) (summary.Extract, error) {
	query, args, err := qb.Select(slateColumns...).From(summary.RegularSeasonView.Name).
		Where(
			qb.InStrings("season", seasons),
			qb.InStrings("player", players),
		).
		OrderBy("team", "player", "season DESC").
		ToSQL()
	if err != nil {
		return summary.Extract{}, fmt.Errorf("build slate averages query: %w", err)
	}
	return queryExtract(ctx, r.db, query, args...)
}

func (r *SlateRepository) TrailingAverages(ctx context.Context, players []string, season string) (summary.Extract, error) {
	columns := append(append([]string(nil), slateColumns...), "l30_gp", "l30_fppm")
	query, args, err := qb.Select(columns...).From(summary.RegularSeasonView.Name).
		Where(
			qb.Eq("season", season),
			qb.InStrings("player", players),
		).
		OrderBy("team", "player").
		ToSQL()
	if err != nil {
		return summary.Extract{}, fmt.Errorf("build slate trailing averages query: %w", err)
	}
	return queryExtract(ctx, r.db, query, args...)
}

func (r *SlateRepository) CreateView(ctx context.Context, sel slate.Selection) error {
	minGP := sel.MinPriorGP
	if minGP <= 0 {
		minGP = slate.DefaultMinPriorGP
	}

	body, err := qb.Select(slateColumns...).From(summary.RegularSeasonView.Name).
		Where(
			qb.InStrings("player", sel.Players),
			qb.Or(
				qb.And(qb.Eq("season", sel.PriorSeason), qb.Gte("gp", minGP)),
				qb.Eq("season", sel.CurrentSeason),
			),
		).
		OrderBy("team", "player", "season DESC").
		Inline()
	if err != nil {
		return fmt.Errorf("build view %s: %w", slate.ViewName, err)
	}
	return replaceView(ctx, r.db, slate.ViewName, body)
}
