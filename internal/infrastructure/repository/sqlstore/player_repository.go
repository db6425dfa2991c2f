package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/JonnyRank/bigdataball-data/internal/domain/player"
	qb "github.com/JonnyRank/bigdataball-data/internal/platform/querybuilder"
)

const playersTable = "dim_players"

type PlayerRepository struct {
	db *sqlx.DB
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListIDs(ctx context.Context) ([]int64, error) {
	query, args, err := qb.Select("player_id").From(playersTable).OrderBy("player_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player ids query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select player ids: %w", err)
	}
	return ids, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(qb.Columns(playerTableModel{})...).From(playersTable).OrderBy("player_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.PlayerID, Name: row.PlayerName})
	}
	return out, nil
}

func (r *PlayerRepository) Rename(ctx context.Context, from, to string) (int64, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return 0, fmt.Errorf("rename player: both names are required")
	}

	query, args, err := qb.Update(playersTable).
		Set("player_name", to).
		Where(qb.Eq("player_name", from)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build rename player query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("rename player %q: %w", from, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rename player %q rows affected: %w", from, err)
	}
	return affected, nil
}
