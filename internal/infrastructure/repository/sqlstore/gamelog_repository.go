package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
	"github.com/JonnyRank/bigdataball-data/internal/platform/database"
	qb "github.com/JonnyRank/bigdataball-data/internal/platform/querybuilder"
)

// identity columns shared by every category table
var gamelogIdentityColumns = []string{"player_id", "game_date", "player"}

type GamelogRepository struct {
	db *sqlx.DB
}

var _ gamelog.Repository = (*GamelogRepository)(nil)

func NewGamelogRepository(db *sqlx.DB) *GamelogRepository {
	return &GamelogRepository{db: db}
}

type gamelogKeyModel struct {
	PlayerID int64  `db:"player_id"`
	GameDate string `db:"game_date"`
}

func (r *GamelogRepository) LoadKeys(ctx context.Context, c gamelog.Category) ([]string, error) {
	layout, err := layoutOf(c)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.SelectDistinct("player_id", "game_date").From(layout.Table).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s keys query: %w", layout.Table, err)
	}

	var rows []gamelogKeyModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if database.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s keys: %w", layout.Table, err)
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, gamelog.Key(row.PlayerID, dateText(row.GameDate)))
	}
	return keys, nil
}

func (r *GamelogRepository) AppendBatch(ctx context.Context, b gamelog.Batch) error {
	layout, err := layoutOf(b.Category)
	if err != nil {
		return err
	}
	if len(b.Players) == 0 && len(b.Records) == 0 {
		return nil
	}
	for _, p := range b.Players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("append %s batch: player %d: %w", layout.Table, p.ID, err)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx append %s batch: %w", layout.Table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	players := make([]playerTableModel, 0, len(b.Players))
	for _, p := range b.Players {
		players = append(players, playerTableModel{PlayerID: p.ID, PlayerName: p.Name})
	}
	for _, chunk := range chunks(players, insertChunkRows) {
		query, args, err := qb.InsertModels(playersTable, chunk, "ON CONFLICT (player_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}
	}

	columns := append(append([]string(nil), gamelogIdentityColumns...), columnNames(layout)...)
	for _, chunk := range chunks(b.Records, insertChunkRows) {
		insert := qb.InsertInto(layout.Table).Columns(columns...)
		for _, rec := range chunk {
			insert.Values(recordValues(rec, layout)...)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", layout.Table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", layout.Table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append %s batch tx: %w", layout.Table, err)
	}
	return nil
}

func (r *GamelogRepository) List(ctx context.Context, c gamelog.Category) ([]gamelog.Record, error) {
	layout, err := layoutOf(c)
	if err != nil {
		return nil, err
	}
	columns := append(append([]string(nil), gamelogIdentityColumns...), columnNames(layout)...)

	query, args, err := qb.Select(columns...).From(layout.Table).OrderBy("player_id", "game_date").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", layout.Table, err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", layout.Table, err)
	}
	defer rows.Close()

	var out []gamelog.Record
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", layout.Table, err)
		}
		rec, err := scanRecord(values, layout)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", layout.Table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", layout.Table, err)
	}
	return out, nil
}

func layoutOf(c gamelog.Category) (gamelog.Layout, error) {
	layout, ok := gamelog.LayoutOf(c)
	if !ok {
		return gamelog.Layout{}, fmt.Errorf("no storage layout for category %q", c)
	}
	return layout, nil
}

func columnNames(layout gamelog.Layout) []string {
	out := make([]string, 0, len(layout.Columns))
	for _, col := range layout.Columns {
		out = append(out, col.Name)
	}
	return out
}

func recordValues(rec gamelog.Record, layout gamelog.Layout) []any {
	values := make([]any, 0, len(gamelogIdentityColumns)+len(layout.Columns))
	values = append(values, rec.PlayerID, rec.Date, rec.Player)
	for _, col := range layout.Columns {
		if col.Kind == gamelog.KindNumber {
			v, ok := rec.NumberOf(col.Field)
			values = append(values, sql.NullFloat64{Float64: v, Valid: ok})
			continue
		}
		values = append(values, nullableString(rec.TextOf(col.Field)))
	}
	return values
}

func scanRecord(values []any, layout gamelog.Layout) (gamelog.Record, error) {
	if len(values) != len(gamelogIdentityColumns)+len(layout.Columns) {
		return gamelog.Record{}, fmt.Errorf("unexpected column count %d", len(values))
	}
	id, ok := numberValue(values[0])
	if !ok {
		return gamelog.Record{}, fmt.Errorf("player_id %v is not numeric", values[0])
	}

	rec := gamelog.Record{
		PlayerID: int64(id),
		Date:     dateText(values[1]),
		Player:   cellText(values[2]),
		Text:     make(map[string]string),
		Numbers:  make(map[string]float64),
	}
	for i, col := range layout.Columns {
		v := values[len(gamelogIdentityColumns)+i]
		if v == nil {
			continue
		}
		if col.Kind == gamelog.KindNumber {
			if n, ok := numberValue(v); ok {
				rec.Numbers[col.Field] = n
			}
			continue
		}
		if s := cellText(v); s != "" {
			rec.Text[col.Field] = s
		}
	}
	return rec, nil
}

func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case []byte:
		f, err := strconv.ParseFloat(string(t), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
