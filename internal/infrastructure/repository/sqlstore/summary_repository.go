package sqlstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/JonnyRank/bigdataball-data/internal/domain/summary"
	"github.com/JonnyRank/bigdataball-data/internal/platform/database"
	qb "github.com/JonnyRank/bigdataball-data/internal/platform/querybuilder"
)

const teamMappingsTable = "map_teams"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type SummaryRepository struct {
	db *sqlx.DB
}

var _ summary.Repository = (*SummaryRepository)(nil)

func NewSummaryRepository(db *sqlx.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) MissingTables(ctx context.Context, tables ...string) ([]string, error) {
	var missing []string
	for _, table := range tables {
		if !identifierPattern.MatchString(table) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
		query, args, err := qb.Select("1").From(table).Limit(1).ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build table check %s query: %w", table, err)
		}
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			if database.IsMissingTable(err) {
				missing = append(missing, table)
				continue
			}
			return nil, fmt.Errorf("check table %s: %w", table, err)
		}
		_ = rows.Close()
	}
	return missing, nil
}

func (r *SummaryRepository) TeamMappings(ctx context.Context) (map[string]string, error) {
	query, args, err := qb.Select(qb.Columns(teamMappingModel{})...).From(teamMappingsTable).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team mappings query: %w", err)
	}

	var rows []teamMappingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team mappings: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.RawTeamName] = row.TeamAbbreviation
	}
	return out, nil
}

func (r *SummaryRepository) Replace(ctx context.Context, rows []summary.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace summary: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom(summary.Table).ToSQL()
	if err != nil {
		return fmt.Errorf("build clear summary query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear summary: %w", err)
	}

	models := make([]summaryTableModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, summaryModel(row))
	}
	for _, chunk := range chunks(models, insertChunkRows) {
		query, args, err := qb.InsertModels(summary.Table, chunk, "")
		if err != nil {
			return fmt.Errorf("build insert summary query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert summary rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace summary tx: %w", err)
	}
	return nil
}

func (r *SummaryRepository) CreateView(ctx context.Context, v summary.View) error {
	body, err := qb.Select("*").From(summary.Table).
		Where(qb.Eq("season_type", string(v.SeasonType))).
		Inline()
	if err != nil {
		return fmt.Errorf("build view %s: %w", v.Name, err)
	}
	return replaceView(ctx, r.db, v.Name, body)
}

func (r *SummaryRepository) ReadView(ctx context.Context, name string) (summary.Extract, error) {
	if !identifierPattern.MatchString(name) {
		return summary.Extract{}, fmt.Errorf("invalid view name %q", name)
	}
	query, args, err := qb.Select("*").From(name).ToSQL()
	if err != nil {
		return summary.Extract{}, fmt.Errorf("build read %s query: %w", name, err)
	}
	return queryExtract(ctx, r.db, query, args...)
}

func summaryModel(row summary.Row) summaryTableModel {
	return summaryTableModel{
		SeasonType: string(row.SeasonType),
		PlayerID:   row.PlayerID,
		Player:     row.Player,
		Season:     row.Season,
		Team:       nullableString(row.Team),
		GP:         row.GP,
		GS:         row.GS,
		SALPG:      row.SALPG,
		FPPG:       row.FPPG,
		StdvFPPG:   row.StdvFPPG,
		MPG:        row.MPG,
		StdvMPG:    row.StdvMPG,
		FPPM:       row.FPPM,
		StdvFPPM:   row.StdvFPPM,
		USG:        row.USG,
		GSFPPG:     row.GSFPPG,
		StdvGSFPPG: row.StdvGSFPPG,
		GSMPG:      row.GSMPG,
		StdvGSMPG:  row.StdvGSMPG,
		GSFPPM:     row.GSFPPM,
		StdvGSFPPM: row.StdvGSFPPM,
		L30GP:      row.L30GP,
		L30FPPM:    row.L30FPPM,
	}
}

// replaceView swaps the definition of a view in one transaction. Postgres
// replaces in place so dependent views survive; sqlite has no OR REPLACE
// for views and resolves dependents by name at query time.
func replaceView(ctx context.Context, db *sqlx.DB, name, body string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid view name %q", name)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create view %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if db.DriverName() == database.DriverPostgres {
		if _, err := tx.ExecContext(ctx, "CREATE OR REPLACE VIEW "+name+" AS "+body); err != nil {
			return fmt.Errorf("create view %s: %w", name, err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, "DROP VIEW IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop view %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, "CREATE VIEW "+name+" AS "+body); err != nil {
			return fmt.Errorf("create view %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create view %s tx: %w", name, err)
	}
	return nil
}

func queryExtract(ctx context.Context, db *sqlx.DB, query string, args ...any) (summary.Extract, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return summary.Extract{}, fmt.Errorf("query extract: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return summary.Extract{}, fmt.Errorf("extract columns: %w", err)
	}
	out := summary.Extract{Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return summary.Extract{}, fmt.Errorf("scan extract row: %w", err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellText(v)
		}
		out.Rows = append(out.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return summary.Extract{}, fmt.Errorf("iterate extract rows: %w", err)
	}
	return out, nil
}
