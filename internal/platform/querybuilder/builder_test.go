package querybuilder

import (
	"database/sql"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("player_id", "player").
		From("fantasy_averages").
		Where(Eq("season_type", "Regular"), IsNull("team"), InStrings("season", []string{"2024-25", "2025-26"})).
		OrderBy("team", "player").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT player_id, player FROM fantasy_averages WHERE season_type = $1 AND team IS NULL AND season IN ($2, $3) ORDER BY team, player LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "Regular" || args[2] != "2025-26" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderEmptyInMatchesNothing(t *testing.T) {
	query, args, err := SelectDistinct("player").From("t").Where(In("player", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT DISTINCT player FROM t WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderInlineGroupsConditions(t *testing.T) {
	query, err := Select("season", "player").
		From("vw_player_averages_regular_season").
		Where(
			InStrings("player", []string{"De'Aaron Fox", "AJ Green"}),
			Or(And(Eq("season", "2024-25"), Gte("gp", 20)), Eq("season", "2025-26")),
		).
		Inline()
	if err != nil {
		t.Fatalf("inline select: %v", err)
	}

	want := "SELECT season, player FROM vw_player_averages_regular_season WHERE player IN ('De''Aaron Fox', 'AJ Green') AND ((season = '2024-25' AND gp >= 20) OR season = '2025-26')"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestSelectBuilderInlineRejectsUnknownType(t *testing.T) {
	_, err := Select("a").From("t").Where(Eq("a", []byte("x"))).Inline()
	if err == nil {
		t.Fatalf("expected error for unsupported literal")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("dim_players").
		Columns("player_id", "player_name").
		Values(int64(1), "AJ Green").
		Values(int64(2), "Gregory Jackson").
		Suffix("ON CONFLICT (player_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO dim_players (player_id, player_name) VALUES ($1, $2), ($3, $4) ON CONFLICT (player_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[3] != "Gregory Jackson" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderRowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatalf("expected width mismatch error")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("dim_players").
		Set("player_name", "Gregory Jackson").
		Where(Eq("player_name", "GG Jackson")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE dim_players SET player_name = $1 WHERE player_name = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "GG Jackson" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilderWithExpr(t *testing.T) {
	query, args, err := DeleteFrom("fantasy_averages").Where(Expr("season_type = ? OR gp < ?", "Playoffs", 1)).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM fantasy_averages WHERE season_type = $1 OR gp < $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type playerRow struct {
	ID      int64          `db:"player_id"`
	Name    string         `db:"player_name"`
	Team    sql.NullString `db:"team"`
	ignored string
	Skip    string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []playerRow{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B", Team: sql.NullString{String: "BOS", Valid: true}},
	}
	query, args, err := InsertModels("dim_players", rows, "")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}
	want := "INSERT INTO dim_players (player_id, player_name, team) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if got := Columns(playerRow{}); len(got) != 3 || got[2] != "team" {
		t.Fatalf("unexpected columns: %v", got)
	}
}

func TestInsertModelsRejectsEmpty(t *testing.T) {
	if _, _, err := InsertModels("t", []playerRow{}, ""); err == nil {
		t.Fatalf("expected error for empty slice")
	}
	if _, _, err := InsertModels("t", playerRow{}, ""); err == nil {
		t.Fatalf("expected error for non-slice")
	}
}
