package gamelog

// Kind is the stored type of a column.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
)

// Column maps a canonical field to its storage column.
type Column struct {
	Field string
	Name  string
	Kind  Kind
}

// Layout is the stored shape of one category. Identity columns
// (player_id, game_date, player) are implied and not listed.
type Layout struct {
	Category Category
	Table    string
	Columns  []Column
}

func (l Layout) Column(field string) (Column, bool) {
	for _, c := range l.Columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

func text(field, name string) Column   { return Column{Field: field, Name: name, Kind: KindText} }
func number(field, name string) Column { return Column{Field: field, Name: name, Kind: KindNumber} }

var layouts = map[Category]Layout{
	CategoryFantasy: {
		Category: CategoryFantasy,
		Table:    "fantasy_logs",
		Columns: []Column{
			text(FieldSegment, "season_segment"),
			text("GAME_ID", "game_id"),
			text(FieldTeam, "team"),
			text("OPPONENT", "opponent"),
			text("VENUE", "venue"),
			text(FieldStarted, "started"),
			text("DK_POSITION", "dk_position"),
			number(FieldMinutes, "minutes"),
			number(FieldUsage, "usage"),
			number("DAYS_REST", "days_rest"),
			number(FieldDKSalary, "dk_salary"),
			number(FieldDKPoints, "dk_points"),
		},
	},
	CategoryPlayer: {
		Category: CategoryPlayer,
		Table:    "player_logs",
		Columns: []Column{
			text(FieldSegment, "season_segment"),
			text("GAME_ID", "game_id"),
			text("POSITION", "position"),
			text(FieldTeam, "team"),
			text("OPPONENT", "opponent"),
			text("VENUE", "venue"),
			text(FieldStarted, "started"),
			number(FieldMinutes, "minutes"),
			number("FG", "fg"),
			number("FGA", "fga"),
			number("3P", "fg3"),
			number("3PA", "fg3a"),
			number("FT", "ft"),
			number("FTA", "fta"),
			number("OREB", "oreb"),
			number("DREB", "dreb"),
			number("TREB", "treb"),
			number("AST", "ast"),
			number("PF", "pf"),
			number("STL", "stl"),
			number("TOV", "tov"),
			number("BLK", "blk"),
			number("PTS", "pts"),
			number(FieldUsage, "usage"),
			number("DAYS_REST", "days_rest"),
		},
	},
}

// LayoutOf returns the stored shape of c.
func LayoutOf(c Category) (Layout, bool) {
	l, ok := layouts[c]
	return l, ok
}
