package gamelog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonnyRank/bigdataball-data/internal/domain/player"
)

// Category names one raw log feed; each has its own table and dedup key space.
type Category string

const (
	CategoryFantasy Category = "fantasy"
	CategoryPlayer  Category = "player"
)

func ParseCategory(v string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(v))) {
	case CategoryFantasy:
		return CategoryFantasy, nil
	case CategoryPlayer:
		return CategoryPlayer, nil
	default:
		return "", fmt.Errorf("unknown log category %q", v)
	}
}

// Canonical field names shared by every category.
const (
	FieldPlayerID = "PLAYER_ID"
	FieldPlayer   = "PLAYER"
	FieldDate     = "DATE"
	FieldSegment  = "SEASON_SEGMENT"
	FieldTeam     = "TEAM"
	FieldStarted  = "STARTED"
	FieldMinutes  = "MINUTES"
	FieldUsage    = "USAGE"
	FieldDKSalary = "DK_SALARY"
	FieldDKPoints = "DK_POINTS"
)

// DateLayout is the stored calendar-date form.
const DateLayout = "2006-01-02"

// Record is one game observation. Text and Numbers hold the category's
// remaining columns keyed by canonical field; a missing key is a null cell.
type Record struct {
	PlayerID int64  `validate:"gt=0"`
	Player   string `validate:"required"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Text     map[string]string
	Numbers  map[string]float64
}

// Key returns the dedup key of r.
func (r Record) Key() string {
	return Key(r.PlayerID, r.Date)
}

// Key builds a dedup key from its parts.
func Key(playerID int64, date string) string {
	return strconv.FormatInt(playerID, 10) + "_" + date
}

func (r Record) NumberOf(field string) (float64, bool) {
	v, ok := r.Numbers[field]
	return v, ok
}

func (r Record) TextOf(field string) string {
	return r.Text[field]
}

// Batch is what one file contributes to the store: new registry entries and
// previously unseen records, applied together.
type Batch struct {
	Category Category
	Players  []player.Player
	Records  []Record
}
