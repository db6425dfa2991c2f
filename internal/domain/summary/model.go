package summary

import (
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

// Table is the materialized summary relation.
const Table = "fantasy_averages"

// DefaultWindowDays is the trailing-window length in calendar days.
const DefaultWindowDays = 30

// View is a season-type filter over Table.
type View struct {
	Name       string
	SeasonType SeasonType
	BaseName   string
}

// Views lists the derived views recreated after every rebuild.
var Views = []View{
	{Name: "vw_player_averages_regular_season", SeasonType: SeasonRegular, BaseName: "player_averages_regular_season"},
	{Name: "vw_player_averages_playoffs", SeasonType: SeasonPlayoffs, BaseName: "player_averages_playoffs"},
}

// RegularSeasonView is the view slate lookups read from.
var RegularSeasonView = Views[0]

// Row is one player-season-team summary line. Team is empty when the raw
// team name has no mapping.
type Row struct {
	SeasonType SeasonType
	PlayerID   int64
	Player     string
	Season     string
	Team       string

	GP    int64
	GS    int64
	SALPG int64

	FPPG       float64
	StdvFPPG   float64
	MPG        float64
	StdvMPG    float64
	FPPM       float64
	StdvFPPM   float64
	USG        float64
	GSFPPG     float64
	StdvGSFPPG float64
	GSMPG      float64
	StdvGSMPG  float64
	GSFPPM     float64
	StdvGSFPPM float64

	L30GP   int64
	L30FPPM float64
}

// Input is everything a rebuild reads.
type Input struct {
	Records []gamelog.Record
	Names   map[int64]string
	Teams   map[string]string
	// AsOf anchors the trailing window; only its calendar date is used.
	AsOf time.Time
}

type Options struct {
	WindowDays int
}

// Report counts what a rebuild kept and dropped.
type Report struct {
	Records              int      `json:"records"`
	Unclassified         int      `json:"unclassified"`
	BadDates             int      `json:"bad_dates"`
	UnmappedTeams        int      `json:"unmapped_teams"`
	UnclassifiedSegments []string `json:"unclassified_segments,omitempty"`
	Groups               int      `json:"groups"`
}
