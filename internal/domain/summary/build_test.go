package summary

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

type game struct {
	id      int64
	date    string
	segment string
	team    string
	started string
	pts     *float64
	mins    *float64
	salary  *float64
}

func f(v float64) *float64 { return &v }

func (g game) record() gamelog.Record {
	r := gamelog.Record{
		PlayerID: g.id,
		Player:   "raw name",
		Date:     g.date,
		Text: map[string]string{
			gamelog.FieldSegment: g.segment,
			gamelog.FieldTeam:    g.team,
			gamelog.FieldStarted: g.started,
		},
		Numbers: map[string]float64{},
	}
	if g.pts != nil {
		r.Numbers[gamelog.FieldDKPoints] = *g.pts
	}
	if g.mins != nil {
		r.Numbers[gamelog.FieldMinutes] = *g.mins
	}
	if g.salary != nil {
		r.Numbers[gamelog.FieldDKSalary] = *g.salary
	}
	return r
}

const regular = "2023-24 Regular Season"

var teams = map[string]string{"Boston": "BOS", "Miami": "MIA"}

func build(t *testing.T, asOf time.Time, games ...game) ([]Row, Report) {
	t.Helper()
	records := make([]gamelog.Record, 0, len(games))
	for _, g := range games {
		records = append(records, g.record())
	}
	return Build(Input{
		Records: records,
		Names:   map[int64]string{1: "AJ Green", 2: "Gregory Jackson"},
		Teams:   teams,
		AsOf:    asOf,
	}, Options{})
}

var asOf = time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC)

func TestBuildRateIsWeightedNotMeanOfGameRates(t *testing.T) {
	rows, _ := build(t, asOf,
		game{id: 1, date: "2024-01-01", segment: regular, team: "Boston", started: "N", pts: f(10), mins: f(10)},
		game{id: 1, date: "2024-01-03", segment: regular, team: "Boston", started: "N", pts: f(30), mins: f(40)},
	)
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, 0.8, row.FPPM)
	assert.NotEqual(t, 0.88, row.FPPM, "naive mean of per-game rates")
	assert.Equal(t, 20.0, row.FPPG)
	assert.Equal(t, 14.14, row.StdvFPPG)
	assert.Equal(t, 25.0, row.MPG)
	assert.Equal(t, 21.21, row.StdvMPG)
	assert.Equal(t, 0.18, row.StdvFPPM)
	assert.Equal(t, int64(2), row.GP)
	assert.Equal(t, int64(0), row.GS)
}

func TestBuildZeroMinutesYieldsZeroRate(t *testing.T) {
	rows, _ := build(t, asOf,
		game{id: 1, date: "2024-01-01", segment: regular, team: "Boston", pts: f(5), mins: f(0)},
	)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].FPPM)
	assert.Equal(t, 0.0, rows[0].StdvFPPM)
	assert.Equal(t, 0.0, rows[0].StdvFPPG, "single game deviation is reported as zero")
}

func TestBuildStarterConditionedStats(t *testing.T) {
	rows, _ := build(t, asOf,
		game{id: 1, date: "2024-01-01", segment: regular, team: "Boston", started: "Y", pts: f(40), mins: f(36)},
		game{id: 1, date: "2024-01-02", segment: regular, team: "Boston", started: "N", pts: f(10), mins: f(20)},
	)
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, int64(1), row.GS)
	assert.Equal(t, 40.0, row.GSFPPG)
	assert.Equal(t, 0.0, row.StdvGSFPPG)
	assert.Equal(t, 36.0, row.GSMPG)
	assert.Equal(t, 1.11, row.GSFPPM)
	assert.Equal(t, 25.0, row.FPPG, "non-starter games still count toward overall stats")
}

func TestBuildExcludesUnclassifiedAndKeepsUnmappedTeams(t *testing.T) {
	rows, report := build(t, asOf,
		game{id: 1, date: "2023-10-10", segment: "2023 Preseason", team: "Boston", pts: f(1), mins: f(1)},
		game{id: 1, date: "2024-01-01", segment: regular, team: "Boston", pts: f(1), mins: f(1)},
		game{id: 1, date: "2024-01-02", segment: regular, team: "Seattle", pts: f(1), mins: f(1)},
	)

	require.Len(t, rows, 2)
	assert.Equal(t, "BOS", rows[0].Team)
	assert.Equal(t, "", rows[1].Team, "unmapped team sorts last")
	assert.Equal(t, 1, report.Unclassified)
	assert.Equal(t, []string{"2023 Preseason"}, report.UnclassifiedSegments)
	assert.Equal(t, 1, report.UnmappedTeams)
	assert.Equal(t, 2, report.Groups)
}

func TestBuildUsesCanonicalNameAndSplitsSeasonTypes(t *testing.T) {
	rows, _ := build(t, asOf,
		game{id: 2, date: "2024-01-01", segment: regular, team: "Miami", pts: f(10), mins: f(10)},
		game{id: 2, date: "2024-04-25", segment: "2024 Playoffs", team: "Miami", pts: f(20), mins: f(10)},
	)
	require.Len(t, rows, 2)

	assert.Equal(t, SeasonRegular, rows[0].SeasonType)
	assert.Equal(t, "2023-24", rows[0].Season)
	assert.Equal(t, SeasonPlayoffs, rows[1].SeasonType)
	assert.Equal(t, "2024", rows[1].Season)
	for _, row := range rows {
		assert.Equal(t, "Gregory Jackson", row.Player)
	}
}

func TestBuildFallsBackToRecordNameForUnknownPlayer(t *testing.T) {
	rows, _ := build(t, asOf, game{id: 99, date: "2024-01-01", segment: regular, team: "Boston"})
	require.Len(t, rows, 1)
	assert.Equal(t, "raw name", rows[0].Player)
}

func TestBuildTrailingWindow(t *testing.T) {
	rows, _ := build(t, asOf,
		game{id: 1, date: "2024-03-01", segment: regular, team: "Boston", pts: f(50), mins: f(10)},
		game{id: 1, date: "2024-03-02", segment: regular, team: "Boston", pts: f(20), mins: f(20)},
		game{id: 1, date: "2024-03-31", segment: regular, team: "Boston", pts: f(40), mins: f(20)},
	)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].L30GP)
	assert.Equal(t, 1.5, rows[0].L30FPPM)
	assert.Equal(t, int64(3), rows[0].GP)
}

func TestBuildSalaryRoundsHalfToEven(t *testing.T) {
	rows, _ := build(t, asOf,
		game{id: 1, date: "2024-01-01", segment: regular, team: "Boston", salary: f(5000)},
		game{id: 1, date: "2024-01-02", segment: regular, team: "Boston", salary: f(5001)},
	)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5000), rows[0].SALPG)
}

func TestBuildDropsBadDates(t *testing.T) {
	rows, report := build(t, asOf, game{id: 1, date: "01/02/2024", segment: regular, team: "Boston"})
	assert.Empty(t, rows)
	assert.Equal(t, 1, report.BadDates)
}

func TestBuildIsDeterministic(t *testing.T) {
	games := []game{
		{id: 1, date: "2024-01-01", segment: regular, team: "Boston", started: "Y", pts: f(33.5), mins: f(31)},
		{id: 1, date: "2024-01-02", segment: regular, team: "Miami", pts: f(12.25), mins: f(18)},
		{id: 2, date: "2024-01-01", segment: regular, team: "Miami", pts: f(8), mins: f(12)},
		{id: 2, date: "2024-04-20", segment: "2024 Play-In Tournament", team: "Miami", pts: f(18), mins: f(30)},
		{id: 3, date: "2023-12-01", segment: "2023-24 In-Season Tournament", team: "Boston", pts: f(22), mins: f(28)},
	}
	first, _ := build(t, asOf, games...)

	shuffled := append([]game(nil), games...)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	second, _ := build(t, asOf, shuffled...)

	assert.Equal(t, first, second)
}
