package summary

import (
	"sort"
	"strings"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

type groupKey struct {
	seasonType SeasonType
	playerID   int64
	player     string
	season     string
	team       string
}

type accumulator struct {
	key groupKey

	gp, gs int64

	salary, points, minutes, usage series
	rates                          series
	gsPoints, gsMinutes, gsRates   series

	rate, gsRate, l30Rate ratio
	l30GP                 int64
}

// Build recomputes every summary row from the full raw history. It is a pure
// function: the same input always yields the same rows in the same order.
func Build(in Input, opts Options) ([]Row, Report) {
	windowDays := opts.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	windowEnd := calendarDay(in.AsOf)
	windowStart := windowEnd.AddDate(0, 0, -(windowDays - 1))

	report := Report{Records: len(in.Records)}
	badSegments := make(map[string]struct{})
	groups := make(map[groupKey]*accumulator)

	for _, rec := range in.Records {
		seasonType, season, ok := Classify(rec.TextOf(gamelog.FieldSegment))
		if !ok {
			report.Unclassified++
			badSegments[rec.TextOf(gamelog.FieldSegment)] = struct{}{}
			continue
		}
		played, err := time.Parse(gamelog.DateLayout, rec.Date)
		if err != nil {
			report.BadDates++
			continue
		}

		name, ok := in.Names[rec.PlayerID]
		if !ok || strings.TrimSpace(name) == "" {
			name = rec.Player
		}
		team, ok := in.Teams[rec.TextOf(gamelog.FieldTeam)]
		if !ok {
			report.UnmappedTeams++
		}

		key := groupKey{seasonType: seasonType, playerID: rec.PlayerID, player: name, season: season, team: team}
		acc := groups[key]
		if acc == nil {
			acc = &accumulator{key: key}
			groups[key] = acc
		}
		acc.add(rec, !played.Before(windowStart) && !played.After(windowEnd))
	}

	rows := make([]Row, 0, len(groups))
	for _, acc := range groups {
		rows = append(rows, acc.row())
	}
	sortRows(rows)

	report.Groups = len(rows)
	for seg := range badSegments {
		report.UnclassifiedSegments = append(report.UnclassifiedSegments, seg)
	}
	sort.Strings(report.UnclassifiedSegments)
	return rows, report
}

func (a *accumulator) add(rec gamelog.Record, inWindow bool) {
	a.gp++
	started := strings.EqualFold(strings.TrimSpace(rec.TextOf(gamelog.FieldStarted)), "Y")
	if started {
		a.gs++
	}

	if v, ok := rec.NumberOf(gamelog.FieldDKSalary); ok {
		a.salary = append(a.salary, v)
	}
	if v, ok := rec.NumberOf(gamelog.FieldUsage); ok {
		a.usage = append(a.usage, v)
	}

	pts, hasPts := rec.NumberOf(gamelog.FieldDKPoints)
	mins, hasMins := rec.NumberOf(gamelog.FieldMinutes)
	if hasPts {
		a.points = append(a.points, pts)
	}
	if hasMins {
		a.minutes = append(a.minutes, mins)
	}

	// per-game rate is 0 when undefined so it never poisons the deviation
	gameRate := 0.0
	if hasPts && hasMins {
		gameRate = safeDiv(pts, mins)
		a.rate.add(pts, mins)
	}
	a.rates = append(a.rates, gameRate)

	if started {
		if hasPts {
			a.gsPoints = append(a.gsPoints, pts)
		}
		if hasMins {
			a.gsMinutes = append(a.gsMinutes, mins)
		}
		if hasPts && hasMins {
			a.gsRate.add(pts, mins)
		}
		a.gsRates = append(a.gsRates, gameRate)
	}

	if inWindow {
		a.l30GP++
		if hasPts && hasMins {
			a.l30Rate.add(pts, mins)
		}
	}
}

func (a *accumulator) row() Row {
	return Row{
		SeasonType: a.key.seasonType,
		PlayerID:   a.key.playerID,
		Player:     a.key.player,
		Season:     a.key.season,
		Team:       a.key.team,

		GP:    a.gp,
		GS:    a.gs,
		SALPG: int64(round(a.salary.mean(), 0)),

		FPPG:       round(a.points.mean(), 2),
		StdvFPPG:   round(a.points.stdev(), 2),
		MPG:        round(a.minutes.mean(), 1),
		StdvMPG:    round(a.minutes.stdev(), 2),
		FPPM:       round(a.rate.value(), 2),
		StdvFPPM:   round(a.rates.stdev(), 2),
		USG:        round(a.usage.mean(), 1),
		GSFPPG:     round(a.gsPoints.mean(), 2),
		StdvGSFPPG: round(a.gsPoints.stdev(), 2),
		GSMPG:      round(a.gsMinutes.mean(), 1),
		StdvGSMPG:  round(a.gsMinutes.stdev(), 2),
		GSFPPM:     round(a.gsRate.value(), 2),
		StdvGSFPPM: round(a.gsRates.stdev(), 2),

		L30GP:   a.l30GP,
		L30FPPM: round(a.l30Rate.value(), 2),
	}
}

// sortRows orders by season type, season, player, id, then team with
// unmapped teams last.
func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.SeasonType != b.SeasonType {
			return a.SeasonType > b.SeasonType
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		if (a.Team == "") != (b.Team == "") {
			return b.Team == ""
		}
		return a.Team < b.Team
	})
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
