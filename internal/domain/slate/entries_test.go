package slate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entriesExport = `Entry ID,Contest Name,Contest ID,Entry Fee,PG,SG,SF,PF,C,G,F,UTIL,,Instructions
4711,NBA $5 Double Up,1234,$5,,,,,,,,,,1. Locate the player you want to select
,,,,,,,,,,,,,
,,,,,,,,,,,,,Position,Name + ID,Name,ID,Roster Position,Salary,Game Info,TeamAbbrev,AvgPointsPerGame
,,,,,,,,,,,,,PG,"Nikola Jokić (3901)",Nikola Jokić,3901,C/UTIL,11800,DEN@LAL 10/22/2025 10:00PM ET,DEN,58.2
,,,,,,,,,,,,,SG,AJ Green (3902),AJ Green,3902,SG/G/UTIL,3200,MIL@WAS 10/22/2025 07:00PM ET,MIL,14.9
,,,,,,,,,,,,,C,Nikola Jokić (3901),Nikola Jokić,3901,C/UTIL,11800,DEN@LAL 10/22/2025 10:00PM ET,DEN,58.2
,,,,,,,,,,,,,SF,  ,  ,3903,SF/F/UTIL,3000,,,
`

func TestParseEntries(t *testing.T) {
	names, err := ParseEntries(strings.NewReader(entriesExport))
	require.NoError(t, err)
	assert.Equal(t, []string{"Nikola Jokić", "AJ Green"}, names)
}

func TestParseEntriesWithoutHeader(t *testing.T) {
	_, err := ParseEntries(strings.NewReader("Entry ID,Contest Name\n1,Double Up\n"))
	if !errors.Is(err, ErrEntriesHeaderNotFound) {
		t.Fatalf("expected ErrEntriesHeaderNotFound, got %v", err)
	}

	_, err = ParseEntries(strings.NewReader("Position,Name + ID,Player,ID\n"))
	if !errors.Is(err, ErrEntriesHeaderNotFound) {
		t.Fatalf("expected ErrEntriesHeaderNotFound for header without Name, got %v", err)
	}
}

func TestSeasonsAt(t *testing.T) {
	cases := []struct {
		at      time.Time
		prior   string
		current string
	}{
		{time.Date(2025, time.October, 21, 0, 0, 0, 0, time.UTC), "2024-25", "2025-26"},
		{time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), "2024-25", "2025-26"},
		{time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC), "2024-25", "2025-26"},
		{time.Date(2099, time.December, 1, 0, 0, 0, 0, time.UTC), "2098-99", "2099-00"},
	}
	for _, tc := range cases {
		prior, current := SeasonsAt(tc.at)
		assert.Equal(t, tc.prior, prior, tc.at.String())
		assert.Equal(t, tc.current, current, tc.at.String())
	}
}
