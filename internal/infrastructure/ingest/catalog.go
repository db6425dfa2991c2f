package ingest

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/JonnyRank/bigdataball-data/internal/domain/gamelog"
)

// Profile describes how one category's sheets are laid out and how their
// normalized headers map onto canonical fields.
type Profile struct {
	// Signature lists canonical fields that must all appear on the header row.
	Signature []string `koanf:"signature"`
	// SkipAfterHeader is the number of sub-header rows below the header.
	SkipAfterHeader *int `koanf:"skip_after_header"`
	// Rename maps a normalized header to its canonical field.
	Rename map[string]string `koanf:"rename"`
	// Prefix maps a normalized header prefix to its canonical field, for
	// headers that carry long explanatory suffixes.
	Prefix map[string]string `koanf:"prefix"`
	// Drop lists normalized headers removed when present.
	Drop []string `koanf:"drop"`
}

func (p Profile) skip() int {
	if p.SkipAfterHeader == nil || *p.SkipAfterHeader < 0 {
		return 0
	}
	return *p.SkipAfterHeader
}

// canonical returns the field a normalized header maps to, and false when
// the column is dropped.
func (p Profile) canonical(name string) (string, bool) {
	for _, d := range p.Drop {
		if d == name {
			return "", false
		}
	}
	if field, ok := p.Rename[name]; ok {
		return field, true
	}
	longest := ""
	field := name
	for prefix, target := range p.Prefix {
		if strings.HasPrefix(name, prefix) && len(prefix) > len(longest) {
			longest, field = prefix, target
		}
	}
	return field, true
}

// Catalog holds one profile per category.
type Catalog map[gamelog.Category]Profile

func (c Catalog) Profile(category gamelog.Category) (Profile, error) {
	p, ok := c[category]
	if !ok {
		return Profile{}, fmt.Errorf("no column profile for category %q", category)
	}
	return p, nil
}

func intPtr(v int) *int { return &v }

// DefaultCatalog returns the built-in profiles for the BigDataBall feeds.
func DefaultCatalog() Catalog {
	return Catalog{
		gamelog.CategoryFantasy: {
			Signature:       []string{gamelog.FieldPlayerID, gamelog.FieldDate},
			SkipAfterHeader: intPtr(1),
			Rename: map[string]string{
				"BIGDATABALL_DATASET":             gamelog.FieldSegment,
				"PLAYER_FULL_NAME":                gamelog.FieldPlayer,
				"OWN_TEAM":                        gamelog.FieldTeam,
				"OPPONENT_TEAM":                   "OPPONENT",
				"STARTER_Y_N":                     gamelog.FieldStarted,
				"VENUE_R_H_N":                     "VENUE",
				"MIN":                             gamelog.FieldMinutes,
				"USAGE_RATE":                      gamelog.FieldUsage,
				"DRAFTKINGS":                      "DK_POSITION",
				"FOR_DRAFTKINGS_CLASSIC_CONTESTS": gamelog.FieldDKSalary,
				"DRAFTKINGS_1":                    gamelog.FieldDKPoints,
			},
			Prefix: map[string]string{
				"DAYS_REST": "DAYS_REST",
			},
			Drop: []string{
				"FANDUEL",
				"YAHOO",
				"FOR_FANDUEL_FULL_ROSTER_CONTESTS",
				"FOR_YAHOO_FULL_SLATE_CONTESTS",
				"FANDUEL_1",
				"YAHOO_1",
			},
		},
		gamelog.CategoryPlayer: {
			Signature:       []string{gamelog.FieldPlayerID, gamelog.FieldDate},
			SkipAfterHeader: intPtr(0),
			Rename: map[string]string{
				"BIGDATABALL_DATASET": gamelog.FieldSegment,
				"PLAYER_FULL_NAME":    gamelog.FieldPlayer,
				"OWN_TEAM":            gamelog.FieldTeam,
				"OPPONENT_TEAM":       "OPPONENT",
				"VENUE_R_H_N":         "VENUE",
				"STARTER_Y_N":         gamelog.FieldStarted,
				"MIN":                 gamelog.FieldMinutes,
				"OR":                  "OREB",
				"DR":                  "DREB",
				"TOT":                 "TREB",
				"A":                   "AST",
				"ST":                  "STL",
				"TO":                  "TOV",
				"BL":                  "BLK",
				"USAGE_RATE":          gamelog.FieldUsage,
			},
			Prefix: map[string]string{
				"DAYS_REST": "DAYS_REST",
			},
		},
	}
}

// LoadCatalog reads profile overrides from a YAML file and merges them over
// the defaults. An empty path returns the defaults.
//
//	fantasy:
//	  skip_after_header: 1
//	  rename:
//	    STARTER_Y_N: STARTED
//	  drop: [FANDUEL]
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if strings.TrimSpace(path) == "" {
		return catalog, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load column catalog %s: %w", path, err)
	}

	var overrides map[string]Profile
	if err := k.UnmarshalWithConf("", &overrides, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode column catalog %s: %w", path, err)
	}

	for name, override := range overrides {
		category, err := gamelog.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("column catalog %s: %w", path, err)
		}
		catalog[category] = merge(catalog[category], override)
	}
	return catalog, nil
}

func merge(base, override Profile) Profile {
	out := Profile{
		Signature:       base.Signature,
		SkipAfterHeader: base.SkipAfterHeader,
		Rename:          make(map[string]string, len(base.Rename)+len(override.Rename)),
		Prefix:          make(map[string]string, len(base.Prefix)+len(override.Prefix)),
		Drop:            append(append([]string(nil), base.Drop...), override.Drop...),
	}
	if len(override.Signature) > 0 {
		out.Signature = upper(override.Signature)
	}
	if override.SkipAfterHeader != nil {
		out.SkipAfterHeader = override.SkipAfterHeader
	}
	for k, v := range base.Rename {
		out.Rename[k] = v
	}
	for k, v := range override.Rename {
		out.Rename[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	for k, v := range base.Prefix {
		out.Prefix[k] = v
	}
	for k, v := range override.Prefix {
		out.Prefix[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	out.Drop = upper(out.Drop)
	return out
}

func upper(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(v)
	}
	return out
}
