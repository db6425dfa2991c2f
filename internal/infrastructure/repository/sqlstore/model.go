package sqlstore

import "database/sql"

type playerTableModel struct {
	PlayerID   int64  `db:"player_id"`
	PlayerName string `db:"player_name"`
}

type teamMappingModel struct {
	RawTeamName      string `db:"raw_team_name"`
	TeamAbbreviation string `db:"team_abbreviation"`
}

type summaryTableModel struct {
	SeasonType string         `db:"season_type"`
	PlayerID   int64          `db:"player_id"`
	Player     string         `db:"player"`
	Season     string         `db:"season"`
	Team       sql.NullString `db:"team"`
	GP         int64          `db:"gp"`
	GS         int64          `db:"gs"`
	SALPG      int64          `db:"salpg"`
	FPPG       float64        `db:"fppg"`
	StdvFPPG   float64        `db:"stdv_fppg"`
	MPG        float64        `db:"mpg"`
	StdvMPG    float64        `db:"stdv_mpg"`
	FPPM       float64        `db:"fppm"`
	StdvFPPM   float64        `db:"stdv_fppm"`
	USG        float64        `db:"usg"`
	GSFPPG     float64        `db:"gsfppg"`
	StdvGSFPPG float64        `db:"stdv_gsfppg"`
	GSMPG      float64        `db:"gsmpg"`
	StdvGSMPG  float64        `db:"stdv_gsmpg"`
	GSFPPM     float64        `db:"gsfppm"`
	StdvGSFPPM float64        `db:"stdv_gsfppm"`
	L30GP      int64          `db:"l30_gp"`
	L30FPPM    float64        `db:"l30_fppm"`
}
