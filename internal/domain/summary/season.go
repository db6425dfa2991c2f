package summary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type SeasonType string

const (
	SeasonRegular  SeasonType = "Regular"
	SeasonPlayoffs SeasonType = "Playoffs"
)

var yearToken = regexp.MustCompile(`\d{4}`)

// Classify derives the season type and key from a free-text segment such as
// "2023-24 Regular Season" (Regular, "2023-24") or "2024 Playoffs"
// (Playoffs, "2024"). ok is false when the segment matches neither type or
// carries no four-digit year.
func Classify(segment string) (SeasonType, string, bool) {
	var seasonType SeasonType
	switch {
	case strings.Contains(segment, "Regular Season"), strings.Contains(segment, "In-Season Tournament"):
		seasonType = SeasonRegular
	case strings.Contains(segment, "Playoffs"), strings.Contains(segment, "Play-In"):
		seasonType = SeasonPlayoffs
	default:
		return "", "", false
	}

	token := yearToken.FindString(segment)
	if token == "" {
		return "", "", false
	}
	if seasonType == SeasonPlayoffs {
		return seasonType, token, true
	}

	year, err := strconv.Atoi(token)
	if err != nil {
		return "", "", false
	}
	return seasonType, fmt.Sprintf("%s-%02d", token, (year+1)%100), true
}
