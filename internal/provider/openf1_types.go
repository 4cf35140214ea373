package provider

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type openF1Session struct {
	SessionKey       int        `json:"session_key"`
	MeetingKey       int        `json:"meeting_key"`
	Year             int        `json:"year"`
	SessionName      string     `json:"session_name"`
	SessionType      string     `json:"session_type"`
	Location         string     `json:"location"`
	CountryName      string     `json:"country_name"`
	CircuitShortName string     `json:"circuit_short_name"`
	DateStart        openF1Time `json:"date_start"`
}

// matches reports whether race names this session's venue under cmp
func (s openF1Session) matches(race string, cmp func(a, b string) bool) bool {
	race = strings.TrimSpace(race)
	if race == "" {
		return false
	}
	return cmp(s.Location, race) || cmp(s.CircuitShortName, race) || cmp(s.CountryName, race)
}

type openF1Meeting struct {
	MeetingKey          int    `json:"meeting_key"`
	MeetingName         string `json:"meeting_name"`
	MeetingOfficialName string `json:"meeting_official_name"`
	Year                int    `json:"year"`
}

func (m openF1Meeting) matches(race string, cmp func(a, b string) bool) bool {
	race = strings.TrimSpace(race)
	if race == "" {
		return false
	}
	return cmp(m.MeetingName, race) || cmp(m.MeetingOfficialName, race)
}

type openF1Driver struct {
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
}

type openF1Lap struct {
	LapNumber   int        `json:"lap_number"`
	LapDuration *float64   `json:"lap_duration"`
	DateStart   openF1Time `json:"date_start"`
	IsPitOutLap bool       `json:"is_pit_out_lap"`
}

type openF1Location struct {
	Date openF1Time `json:"date"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
	Z    float64    `json:"z"`
}

type openF1CarData struct {
	Date  openF1Time `json:"date"`
	Speed float64    `json:"speed"`
}

type openF1Result struct {
	DriverNumber int      `json:"driver_number"`
	Position     *int     `json:"position"`
	Points       *float64 `json:"points"`
}

type openF1Grid struct {
	DriverNumber int  `json:"driver_number"`
	Position     *int `json:"position"`
}

// openF1Time decodes the API's ISO 8601 timestamps, with or without zone and fraction
type openF1Time struct {
	time.Time
}

var openF1Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func (t *openF1Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	for _, layout := range openF1Layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
