package commands

import (
	"io"
	"strconv"
	"time"

	"vlrscraper/internal/entities"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func statInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func statFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func matchDate(m entities.Match) string {
	date, ok := m.Date()
	if !ok {
		return "TBD"
	}
	return date.Local().Format(time.DateTime)
}

func renderPlayer(out io.Writer, p entities.Player) {
	t := newTable(out)
	t.AppendRow(table.Row{"ID", p.ID()})
	t.AppendRow(table.Row{"Alias", p.DisplayName()})
	t.AppendRow(table.Row{"Name", p.Name()})
	t.AppendRow(table.Row{"Status", p.Status().String()})
	if team := p.Team(); team != nil {
		t.AppendRow(table.Row{"Team", team.Name()})
	}
	t.AppendRow(table.Row{"Image", p.Image()})
	t.Render()
}

func renderTeams(out io.Writer, teams []entities.Team) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Tag", "Logo"})
	for _, team := range teams {
		t.AppendRow(table.Row{team.ID(), team.Name(), team.Tag(), team.Logo()})
	}
	t.Render()
}

func renderRoster(out io.Writer, team entities.Team) {
	t := newTable(out)
	t.SetTitle("%s [%s]", team.Name(), team.Tag())
	t.AppendHeader(table.Row{"ID", "Alias", "Name", "Status"})
	roster, _ := team.Roster()
	for _, p := range roster {
		t.AppendRow(table.Row{p.ID(), p.DisplayName(), p.Name(), p.Status().String()})
	}
	t.Render()
}

func renderMatches(out io.Writer, matches []entities.Match) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Date", "Match", "Teams"})
	for _, m := range matches {
		teams := ""
		if pair := m.Teams(); len(pair) == 2 {
			teams = pair[0].Name() + " vs " + pair[1].Name()
		}
		t.AppendRow(table.Row{m.ID(), matchDate(m), m.FullName(), teams})
	}
	t.Render()
}

func renderMatchStats(out io.Writer, m entities.Match) {
	t := newTable(out)
	t.SetTitle("%s (%s)", m.FullName(), matchDate(m))
	t.AppendHeader(table.Row{
		"Team", "Player", "R", "ACS", "K", "D", "A", "+/-",
		"KAST", "ADR", "HS%", "FK", "FD", "FK+/-",
	})
	for _, team := range m.Teams() {
		roster, _ := team.Roster()
		for _, p := range roster {
			s, ok := m.PlayerStats(p.ID())
			if !ok {
				t.AppendRow(table.Row{team.Name(), p.DisplayName()})
				continue
			}
			t.AppendRow(table.Row{
				team.Name(), p.DisplayName(),
				statFloat(s.Rating), statInt(s.ACS),
				statInt(s.Kills), statInt(s.Deaths), statInt(s.Assists), statInt(s.KD),
				statInt(s.KAST), statInt(s.ADR), statInt(s.HS),
				statInt(s.FK), statInt(s.FD), statInt(s.FKFD),
			})
		}
		t.AppendSeparator()
	}
	t.Render()
}
