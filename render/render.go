// Package render draws a turn observation as terminal panels.
package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minPanelWidth = 24
	panelHeight   = 6
)

var statusColors = map[battle.Status]lipgloss.Color{
	battle.STATUS_BRN: lipgloss.Color("#E36D1C"),
	battle.STATUS_PAR: lipgloss.Color("#FFD400"),
	battle.STATUS_TOX: lipgloss.Color("#A61AE5"),
	battle.STATUS_PSN: lipgloss.Color("#A61AE5"),
	battle.STATUS_FRZ: lipgloss.Color("#31BBCE"),
	battle.STATUS_SLP: lipgloss.Color("#BCE9EF"),
	battle.STATUS_FNT: lipgloss.Color("#555555"),
}

var statusTxt = map[battle.Status]string{
	battle.STATUS_BRN: "BRN",
	battle.STATUS_PAR: "PAR",
	battle.STATUS_FRZ: "FRZ",
	battle.STATUS_TOX: "TOX",
	battle.STATUS_PSN: "PSN",
	battle.STATUS_SLP: "SLP",
	battle.STATUS_FNT: "FNT",
}

var (
	titleCaser = cases.Title(language.English)

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).Padding(0, 1)
)

// Observation renders both sides of obs next to each other within width columns,
// with the field state underneath.
func Observation(obs *battle.Observation, width int) string {
	if obs == nil {
		return ""
	}

	// two panels side by side, each with a border and padding
	panelWidth := max(minPanelWidth, width/2-4)

	player := side("You", obs.ActivePokemon, obs.SideConditions, panelWidth)
	opponent := side("Opponent", obs.OpponentActivePokemon, obs.OpponentSideConditions, panelWidth)

	var sides string
	if width > 0 && width < 2*(panelWidth+4) {
		sides = lipgloss.JoinVertical(lipgloss.Left, player, opponent)
	} else {
		sides = lipgloss.JoinHorizontal(lipgloss.Top, player, opponent)
	}

	if field := fieldLine(obs); field != "" {
		return lipgloss.JoinVertical(lipgloss.Left, sides, field)
	}
	return sides
}

func side(title string, active []*battle.ObservedPokemon, conditions map[battle.SideCondition]int, width int) string {
	rows := []string{headerStyle.Render(title)}

	for _, pokemon := range active {
		if pokemon == nil {
			rows = append(rows, mutedStyle.Render("(empty)"))
			continue
		}
		rows = append(rows, pokemonPanel(pokemon, width))
	}

	if line := sideConditionLine(conditions); line != "" {
		rows = append(rows, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func pokemonPanel(pokemon *battle.ObservedPokemon, width int) string {
	statusText := ""
	if text, ok := statusTxt[pokemon.Status]; ok {
		statusText = lipgloss.NewStyle().Background(statusColors[pokemon.Status]).Render(text) + " "
	}

	name := pokemon.Name
	if name == "" {
		name = titleCaser.String(pokemon.Species)
	}

	types := strings.Join(lo.Map(pokemon.Types, func(t battle.PokemonType, _ int) string { return t.String() }), "/")
	if pokemon.Terastallized {
		types = "Tera " + pokemon.TeraType.String()
	}

	healthBar := progress.New(progress.WithDefaultGradient())
	healthBar.Width = width / 2

	rows := []string{
		fmt.Sprintf("%s%s L%d", statusText, name, pokemon.Level),
		mutedStyle.Render(types),
		lipgloss.JoinHorizontal(lipgloss.Center, healthBar.ViewAs(pokemon.HPFraction), " ", hpText(pokemon)),
	}
	if boosts := boostLine(pokemon.Boosts); boosts != "" {
		rows = append(rows, boosts)
	}
	if effects := effectLine(pokemon.Effects); effects != "" {
		rows = append(rows, mutedStyle.Render(effects))
	}

	return panelStyle.Width(width).Height(panelHeight).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func hpText(pokemon *battle.ObservedPokemon) string {
	if pokemon.MaxHP > 0 {
		return fmt.Sprintf("%d/%d", pokemon.CurrentHP, pokemon.MaxHP)
	}
	return fmt.Sprintf("%d%%", int(pokemon.HPFraction*100+0.5))
}

var boostOrder = []string{"atk", "def", "spa", "spd", "spe", "accuracy", "evasion"}

func boostLine(boosts map[string]int) string {
	parts := []string{}
	for _, stat := range boostOrder {
		if amount := boosts[stat]; amount != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", statName(stat), amount))
		}
	}
	return strings.Join(parts, " ")
}

func statName(stat string) string {
	switch stat {
	case "accuracy":
		return "Acc"
	case "evasion":
		return "Eva"
	case "spa":
		return "SpA"
	case "spd":
		return "SpD"
	}
	return titleCaser.String(stat)
}

func effectLine(effects map[battle.Effect]int) string {
	return strings.Join(sortedNames(slices.Collect(maps.Keys(effects))), ", ")
}

func sideConditionLine(conditions map[battle.SideCondition]int) string {
	names := []string{}
	for condition, layers := range conditions {
		name := titleCaser.String(condition.String())
		if condition.Stackable() && layers > 1 {
			name = fmt.Sprintf("%s x%d", name, layers)
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func fieldLine(obs *battle.Observation) string {
	parts := sortedNames(slices.Collect(maps.Keys(obs.Weather)))
	parts = append(parts, sortedNames(slices.Collect(maps.Keys(obs.Fields)))...)
	if len(parts) == 0 {
		return ""
	}
	return mutedStyle.Render("Field: " + strings.Join(parts, ", "))
}

func sortedNames[T fmt.Stringer](values []T) []string {
	names := lo.Map(values, func(value T, _ int) string { return titleCaser.String(value.String()) })
	slices.Sort(names)
	return names
}
