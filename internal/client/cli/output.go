package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// maxCellWidth обрезает длинные значения в таблицах
const maxCellWidth = 40

var (
	accent = lipgloss.Color("#7C3AED")
	muted  = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(muted)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
)

// printJSON writes v as indented JSON.
func (c *Cli) printJSON(v any) error {
	enc := json.NewEncoder(c.io)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printYAML writes v as YAML.
func (c *Cli) printYAML(v any) error {
	enc := yaml.NewEncoder(c.io)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// printData writes v as JSON with --json and as YAML otherwise.
func (c *Cli) printData(v any) error {
	if c.jsonOut {
		return c.printJSON(v)
	}
	return c.printYAML(v)
}

// printTable renders rows with a styled header.
func (c *Cli) printTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	c.io.Println(t.Render())
}

// printTitle prints a section title, styled only on a terminal.
func (c *Cli) printTitle(title string) {
	if c.io.IsTerminal() {
		c.io.Println(titleStyle.Render(title))
		return
	}
	c.io.Println("=== " + title + " ===")
}

// printEntities writes entities as JSON or, through their JSON form, as YAML.
func (c *Cli) printEntities(v any) error {
	if c.jsonOut {
		return c.printJSON(v)
	}
	generic, err := viaJSON(v)
	if err != nil {
		return err
	}
	return c.printYAML(generic)
}

// viaJSON round-trips v through JSON, so YAML output uses the JSON field names.
func viaJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// toMap converts an entity into a generic JSON object.
func toMap(v any) (map[string]any, error) {
	generic, err := viaJSON(v)
	if err != nil {
		return nil, err
	}
	m, ok := generic.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", generic)
	}
	return m, nil
}

// formatCell renders a decoded JSON value for a table cell.
func formatCell(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		s = fmt.Sprint(val)
	}

	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-1]) + "…"
	}
	return s
}
