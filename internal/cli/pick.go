package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/catalog"
	"github.com/skyforge/astropress/pkg/latitude"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LocationListModel - Interactive location selection
// =============================================================================

// LocationListModel is the bubbletea model for interactive location selection.
type LocationListModel struct {
	Locations []catalog.Location
	Cursor    int
	Selected  *catalog.Location
	Height    int
	Offset    int
}

// NewLocationListModel creates a new location list model.
func NewLocationListModel(locations []catalog.Location) LocationListModel {
	return LocationListModel{
		Locations: locations,
		Cursor:    0,
		Height:    15,
		Offset:    0,
	}
}

func (m LocationListModel) Init() tea.Cmd {
	return nil
}

func (m LocationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Locations)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Locations[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LocationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Location"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Locations) {
		end = len(m.Locations)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		loc := m.Locations[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		display := fmt.Sprintf("%.1f", loc.Latitude)
		code := ""
		if lat, err := latitude.New(loc.Latitude); err == nil {
			display = lat.String()
			code = lat.Code()
		}

		rows = append(rows, []string{cursor, loc.Name, loc.Country, display, code})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "City", "Country", "Latitude", "Code").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Locations) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorGray)
			} else {
				base = base.Foreground(colorWhite)
			}
			if actualIdx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Locations))))

	return b.String()
}

// =============================================================================
// Pick Command
// =============================================================================

// pickCommand creates the pick command: an interactive location picker that
// feeds the selected latitude into a build.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		search       string
		languagesStr string
		formatsStr   string
		output       string
		noCache      bool
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a location interactively and build its kit",
		Long: `Pick a location interactively and build its kit.

The picker lists the location catalog; the selected city's latitude is fed
into a build with the usual defaults. Use the build command directly for
full control over the combination set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), search, languagesStr, formatsStr, output, noCache, configPath)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter locations by name or country")
	cmd.Flags().StringVar(&languagesStr, "languages", "", `comma-separated booklet language codes (default "en")`)
	cmd.Flags().StringVar(&formatsStr, "formats", "", `comma-separated part image formats (default "png")`)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output directory (default "output")`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (default astropress.toml)")

	return cmd
}

// runPick shows the picker and builds a kit for the chosen location.
func (c *CLI) runPick(ctx context.Context, search, languagesStr, formatsStr, output string, noCache bool, configPath string) error {
	locations, err := lookupLocations(search)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		printError("No locations match %q", search)
		return fmt.Errorf("no locations match %q", search)
	}

	m := NewLocationListModel(locations)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(LocationListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	loc := *fm.Selected
	lat, err := latitude.New(loc.Latitude)
	if err != nil {
		return err
	}

	printSuccess("Selected %s", loc.Name)
	printKeyValue("Country", loc.Country)
	printKeyValue("Latitude", lat.String())
	printKeyValue("Code", lat.Code())
	printNewline()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.buildOptions()
	if err != nil {
		return err
	}
	opts.Latitudes = []latitude.Latitude{lat}
	if languagesStr != "" {
		opts.Languages = parseList(languagesStr)
	}
	if formatsStr != "" {
		opts.Formats = parseList(formatsStr)
	}
	if output != "" {
		opts.OutputDir = output
	}

	return c.runBuild(ctx, opts, noCache)
}
