package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/catalog"
	"github.com/skyforge/astropress/pkg/kit"
	"github.com/skyforge/astropress/pkg/latitude"
	"github.com/skyforge/astropress/pkg/parts"
)

// combinationOpts holds the combination flags shared by the parts subcommands.
type combinationOpts struct {
	latitude string
	language string
	kitType  string
	format   string
}

// register adds the combination flags to cmd.
func (o *combinationOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.latitude, "latitude", "52", "latitude in degrees, south negative")
	cmd.Flags().StringVar(&o.language, "language", kit.DefaultLanguage, "booklet language code")
	cmd.Flags().StringVar(&o.kitType, "type", parts.TypeFull, "kit type: full, simplified")
	cmd.Flags().StringVar(&o.format, "format", parts.FormatPNG, "part image format: png, svg, pdf")
}

// combination validates the flags and assembles the kit combination.
func (o *combinationOpts) combination() (kit.Combination, error) {
	lat, err := latitude.Parse(o.latitude)
	if err != nil {
		return kit.Combination{}, err
	}
	if err := catalog.ValidateLanguage(o.language); err != nil {
		return kit.Combination{}, err
	}
	if err := parts.ValidateType(o.kitType); err != nil {
		return kit.Combination{}, err
	}
	if err := parts.ValidateFormat(o.format); err != nil {
		return kit.Combination{}, err
	}
	return kit.Combination{Latitude: lat, Language: o.language, Type: o.kitType, Format: o.format}, nil
}

// partsCommand creates the parts inspection command.
func (c *CLI) partsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Inspect the part images a kit expects",
	}

	cmd.AddCommand(c.partsListCommand())
	cmd.AddCommand(c.partsFilenameCommand())

	return cmd
}

// partsListCommand creates the "parts list" subcommand.
func (c *CLI) partsListCommand() *cobra.Command {
	var opts combinationOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the part files one kit combination expects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comb, err := opts.combination()
			if err != nil {
				return err
			}
			fmt.Println(partTable(comb))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

// partsFilenameCommand creates the "parts filename" subcommand.
func (c *CLI) partsFilenameCommand() *cobra.Command {
	var opts combinationOpts

	cmd := &cobra.Command{
		Use:   "filename [kind]",
		Short: "Print the expected filename for one part image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := parts.ValidateKind(args[0]); err != nil {
				return err
			}
			comb, err := opts.combination()
			if err != nil {
				return err
			}
			fmt.Println(parts.Filename(args[0], comb.Latitude, comb.Language, comb.Type, comb.Format))
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}

// partTable renders the expected part files for one combination.
func partTable(comb kit.Combination) string {
	inBooklet := make(map[string]bool, len(parts.BookletKinds))
	for _, kind := range parts.BookletKinds {
		inBooklet[kind] = true
	}

	rows := make([][]string, 0, len(parts.Kinds))
	for _, kind := range parts.Kinds {
		mark := "—"
		if inBooklet[kind] {
			mark = "✓"
		}
		name := parts.Filename(kind, comb.Latitude, comb.Language, comb.Type, comb.Format)
		rows = append(rows, []string{kind, name, mark, parts.Describe(kind)})
	}

	return newTable().
		Headers("Part", "File", "Booklet", "Description").
		Rows(rows...).
		Render()
}
