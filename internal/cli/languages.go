package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/catalog"
)

// languagesCommand creates the languages listing command.
func (c *CLI) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages booklets can be rendered in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			languages, err := catalog.Languages()
			if err != nil {
				return err
			}
			fmt.Println(languageTable(languages))
			return nil
		},
	}
}

// languageTable renders the language catalog. Languages without a bundled
// booklet skeleton fall back to the English one at render time.
func languageTable(languages []catalog.Language) string {
	rows := make([][]string, 0, len(languages))
	for _, lang := range languages {
		skeleton := "en (fallback)"
		if lang.Skeleton != "" {
			skeleton = lang.Skeleton
		}
		rows = append(rows, []string{lang.Code, lang.Name, lang.Native, skeleton})
	}

	return newTable().
		Headers("Code", "Language", "Native", "Booklet").
		Rows(rows...).
		Render()
}
