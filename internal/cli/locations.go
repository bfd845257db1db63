package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/catalog"
	"github.com/skyforge/astropress/pkg/latitude"
)

// locationsCommand creates the location catalog listing command.
func (c *CLI) locationsCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List the location catalog with kit latitudes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, err := lookupLocations(search)
			if err != nil {
				return err
			}
			if len(locations) == 0 {
				printInfo("No locations match %q", search)
				return nil
			}
			fmt.Println(locationTable(locations))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter locations by name or country")
	return cmd
}

// lookupLocations returns the full catalog, or the subset matching query.
func lookupLocations(query string) ([]catalog.Location, error) {
	if query == "" {
		return catalog.Locations()
	}
	return catalog.SearchLocations(query)
}

// locationTable renders locations with both the display latitude and the
// code used in part filenames.
func locationTable(locations []catalog.Location) string {
	rows := make([][]string, 0, len(locations))
	for _, loc := range locations {
		lat, err := latitude.New(loc.Latitude)
		if err != nil {
			continue
		}
		rows = append(rows, []string{loc.Name, loc.Country, lat.String(), lat.Code()})
	}

	return newTable().
		Headers("City", "Country", "Latitude", "Code").
		Rows(rows...).
		Render()
}
