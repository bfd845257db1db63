package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyforge/astropress/pkg/booklet"
	"github.com/skyforge/astropress/pkg/catalog"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	latitude    string // latitude as typeset on the title page
	motherBack  string // mother back image path
	motherFront string // mother front image path
	rule        string // rule image path
	rete        string // rete image path
	language    string // booklet language code
	output      string // output file path (stdout when empty)
}

// renderCommand creates the render command for producing a single booklet
// from explicit part image paths.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one booklet from explicit part images",
		Long: `Render one booklet from explicit part images.

Unlike build, render derives nothing from a kit combination: the latitude
string is typeset exactly as given and the four image paths are embedded
verbatim. The rendered LaTeX source goes to stdout unless -o is set, so
the output can be piped straight into a TeX toolchain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(opts)
		},
	}

	cmd.Flags().StringVar(&opts.latitude, "latitude", "", `latitude as typeset on the title page, e.g. '$52^\circ$N'`)
	cmd.Flags().StringVar(&opts.motherBack, "mother-back", "", "mother back image path")
	cmd.Flags().StringVar(&opts.motherFront, "mother-front", "", "mother front image path")
	cmd.Flags().StringVar(&opts.rule, "rule", "", "rule image path")
	cmd.Flags().StringVar(&opts.rete, "rete", "", "rete image path")
	cmd.Flags().StringVar(&opts.language, "language", "", "booklet language code (default en)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// runRender renders the booklet and writes it to the requested output.
func (c *CLI) runRender(opts renderOpts) error {
	variant := booklet.DefaultVariant
	if opts.language != "" {
		lang, err := catalog.FindLanguage(opts.language)
		if err != nil {
			return err
		}
		if lang.Skeleton != "" {
			variant = lang.Skeleton
		}
	}

	tmpl, err := booklet.TemplateFor(variant)
	if err != nil {
		return err
	}

	params := booklet.Parameters{
		Latitude:    opts.latitude,
		MotherBack:  opts.motherBack,
		MotherFront: opts.motherFront,
		Rule:        opts.rule,
		Rete:        opts.rete,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	doc, err := tmpl.Render(params.Values())
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.WriteString(out, doc); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Rendered booklet")
		printFile(opts.output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
