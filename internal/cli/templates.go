package cli

import (
	"fmt"

	"github.com/jakoblorz/wdk-wizard/internal/models"
	"github.com/jakoblorz/wdk-wizard/internal/templates"
	"github.com/spf13/cobra"
)

// TemplatesCommand lists or renders the embedded crate templates
type TemplatesCommand struct {
	crateName  string
	driverType string
}

// NewTemplatesCommand creates the templates command
func NewTemplatesCommand() *cobra.Command {
	tc := &TemplatesCommand{}

	cmd := &cobra.Command{
		Use:   "templates [name]",
		Short: "List or render the files written into a new crate",
		Long: `Without arguments, list the template names in the order they are written.
With a name, render that template to stdout using --name and --driver-type.

Example:
  wdk-wizard templates
  wdk-wizard templates install_descriptor_inx --name my_driver --driver-type KMDF`,
		Args: cobra.MaximumNArgs(1),
		RunE: tc.Run,
	}

	cmd.Flags().StringVar(&tc.crateName, "name", "my_driver", "Crate name to substitute")
	cmd.Flags().StringVar(&tc.driverType, "driver-type", string(models.DriverKMDF), "Driver type to substitute (WDM, KMDF, UMDF)")

	return cmd
}

// Run executes the templates command
func (c *TemplatesCommand) Run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, name := range templates.Names() {
			_, _ = fmt.Fprintln(out, name)
		}
		return nil
	}

	name, err := templates.ParseName(args[0])
	if err != nil {
		return err
	}

	driverType, err := models.ParseDriverType(c.driverType)
	if err != nil {
		return err
	}

	body, err := templates.Render(name, templates.Data{
		CrateName:  c.crateName,
		DriverType: driverType.String(),
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, body)
	return err
}
