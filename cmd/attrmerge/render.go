package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/attrmerge/playground"
)

func renderCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "render [scenario]",
		Short: "Build a scenario and print its resolved elements",
		Long: `Build one of the bundled composition scenarios, finalize its tree,
and print every resolved element with its effective attributes.

Run with --list to see the available scenarios.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				for _, sc := range playground.All() {
					fmt.Printf("  %-22s %s\n", sc.Name, sc.Description)
				}
				return nil
			}

			sc, err := playground.Get(args[0])
			if err != nil {
				return err
			}
			comp, err := sc.Build()
			if err != nil {
				return err
			}

			info("scenario: %s", sc.Name)
			fmt.Print(playground.Render(comp.Root))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available scenarios")

	return cmd
}
