package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// YearCmd returns the year command.
func YearCmd() *cli.Command {
	return &cli.Command{
		Name:      "year",
		Aliases:   []string{"y"},
		Usage:     "Print the year each file last changed",
		ArgsUsage: "FILE...",
		Flags:     commonFlags(),
		Action:    yearAction,
	}
}

func yearAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}
	files := c.Args().Slice()

	ctx, err := NewCommandContext(c, files[0])
	if err != nil {
		return err
	}
	defer ctx.Close()

	for _, file := range files {
		year, err := ctx.Lookup.YearOfLastChange(c.Context, file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		fmt.Fprintf(c.App.Writer, "%s\t%d\n", file, year)
	}
	return nil
}
