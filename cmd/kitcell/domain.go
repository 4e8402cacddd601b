package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alineos/kitcell/internal/config"
	"github.com/alineos/kitcell/internal/domain"
	"github.com/alineos/kitcell/internal/domaingen"
)

func domainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Manage domain environment files",
	}
	cmd.AddCommand(domainGenerateCmd())
	cmd.AddCommand(domainInspectCmd())
	return cmd
}

func domainGenerateCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a domain environment file",
		Long: "Generate a domain environment file. Without --input the built-in test cell " +
			"is emitted. Parsing external world descriptions is not implemented yet; " +
			"passing --input fails without writing anything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := domaingen.Generate(input)
			if err != nil {
				return err
			}
			if err := domaingen.WriteFile(doc, output); err != nil {
				return err
			}
			log.Info().Str("path", output).Msg("domain file written")
			printSummary(cmd.OutOrStdout(), domaingen.Summarize(doc))
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "external world description to convert (omit for the built-in test cell)")
	cmd.Flags().StringVar(&output, "output", config.DefaultDomainPath, "output path")
	return cmd
}

func domainInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <path>",
		Short: "Load and integrity-check a domain file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := domain.Load(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), domaingen.Summarize(env.Document()))
			return nil
		},
	}
}

func printSummary(w io.Writer, s domaingen.Summary) {
	fmt.Fprintf(w, "zones: %d\nshelves: %d\ntables: %d\ndoors: %d\nitems: %d\ngrid: %gx%g\n",
		s.Zones, s.Shelves, s.Tables, s.Doors, s.Items, s.Width, s.Height)
}
