package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"secondbrain/internal/domain"
	"secondbrain/internal/service"
	"secondbrain/internal/storage"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Print the source registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		repo, err := storage.NewBadgerRepository(cfg.BadgerDBPath, log)
		if err != nil {
			return err
		}
		defer repo.Close()

		sources, err := service.NewSourceRegistry(repo, log).ListSources(cmd.Context())
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No sources registered yet.")
			return nil
		}
		if err != nil {
			return err
		}
		for _, s := range sources {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", s.Name, s.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}
