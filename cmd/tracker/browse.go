package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feyloom/attunement-tracker/internal/clients/compendium"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List SRD wondrous items",
	Long:  `List the D&D 5e SRD wondrous-item category. The printed keys can be passed to inspect --srd.`,
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := compendium.New(&compendium.Config{BaseURL: cfg.CompendiumURL})
	if err != nil {
		return err
	}

	items, err := client.ListWondrousItems(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		fmt.Printf("%-40s %s\n", item.ID, item.Name)
	}
	fmt.Printf("\n%d wondrous items\n", len(items))
	return nil
}
