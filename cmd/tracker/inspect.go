package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feyloom/attunement-tracker/internal/attunement"
	"github.com/feyloom/attunement-tracker/internal/clients/compendium"
	"github.com/feyloom/attunement-tracker/internal/flags"
)

var inspectSRDKey string

var inspectCmd = &cobra.Command{
	Use:   "inspect <item-id>",
	Short: "Show an item's stored weight",
	Long: `Show the attunement weight stored for an item. With --srd, also look
the item up in the D&D 5e SRD compendium by its API key (for example
"ring-of-protection").`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSRDKey, "srd", "", "SRD compendium key to look up alongside the stored weight")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	itemID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out, err := store.Flags.Get(ctx, flags.GetInput{
		Scope:     flags.DocScope{Kind: flags.DocItem, ID: itemID},
		Namespace: attunement.FlagNamespace,
		Key:       attunement.FlagKeyWeight,
	})
	if err != nil {
		return err
	}

	fmt.Printf("item %s\n", itemID)
	if out.Found {
		fmt.Printf("  stored weight: %v\n", out.Value)
	} else {
		fmt.Printf("  stored weight: none (counts as %d while attuned)\n", attunement.DefaultWeight)
	}

	if inspectSRDKey == "" {
		return nil
	}

	client, err := compendium.New(&compendium.Config{BaseURL: cfg.CompendiumURL})
	if err != nil {
		return err
	}

	data, err := client.GetItem(ctx, inspectSRDKey)
	if err != nil {
		return err
	}

	fmt.Printf("  srd: %s (%s)\n", data.Name, data.ID)
	fmt.Printf("    type:     %s\n", data.EquipmentType)
	fmt.Printf("    category: %s\n", data.Category)
	fmt.Printf("    weight:   %g lb\n", data.Weight)
	if data.Cost != "" {
		fmt.Printf("    cost:     %s\n", data.Cost)
	}

	return nil
}
