package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/pkg/idgen"
	"github.com/feyloom/attunement-tracker/internal/repositories/documents"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo characters",
	Long:  `Create a small set of player characters with attunable items, for trying the tracker against a fresh store.`,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	itemIDs := idgen.NewUUID("item")

	characters := []*vtt.Character{
		{
			Name: "Sariel",
			Type: vtt.ActorTypeCharacter,
			Items: []*vtt.Item{
				{ID: itemIDs.Generate(), Name: "Ring of Protection", Attunement: vtt.AttunementAttuned},
				{ID: itemIDs.Generate(), Name: "Cloak of Elvenkind", Attunement: vtt.AttunementAttuned},
				{ID: itemIDs.Generate(), Name: "Rope of Climbing", Attunement: vtt.AttunementNone},
			},
		},
		{
			Name: "Borin",
			Type: vtt.ActorTypeCharacter,
			Items: []*vtt.Item{
				{ID: itemIDs.Generate(), Name: "Belt of Dwarvenkind", Attunement: vtt.AttunementRequired},
				{ID: itemIDs.Generate(), Name: "Hammer of Thunderbolts", Attunement: vtt.AttunementAttuned},
			},
		},
		{
			Name: "Quartermaster Hobbs",
			Type: vtt.ActorTypeNPC,
			Items: []*vtt.Item{
				{ID: itemIDs.Generate(), Name: "Ledger of Debts", Attunement: vtt.AttunementNone},
			},
		},
	}

	for _, character := range characters {
		out, err := store.Repository.Create(ctx, documents.CreateInput{Character: character})
		if err != nil {
			return err
		}
		fmt.Printf("created %s %q (%s) with %d items\n",
			out.Character.Type, out.Character.Name, out.Character.ID, len(out.Character.Items))
	}

	return nil
}
