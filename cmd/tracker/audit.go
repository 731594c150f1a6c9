package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feyloom/attunement-tracker/internal/attunement"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Recompute every burden",
	Long: `Walk all player characters and recompute each attunement burden from
the attuned items' stored weights. Reports any value that changed.
Useful after items were edited while the tracker was not running.`,
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
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

	directory, err := attunement.NewDirectory(&attunement.DirectoryConfig{
		Repository: store.Repository,
		Flags:      store.Flags,
	})
	if err != nil {
		return err
	}

	out, err := directory.AllPlayerCharacters(ctx, attunement.AllPlayerCharactersInput{})
	if err != nil {
		return err
	}

	var changed int
	for _, record := range out.Records {
		character := record.Character()

		result, err := record.Recompute(ctx)
		if err != nil {
			fmt.Printf("✗ %s (%s): %v\n", character.Name, character.ID, err)
			continue
		}

		if !result.Changed {
			fmt.Printf("  %s (%s): burden %d, unchanged\n", character.Name, character.ID, result.Burden)
			continue
		}

		changed++
		previous := "unset"
		if result.HadPrevious {
			previous = fmt.Sprintf("%d", result.Previous)
		}
		fmt.Printf("✓ %s (%s): burden %s -> %d\n", character.Name, character.ID, previous, result.Burden)
	}

	fmt.Printf("\naudited %d characters, %d updated\n", len(out.Records), changed)
	return nil
}
