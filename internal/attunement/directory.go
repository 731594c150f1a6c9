package attunement

import (
	"context"

	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/flags"
	"github.com/feyloom/attunement-tracker/internal/metrics"
	"github.com/feyloom/attunement-tracker/internal/repositories/documents"
)

// Directory looks up characters and hands out actor records. It stands
// in for the host's global actor registry so the record components can
// be exercised without a live host.
type Directory struct {
	repo    documents.Repository
	flags   flags.Store
	metrics *metrics.Collectors
}

// DirectoryConfig holds the dependencies for a Directory
type DirectoryConfig struct {
	Repository documents.Repository
	Flags      flags.Store

	// Metrics is optional
	Metrics *metrics.Collectors
}

// Validate ensures all required dependencies are provided
func (cfg *DirectoryConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Repository == nil {
		vb.RequiredField("Repository")
	}
	if cfg.Flags == nil {
		vb.RequiredField("Flags")
	}

	return vb.Build()
}

// NewDirectory creates a character directory
func NewDirectory(cfg *DirectoryConfig) (*Directory, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Directory{
		repo:    cfg.Repository,
		flags:   cfg.Flags,
		metrics: cfg.Metrics,
	}, nil
}

// FindByIDInput defines the input for looking up one character
type FindByIDInput struct {
	ActorID string
}

// FindByIDOutput defines the output for looking up one character.
// Found is false for missing actors and for actors that are not
// player characters; neither case is an error.
type FindByIDOutput struct {
	Record *ActorRecord
	Found  bool
}

// FindByID returns an actor record for an existing player character
func (d *Directory) FindByID(ctx context.Context, input FindByIDInput) (*FindByIDOutput, error) {
	if input.ActorID == "" {
		return &FindByIDOutput{Found: false}, nil
	}

	out, err := d.repo.Get(ctx, documents.GetInput{ID: input.ActorID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &FindByIDOutput{Found: false}, nil
		}
		return nil, err
	}

	if !out.Character.IsPlayerCharacter() {
		return &FindByIDOutput{Found: false}, nil
	}

	record, err := NewActorRecord(&ActorRecordConfig{
		Character: out.Character,
		Flags:     d.flags,
		Metrics:   d.metrics,
	})
	if err != nil {
		return nil, err
	}

	return &FindByIDOutput{Record: record, Found: true}, nil
}

// AllPlayerCharactersInput defines the input for listing all records
type AllPlayerCharactersInput struct {
	// Empty for now, can be extended later
}

// AllPlayerCharactersOutput defines the output for listing all records
type AllPlayerCharactersOutput struct {
	Records []*ActorRecord
}

// AllPlayerCharacters returns a record for every player character
func (d *Directory) AllPlayerCharacters(
	ctx context.Context,
	_ AllPlayerCharactersInput,
) (*AllPlayerCharactersOutput, error) {
	out, err := d.repo.ListPlayerCharacters(ctx, documents.ListPlayerCharactersInput{})
	if err != nil {
		return nil, err
	}

	records := make([]*ActorRecord, 0, len(out.Characters))
	for _, character := range out.Characters {
		record, err := NewActorRecord(&ActorRecordConfig{
			Character: character,
			Flags:     d.flags,
			Metrics:   d.metrics,
		})
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return &AllPlayerCharactersOutput{Records: records}, nil
}
