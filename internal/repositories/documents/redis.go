package documents

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/pkg/idgen"
	redisclient "github.com/feyloom/attunement-tracker/internal/redis"
)

const (
	actorKeyPrefix = "actor:"
	pcIndexKey     = "actor:index:pc"

	// Error messages
	errCharacterNil   = "character cannot be nil"
	errActorIDEmpty   = "actor ID cannot be empty"
	errActorTypeEmpty = "actor type cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	idGen  idgen.Generator
}

// RedisConfig contains configuration for the Redis document repository.
type RedisConfig struct {
	Client      redisclient.Client
	IDGenerator idgen.Generator
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed document repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Default to prefixed UUIDs if no generator provided
	g := cfg.IDGenerator
	if g == nil {
		g = idgen.NewUUID("actor")
	}

	return &redisRepository{
		client: cfg.Client,
		idGen:  g,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.Type == "" {
		return nil, errors.InvalidArgument(errActorTypeEmpty)
	}

	if input.Character.ID == "" {
		input.Character.ID = r.idGen.Generate()
	}

	key := actorKeyPrefix + input.Character.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("actor with ID %s already exists", input.Character.ID)
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // actor documents have no TTL
	if input.Character.IsPlayerCharacter() {
		pipe.SAdd(ctx, pcIndexKey, input.Character.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create actor")
	}

	return &CreateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	key := actorKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("actor with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get actor")
	}

	var character vtt.Character
	if err := json.Unmarshal([]byte(result), &character); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}

	return &GetOutput{Character: &character}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	// Fetch existing to maintain the player-character index on type change
	existing, err := r.Get(ctx, GetInput{ID: input.Character.ID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	key := actorKeyPrefix + input.Character.ID

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if existing.Character.IsPlayerCharacter() != input.Character.IsPlayerCharacter() {
		if input.Character.IsPlayerCharacter() {
			pipe.SAdd(ctx, pcIndexKey, input.Character.ID)
		} else {
			pipe.SRem(ctx, pcIndexKey, input.Character.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update actor")
	}

	return &UpdateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, actorKeyPrefix+input.ID)
	if getOutput.Character.IsPlayerCharacter() {
		pipe.SRem(ctx, pcIndexKey, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete actor")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListPlayerCharacters(
	ctx context.Context,
	_ ListPlayerCharactersInput,
) (*ListPlayerCharactersOutput, error) {
	actorIDs, err := r.client.SMembers(ctx, pcIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read player character index")
	}

	characters := make([]*vtt.Character, 0, len(actorIDs))
	for _, id := range actorIDs {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// Self-heal the index when a document has been removed
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "actor not found, cleaning up index",
					"actor_id", id,
					"index_key", pcIndexKey)
				r.client.SRem(ctx, pcIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get actor %s", id)
		}
		characters = append(characters, getOutput.Character)
	}

	return &ListPlayerCharactersOutput{Characters: characters}, nil
}
