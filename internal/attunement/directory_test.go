package attunement_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/feyloom/attunement-tracker/internal/attunement"
	"github.com/feyloom/attunement-tracker/internal/flags"
	"github.com/feyloom/attunement-tracker/internal/repositories/documents"
	"github.com/feyloom/attunement-tracker/internal/testutils/builders"
)

type DirectoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      documents.Repository
	directory *attunement.Directory
	ctx       context.Context
}

func (s *DirectoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	client := goredis.NewClient(&goredis.Options{
		Addr: s.miniRedis.Addr(),
	})

	repo, err := documents.NewRedis(&documents.RedisConfig{
		Client: client,
	})
	s.Require().NoError(err)
	s.repo = repo

	directory, err := attunement.NewDirectory(&attunement.DirectoryConfig{
		Repository: repo,
		Flags:      flags.NewMemory(),
	})
	s.Require().NoError(err)
	s.directory = directory

	s.ctx = context.Background()
}

func (s *DirectoryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func TestDirectorySuite(t *testing.T) {
	suite.Run(t, new(DirectoryTestSuite))
}

func (s *DirectoryTestSuite) TestFindByID() {
	pc := builders.NewCharacterBuilder().WithID("actor_pc").WithName("Brenna").Build()
	npc := builders.NewCharacterBuilder().WithID("actor_npc").WithName("Shopkeeper").AsNPC().Build()

	_, err := s.repo.Create(s.ctx, documents.CreateInput{Character: pc})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, documents.CreateInput{Character: npc})
	s.Require().NoError(err)

	out, err := s.directory.FindByID(s.ctx, attunement.FindByIDInput{ActorID: "actor_pc"})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal("Brenna", out.Record.Character().Name)

	// NPCs are out of scope: absence, not an error
	out, err = s.directory.FindByID(s.ctx, attunement.FindByIDInput{ActorID: "actor_npc"})
	s.Require().NoError(err)
	s.False(out.Found)

	// Missing actors are absence too
	out, err = s.directory.FindByID(s.ctx, attunement.FindByIDInput{ActorID: "actor_ghost"})
	s.Require().NoError(err)
	s.False(out.Found)

	// So is an empty ID
	out, err = s.directory.FindByID(s.ctx, attunement.FindByIDInput{})
	s.Require().NoError(err)
	s.False(out.Found)
}

func (s *DirectoryTestSuite) TestAllPlayerCharacters() {
	pc1 := builders.NewCharacterBuilder().WithID("actor_1").WithName("Brenna").Build()
	pc2 := builders.NewCharacterBuilder().WithID("actor_2").WithName("Corvin").Build()
	npc := builders.NewCharacterBuilder().WithID("actor_3").AsNPC().Build()

	_, err := s.repo.Create(s.ctx, documents.CreateInput{Character: pc1})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, documents.CreateInput{Character: pc2})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, documents.CreateInput{Character: npc})
	s.Require().NoError(err)

	out, err := s.directory.AllPlayerCharacters(s.ctx, attunement.AllPlayerCharactersInput{})
	s.Require().NoError(err)
	s.Len(out.Records, 2)
}

func (s *DirectoryTestSuite) TestNewDirectoryValidatesConfig() {
	_, err := attunement.NewDirectory(nil)
	s.Require().Error(err)

	_, err = attunement.NewDirectory(&attunement.DirectoryConfig{Repository: s.repo})
	s.Require().Error(err)
}
