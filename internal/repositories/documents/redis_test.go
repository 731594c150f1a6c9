package documents_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/errors"
	"github.com/feyloom/attunement-tracker/internal/pkg/idgen"
	"github.com/feyloom/attunement-tracker/internal/repositories/documents"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *goredis.Client
	repo      documents.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = goredis.NewClient(&goredis.Options{
		Addr: s.miniRedis.Addr(),
	})

	repo, err := documents.NewRedis(&documents.RedisConfig{
		Client:      s.client,
		IDGenerator: idgen.NewSequential("actor"),
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) testCharacter(id, name string) *vtt.Character {
	return &vtt.Character{
		ID:   id,
		Name: name,
		Type: vtt.ActorTypeCharacter,
		Items: []*vtt.Item{
			{ID: id + "_item_1", Name: "Flame Tongue", Attunement: vtt.AttunementAttuned},
			{ID: id + "_item_2", Name: "Rope", Attunement: vtt.AttunementNone},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestLifecycle() {
	char := s.testCharacter("actor_001", "Brenna")

	createOut, err := s.repo.Create(s.ctx, documents.CreateInput{Character: char})
	s.Require().NoError(err)
	s.Equal("actor_001", createOut.Character.ID)
	s.True(s.miniRedis.Exists("actor:actor_001"))

	getOut, err := s.repo.Get(s.ctx, documents.GetInput{ID: "actor_001"})
	s.Require().NoError(err)
	s.Equal("Brenna", getOut.Character.Name)
	s.Len(getOut.Character.Items, 2)
	s.Equal(vtt.AttunementAttuned, getOut.Character.Items[0].Attunement)

	char.Name = "Brenna the Bold"
	_, err = s.repo.Update(s.ctx, documents.UpdateInput{Character: char})
	s.Require().NoError(err)

	getOut, err = s.repo.Get(s.ctx, documents.GetInput{ID: "actor_001"})
	s.Require().NoError(err)
	s.Equal("Brenna the Bold", getOut.Character.Name)

	_, err = s.repo.Delete(s.ctx, documents.DeleteInput{ID: "actor_001"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, documents.GetInput{ID: "actor_001"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestCreateAssignsID() {
	char := s.testCharacter("", "Unnamed")
	char.ID = ""

	out, err := s.repo.Create(s.ctx, documents.CreateInput{Character: char})
	s.Require().NoError(err)
	s.Equal("actor_1", out.Character.ID)
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	char := s.testCharacter("actor_001", "Brenna")

	_, err := s.repo.Create(s.ctx, documents.CreateInput{Character: char})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, documents.CreateInput{Character: char})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestListPlayerCharacters() {
	pc1 := s.testCharacter("actor_001", "Brenna")
	pc2 := s.testCharacter("actor_002", "Corvin")
	npc := &vtt.Character{ID: "actor_003", Name: "Shopkeeper", Type: vtt.ActorTypeNPC}

	for _, c := range []*vtt.Character{pc1, pc2, npc} {
		_, err := s.repo.Create(s.ctx, documents.CreateInput{Character: c})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListPlayerCharacters(s.ctx, documents.ListPlayerCharactersInput{})
	s.Require().NoError(err)
	s.Len(out.Characters, 2)

	names := []string{out.Characters[0].Name, out.Characters[1].Name}
	s.ElementsMatch([]string{"Brenna", "Corvin"}, names)
}

func (s *RedisRepositoryTestSuite) TestListCleansStaleIndex() {
	pc := s.testCharacter("actor_001", "Brenna")
	_, err := s.repo.Create(s.ctx, documents.CreateInput{Character: pc})
	s.Require().NoError(err)

	// Remove the document behind the index's back
	s.miniRedis.Del("actor:actor_001")

	out, err := s.repo.ListPlayerCharacters(s.ctx, documents.ListPlayerCharactersInput{})
	s.Require().NoError(err)
	s.Empty(out.Characters)

	// Stale ID removed from the index set
	members, err := s.client.SMembers(s.ctx, "actor:index:pc").Result()
	s.Require().NoError(err)
	s.Empty(members)
}

func (s *RedisRepositoryTestSuite) TestUpdateMaintainsIndexOnTypeChange() {
	pc := s.testCharacter("actor_001", "Brenna")
	_, err := s.repo.Create(s.ctx, documents.CreateInput{Character: pc})
	s.Require().NoError(err)

	pc.Type = vtt.ActorTypeNPC
	_, err = s.repo.Update(s.ctx, documents.UpdateInput{Character: pc})
	s.Require().NoError(err)

	out, err := s.repo.ListPlayerCharacters(s.ctx, documents.ListPlayerCharactersInput{})
	s.Require().NoError(err)
	s.Empty(out.Characters)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Create(s.ctx, documents.CreateInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, documents.GetInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}
