package attunement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/feyloom/attunement-tracker/internal/attunement"
	"github.com/feyloom/attunement-tracker/internal/entities/vtt"
	"github.com/feyloom/attunement-tracker/internal/flags"
	"github.com/feyloom/attunement-tracker/internal/testutils/builders"
)

// countingStore wraps a Store and counts persistence writes so tests
// can assert the recompute change gate.
type countingStore struct {
	flags.Store
	sets int
}

func (c *countingStore) Set(ctx context.Context, input flags.SetInput) (*flags.SetOutput, error) {
	c.sets++
	return c.Store.Set(ctx, input)
}

type ActorRecordTestSuite struct {
	suite.Suite
	store *countingStore
	ctx   context.Context
}

func (s *ActorRecordTestSuite) SetupTest() {
	s.store = &countingStore{Store: flags.NewMemory()}
	s.ctx = context.Background()
}

func TestActorRecordSuite(t *testing.T) {
	suite.Run(t, new(ActorRecordTestSuite))
}

func (s *ActorRecordTestSuite) newRecord(character *vtt.Character) *attunement.ActorRecord {
	record, err := attunement.NewActorRecord(&attunement.ActorRecordConfig{
		Character: character,
		Flags:     s.store,
	})
	s.Require().NoError(err)
	return record
}

func (s *ActorRecordTestSuite) setItemWeight(itemID string, value any) {
	_, err := s.store.Set(s.ctx, flags.SetInput{
		Scope:     flags.DocScope{Kind: flags.DocItem, ID: itemID},
		Namespace: attunement.FlagNamespace,
		Key:       attunement.FlagKeyWeight,
		Value:     value,
	})
	s.Require().NoError(err)
}

func (s *ActorRecordTestSuite) TestBurdenUnsetUntilFirstWrite() {
	record := s.newRecord(builders.NewCharacterBuilder().Build())

	_, found, err := record.Burden(s.ctx)
	s.Require().NoError(err)
	s.False(found)
}

func (s *ActorRecordTestSuite) TestSetBurdenThenRead() {
	record := s.newRecord(builders.NewCharacterBuilder().Build())

	s.Require().NoError(record.SetBurden(s.ctx, 6.8))

	burden, found, err := record.Burden(s.ctx)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(6, burden)
}

func (s *ActorRecordTestSuite) TestRecomputeSumsAttunedWeights() {
	character := builders.NewCharacterBuilder().
		WithItemID("item_a", "Flame Tongue", vtt.AttunementAttuned).
		WithItemID("item_b", "Ring of Warmth", vtt.AttunementAttuned).
		WithItemID("item_c", "Cloak of Billowing", vtt.AttunementAttuned).
		WithItemID("item_d", "Staff of Power", vtt.AttunementRequired).
		WithItemID("item_e", "Rope", vtt.AttunementNone).
		Build()

	s.setItemWeight("item_a", 2)
	s.setItemWeight("item_b", 1)
	// item_c has no stored weight and defaults to 1
	s.setItemWeight("item_d", 10) // not attuned, must not count

	record := s.newRecord(character)
	out, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, out.Burden)
	s.True(out.Changed)
	s.False(out.HadPrevious)

	burden, found, err := record.Burden(s.ctx)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(4, burden)
}

func (s *ActorRecordTestSuite) TestRecomputeSkipsWriteWhenUnchanged() {
	character := builders.NewCharacterBuilder().
		WithItemID("item_a", "Flame Tongue", vtt.AttunementAttuned).
		Build()
	s.setItemWeight("item_a", 4)

	record := s.newRecord(character)
	s.Require().NoError(record.SetBurden(s.ctx, 4))

	writesBefore := s.store.sets
	out, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, out.Burden)
	s.False(out.Changed)
	s.True(out.HadPrevious)
	s.Equal(4, out.Previous)
	s.Equal(writesBefore, s.store.sets)
}

func (s *ActorRecordTestSuite) TestRecomputeWritesOnTransition() {
	character := builders.NewCharacterBuilder().
		WithItemID("item_a", "Flame Tongue", vtt.AttunementAttuned).
		Build()
	s.setItemWeight("item_a", 4)

	record := s.newRecord(character)
	s.Require().NoError(record.SetBurden(s.ctx, 5))

	out, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, out.Burden)
	s.True(out.Changed)
	s.True(out.HadPrevious)
	s.Equal(5, out.Previous)
}

func (s *ActorRecordTestSuite) TestRecomputeZeroAttunedItems() {
	character := builders.NewCharacterBuilder().
		WithItem("Rope", vtt.AttunementNone).
		WithItem("Wand of Secrets", vtt.AttunementRequired).
		Build()

	record := s.newRecord(character)
	out, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, out.Burden)

	burden, found, err := record.Burden(s.ctx)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(0, burden)
}

func (s *ActorRecordTestSuite) TestRecomputeIdempotent() {
	character := builders.NewCharacterBuilder().
		WithItemID("item_a", "Flame Tongue", vtt.AttunementAttuned).
		Build()
	s.setItemWeight("item_a", 2)

	record := s.newRecord(character)

	_, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	writesAfterFirst := s.store.sets

	out, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	s.False(out.Changed)
	s.Equal(writesAfterFirst, s.store.sets)
}

func (s *ActorRecordTestSuite) TestNonNumericBurdenTreatedAsUnset() {
	character := builders.NewCharacterBuilder().Build()
	_, err := s.store.Set(s.ctx, flags.SetInput{
		Scope:     flags.DocScope{Kind: flags.DocActor, ID: character.ID},
		Namespace: attunement.FlagNamespace,
		Key:       attunement.FlagKeyBurden,
		Value:     "four",
	})
	s.Require().NoError(err)

	record := s.newRecord(character)
	_, found, err := record.Burden(s.ctx)
	s.Require().NoError(err)
	s.False(found)

	// A recompute repairs the malformed flag
	out, err := record.Recompute(s.ctx)
	s.Require().NoError(err)
	s.True(out.Changed)
	s.Equal(0, out.Burden)
}

func (s *ActorRecordTestSuite) TestItemLookup() {
	character := builders.NewCharacterBuilder().
		WithItemID("item_a", "Flame Tongue", vtt.AttunementAttuned).
		WithItemID("item_b", "Wand of Secrets", vtt.AttunementRequired).
		WithItemID("item_c", "Rope", vtt.AttunementNone).
		Build()

	record := s.newRecord(character)

	itemRecord, found := record.Item("item_a")
	s.True(found)
	s.Equal("Flame Tongue", itemRecord.Item().Name)

	itemRecord, found = record.Item("item_b")
	s.True(found)
	s.True(itemRecord.Attunable())

	// Owned but not attunable
	_, found = record.Item("item_c")
	s.False(found)

	// Not owned at all
	_, found = record.Item("item_elsewhere")
	s.False(found)
}
