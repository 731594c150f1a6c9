package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/feyloom/attunement-tracker/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuilderEmpty() {
	err := errors.NewValidationBuilder().Build()
	s.Assert().NoError(err)
}

func (s *ValidationTestSuite) TestBuilderRequiredField() {
	err := errors.NewValidationBuilder().
		RequiredField("FlagStore").
		Build()

	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "FlagStore")
	s.Assert().Contains(err.Error(), "is required")
}

func (s *ValidationTestSuite) TestBuilderMultipleFields() {
	err := errors.NewValidationBuilder().
		RequiredField("Repository").
		InvalidField("Namespace", "must not contain ':'").
		Build()

	s.Require().Error(err)

	var structured *errors.Error
	s.Require().True(errors.As(err, &structured))

	fields, ok := structured.Meta["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	s.Assert().Len(fields, 2)
	s.Assert().Equal([]string{"is required"}, fields["Repository"])
}

func (s *ValidationTestSuite) TestValidationErrorMessage() {
	v := errors.NewValidationError()
	v.AddFieldErrorf("Weight", "must be numeric, got %q", "heavy")

	s.Assert().True(v.HasErrors())
	s.Assert().Contains(v.Error(), "Weight")
	s.Assert().Contains(v.Error(), `must be numeric, got "heavy"`)
}
