package patternrule

import (
	"context"
	"strings"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
)

const (
	// MaxTestDescriptions is the maximum number of descriptions accepted by a pattern test.
	MaxTestDescriptions = 500
)

// TestPatternInput represents the input for pattern testing.
type TestPatternInput struct {
	Value        string
	Type         entity.PatternType
	Descriptions []string
}

// TestPatternOutput represents the output of pattern testing.
type TestPatternOutput struct {
	Matching   []string
	MatchCount int
}

// TestPatternUseCase checks a candidate rule against sample descriptions without storing it.
type TestPatternUseCase struct{}

// NewTestPatternUseCase creates a new TestPatternUseCase instance.
func NewTestPatternUseCase() *TestPatternUseCase {
	return &TestPatternUseCase{}
}

// Execute performs the pattern testing.
func (uc *TestPatternUseCase) Execute(_ context.Context, input TestPatternInput) (*TestPatternOutput, error) {
	value := strings.TrimSpace(input.Value)
	patternType := entity.PatternType(strings.ToLower(string(input.Type)))

	if err := validateRule(value, patternType); err != nil {
		return nil, err
	}

	compiled, err := entity.PatternRule{Value: value, Type: patternType, Active: true}.Compile()
	if err != nil {
		return nil, err
	}

	descriptions := input.Descriptions
	if len(descriptions) > MaxTestDescriptions {
		descriptions = descriptions[:MaxTestDescriptions]
	}

	matching := make([]string, 0)
	for _, d := range descriptions {
		if compiled.Matches(d) {
			matching = append(matching, d)
		}
	}

	return &TestPatternOutput{
		Matching:   matching,
		MatchCount: len(matching),
	}, nil
}
