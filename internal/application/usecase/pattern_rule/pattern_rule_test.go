package patternrule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/usecase/reconciliation"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/integration/storage"
)

func newStore(t *testing.T, rules ...entity.PatternRule) *reconciliation.PatternStore {
	t.Helper()
	store := reconciliation.NewPatternStore(storage.NewMemoryDirectory(), "")
	if len(rules) > 0 {
		require.NoError(t, store.WriteRules(context.Background(), rules))
	}
	return store
}

// slowDirectory delays every read so overlapping updates are likely.
type slowDirectory struct {
	*storage.MemoryDirectory
	delay time.Duration
}

func (d *slowDirectory) ReadFile(ctx context.Context, name string) ([]byte, error) {
	time.Sleep(d.delay)
	return d.MemoryDirectory.ReadFile(ctx, name)
}

func requireCode(t *testing.T, err error, code domainerror.PatternRuleErrorCode) {
	t.Helper()
	var ruleErr *domainerror.PatternRuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, code, ruleErr.Code)
}

func TestListPatternRulesUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns an empty list when nothing is stored", func(t *testing.T) {
		output, err := NewListPatternRulesUseCase(newStore(t)).Execute(ctx)

		require.NoError(t, err)
		assert.NotNil(t, output.Rules)
		assert.Empty(t, output.Rules)
	})

	t.Run("returns inactive rules too", func(t *testing.T) {
		store := newStore(t,
			entity.PatternRule{Value: "visa", Type: entity.PatternTypeContains, Active: false},
			entity.PatternRule{Value: "^amex", Type: entity.PatternTypeRegex, Active: true},
		)

		output, err := NewListPatternRulesUseCase(store).Execute(ctx)

		require.NoError(t, err)
		require.Len(t, output.Rules, 2)
		assert.False(t, output.Rules[0].Active)
	})

	t.Run("reports an unconfigured store", func(t *testing.T) {
		store := reconciliation.NewPatternStore(nil, "")

		_, err := NewListPatternRulesUseCase(store).Execute(ctx)

		requireCode(t, err, domainerror.ErrCodePatternStoreUnavailable)
	})
}

func TestCreatePatternRuleUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a normalized active rule", func(t *testing.T) {
		store := newStore(t)

		output, err := NewCreatePatternRuleUseCase(store).Execute(ctx, CreatePatternRuleInput{
			Value: "  issuer payment ",
			Type:  "Contains",
		})

		require.NoError(t, err)
		assert.Equal(t, entity.PatternRule{Value: "issuer payment", Type: entity.PatternTypeContains, Active: true}, output.Rule)
		assert.Equal(t, 1, output.TotalRules)

		stored, err := store.ReadRules(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.PatternRule{output.Rule}, stored)
	})

	t.Run("honours an explicit inactive flag", func(t *testing.T) {
		inactive := false

		output, err := NewCreatePatternRuleUseCase(newStore(t)).Execute(ctx, CreatePatternRuleInput{
			Value:  "visa",
			Type:   entity.PatternTypeContains,
			Active: &inactive,
		})

		require.NoError(t, err)
		assert.False(t, output.Rule.Active)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			input CreatePatternRuleInput
			code  domainerror.PatternRuleErrorCode
		}{
			{"empty value", CreatePatternRuleInput{Value: "  ", Type: entity.PatternTypeContains}, domainerror.ErrCodeMissingRuleFields},
			{"unknown type", CreatePatternRuleInput{Value: "visa", Type: "glob"}, domainerror.ErrCodeInvalidPatternType},
			{"broken regex", CreatePatternRuleInput{Value: "([", Type: entity.PatternTypeRegex}, domainerror.ErrCodeInvalidPattern},
			{"too long", CreatePatternRuleInput{Value: strings.Repeat("a", MaxPatternLength+1), Type: entity.PatternTypeContains}, domainerror.ErrCodePatternTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := newStore(t)

				_, err := NewCreatePatternRuleUseCase(store).Execute(ctx, tt.input)

				requireCode(t, err, tt.code)
				_, readErr := store.ReadRules(ctx)
				assert.ErrorIs(t, readErr, domainerror.ErrFileNotFound, "nothing should be written")
			})
		}
	})

	t.Run("rejects duplicates regardless of case", func(t *testing.T) {
		store := newStore(t, entity.PatternRule{Value: "Visa", Type: entity.PatternTypeContains, Active: true})

		_, err := NewCreatePatternRuleUseCase(store).Execute(ctx, CreatePatternRuleInput{
			Value: "visa",
			Type:  entity.PatternTypeContains,
		})

		requireCode(t, err, domainerror.ErrCodePatternRuleExists)
	})

	t.Run("keeps every rule created concurrently", func(t *testing.T) {
		store := reconciliation.NewPatternStore(&slowDirectory{
			MemoryDirectory: storage.NewMemoryDirectory(),
			delay:           5 * time.Millisecond,
		}, "")
		uc := NewCreatePatternRuleUseCase(store)

		const creators = 10
		errs := make([]error, creators)
		var wg sync.WaitGroup
		for i := 0; i < creators; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.Execute(ctx, CreatePatternRuleInput{
					Value: fmt.Sprintf("issuer %d", i),
					Type:  entity.PatternTypeContains,
				})
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		stored, err := store.ReadRules(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, creators)
	})

	t.Run("accepts only one of two concurrent duplicates", func(t *testing.T) {
		store := reconciliation.NewPatternStore(&slowDirectory{
			MemoryDirectory: storage.NewMemoryDirectory(),
			delay:           5 * time.Millisecond,
		}, "")
		uc := NewCreatePatternRuleUseCase(store)

		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = uc.Execute(ctx, CreatePatternRuleInput{Value: "visa", Type: entity.PatternTypeContains})
			}(i)
		}
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				requireCode(t, err, domainerror.ErrCodePatternRuleExists)
				failed++
			}
		}
		assert.Equal(t, 1, failed)
		stored, err := store.ReadRules(ctx)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("allows the same value with another type", func(t *testing.T) {
		store := newStore(t, entity.PatternRule{Value: "visa", Type: entity.PatternTypeContains, Active: true})

		output, err := NewCreatePatternRuleUseCase(store).Execute(ctx, CreatePatternRuleInput{
			Value: "visa",
			Type:  entity.PatternTypeRegex,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, output.TotalRules)
	})
}

func TestSetPatternRuleActiveUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("disables a rule without removing it", func(t *testing.T) {
		store := newStore(t, entity.PatternRule{Value: "visa", Type: entity.PatternTypeContains, Active: true})

		rule, err := NewSetPatternRuleActiveUseCase(store).Execute(ctx, SetPatternRuleActiveInput{
			Key:    RuleKey{Value: "VISA", Type: "CONTAINS"},
			Active: false,
		})

		require.NoError(t, err)
		assert.False(t, rule.Active)

		stored, err := store.ReadRules(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.False(t, stored[0].Active)
		assert.Empty(t, reconciliation.CompilePatternRules(stored))
	})

	t.Run("reports an unknown rule", func(t *testing.T) {
		_, err := NewSetPatternRuleActiveUseCase(newStore(t)).Execute(ctx, SetPatternRuleActiveInput{
			Key:    RuleKey{Value: "visa", Type: entity.PatternTypeContains},
			Active: true,
		})

		requireCode(t, err, domainerror.ErrCodePatternRuleNotFound)
	})
}

func TestPatternRuleUseCases_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	store := reconciliation.NewPatternStore(&slowDirectory{
		MemoryDirectory: storage.NewMemoryDirectory(),
		delay:           2 * time.Millisecond,
	}, "")
	require.NoError(t, store.WriteRules(ctx, []entity.PatternRule{
		{Value: "visa", Type: entity.PatternTypeContains, Active: true},
		{Value: "amex", Type: entity.PatternTypeContains, Active: true},
	}))

	var wg sync.WaitGroup
	errs := make(chan error, 3)
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- fn()
		}()
	}
	run(func() error {
		_, err := NewCreatePatternRuleUseCase(store).Execute(ctx, CreatePatternRuleInput{Value: "mastercard", Type: entity.PatternTypeContains})
		return err
	})
	run(func() error {
		return NewDeletePatternRuleUseCase(store).Execute(ctx, RuleKey{Value: "amex", Type: entity.PatternTypeContains})
	})
	run(func() error {
		_, err := NewSetPatternRuleActiveUseCase(store).Execute(ctx, SetPatternRuleActiveInput{
			Key:    RuleKey{Value: "visa", Type: entity.PatternTypeContains},
			Active: false,
		})
		return err
	})
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	stored, err := store.ReadRules(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.PatternRule{
		{Value: "visa", Type: entity.PatternTypeContains, Active: false},
		{Value: "mastercard", Type: entity.PatternTypeContains, Active: true},
	}, stored)
}

func TestDeletePatternRuleUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only the identified rule", func(t *testing.T) {
		store := newStore(t,
			entity.PatternRule{Value: "visa", Type: entity.PatternTypeContains, Active: true},
			entity.PatternRule{Value: "visa", Type: entity.PatternTypeRegex, Active: true},
		)

		err := NewDeletePatternRuleUseCase(store).Execute(ctx, RuleKey{Value: "visa", Type: entity.PatternTypeRegex})

		require.NoError(t, err)
		stored, err := store.ReadRules(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.PatternRule{{Value: "visa", Type: entity.PatternTypeContains, Active: true}}, stored)
	})

	t.Run("reports an unknown rule", func(t *testing.T) {
		err := NewDeletePatternRuleUseCase(newStore(t)).Execute(ctx, RuleKey{Value: "visa", Type: entity.PatternTypeContains})

		requireCode(t, err, domainerror.ErrCodePatternRuleNotFound)
		assert.ErrorIs(t, err, domainerror.ErrPatternRuleNotFound)
	})
}

func TestTestPatternUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("lists matching descriptions", func(t *testing.T) {
		output, err := NewTestPatternUseCase().Execute(ctx, TestPatternInput{
			Value:        "card payment",
			Type:         entity.PatternTypeContains,
			Descriptions: []string{"VISA CARD PAYMENT", "groceries", "card payment 1234"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"VISA CARD PAYMENT", "card payment 1234"}, output.Matching)
		assert.Equal(t, 2, output.MatchCount)
	})

	t.Run("treats contains values literally", func(t *testing.T) {
		output, err := NewTestPatternUseCase().Execute(ctx, TestPatternInput{
			Value:        "a.b",
			Type:         entity.PatternTypeContains,
			Descriptions: []string{"axb", "pay a.b"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"pay a.b"}, output.Matching)
	})

	t.Run("rejects a broken regex", func(t *testing.T) {
		_, err := NewTestPatternUseCase().Execute(ctx, TestPatternInput{Value: "([", Type: entity.PatternTypeRegex})

		requireCode(t, err, domainerror.ErrCodeInvalidPattern)
	})
}
