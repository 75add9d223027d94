package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rachellllllllll/CreditCanvas-sub001/internal/application/adapter"
	"github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/entity"
	domainerror "github.com/rachellllllllll/CreditCanvas-sub001/internal/domain/error"
)

// DefaultPatternFileName is the name of the rules document inside the directory.
const DefaultPatternFileName = "credit_charge_patterns.json"

// DefaultPatternRules returns the rules written when no rules document exists yet.
func DefaultPatternRules() []entity.PatternRule {
	return []entity.PatternRule{
		{Value: "credit card payment", Type: entity.PatternTypeContains, Active: true},
		{Value: "card payment", Type: entity.PatternTypeContains, Active: true},
	}
}

// storedPatternRule is the loosely-typed shape of a rule on disk.
type storedPatternRule struct {
	Value  string `json:"value"`
	Type   string `json:"type"`
	Active *bool  `json:"active,omitempty"`
}

// PatternStore loads and saves pattern rules through a Directory.
// A nil directory behaves as an empty rule set.
// Writes through one store are serialized.
type PatternStore struct {
	mu       sync.Mutex
	dir      adapter.Directory
	fileName string
}

// NewPatternStore creates a new PatternStore instance.
func NewPatternStore(dir adapter.Directory, fileName string) *PatternStore {
	if fileName == "" {
		fileName = DefaultPatternFileName
	}
	return &PatternStore{
		dir:      dir,
		fileName: fileName,
	}
}

// Available reports whether the store is backed by a directory.
func (s *PatternStore) Available() bool {
	return s != nil && s.dir != nil
}

// Load returns the active rules compiled for matching. It never fails:
// a missing document is seeded with the default rules, anything else
// degrades to an empty rule set.
func (s *PatternStore) Load(ctx context.Context) []*entity.CompiledPatternRule {
	if !s.Available() {
		return nil
	}

	rules, err := s.ReadRules(ctx)
	switch {
	case errors.Is(err, domainerror.ErrFileNotFound):
		rules, err = s.seed(ctx)
		if err != nil {
			slog.Warn("Failed to seed pattern rules", "file", s.fileName, "error", err)
			return nil
		}
	case err != nil:
		slog.Warn("Pattern rules unavailable, matching on amount only", "file", s.fileName, "error", err)
		return nil
	}

	return CompilePatternRules(rules)
}

// seed writes the default rules unless another writer created the document first,
// and returns whatever the document now holds.
func (s *PatternStore) seed(ctx context.Context) ([]entity.PatternRule, error) {
	var rules []entity.PatternRule
	seeded := false

	err := s.update(ctx, func(current []entity.PatternRule, found bool) ([]entity.PatternRule, error) {
		if found {
			rules, seeded = current, false
			return nil, domainerror.ErrPatternRulesUnchanged
		}
		rules, seeded = DefaultPatternRules(), true
		return rules, nil
	})
	if err != nil {
		return nil, err
	}

	if seeded {
		slog.Info("Seeded default pattern rules", "file", s.fileName, "count", len(rules))
	}
	return rules, nil
}

// CompilePatternRules compiles the active rules, dropping any that fail to compile.
func CompilePatternRules(rules []entity.PatternRule) []*entity.CompiledPatternRule {
	compiled := make([]*entity.CompiledPatternRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		c, err := rule.Compile()
		if err != nil {
			slog.Debug("Dropping invalid pattern rule", "value", rule.Value, "error", err)
			continue
		}
		compiled = append(compiled, c)
	}
	return compiled
}

// ReadRules reads every valid rule from the rules document, active or not.
// Entries with an empty value or unknown type are dropped.
func (s *PatternStore) ReadRules(ctx context.Context) ([]entity.PatternRule, error) {
	if !s.Available() {
		return nil, domainerror.ErrPatternStoreUnavailable
	}

	data, err := s.dir.ReadFile(ctx, s.fileName)
	if err != nil {
		return nil, err
	}
	return decodeRules(data)
}

// WriteRules replaces the rules document.
func (s *PatternStore) WriteRules(ctx context.Context, rules []entity.PatternRule) error {
	if !s.Available() {
		return domainerror.ErrPatternStoreUnavailable
	}

	data, err := encodeRules(rules)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dir.WriteFile(ctx, s.fileName, data); err != nil {
		return fmt.Errorf("failed to write pattern rules: %w", err)
	}
	return nil
}

// UpdateRules applies fn to the stored rules and writes the result back.
// A missing document reaches fn as an empty list. Updates through one store
// never interleave, and a transactional directory also guards the document
// against other processes. Returning domainerror.ErrPatternRulesUnchanged
// from fn skips the write.
func (s *PatternStore) UpdateRules(ctx context.Context, fn func(rules []entity.PatternRule) ([]entity.PatternRule, error)) error {
	return s.update(ctx, func(rules []entity.PatternRule, _ bool) ([]entity.PatternRule, error) {
		return fn(rules)
	})
}

func (s *PatternStore) update(ctx context.Context, fn func(rules []entity.PatternRule, found bool) ([]entity.PatternRule, error)) error {
	if !s.Available() {
		return domainerror.ErrPatternStoreUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apply := func(data []byte, found bool) ([]byte, error) {
		rules := []entity.PatternRule{}
		if found {
			decoded, err := decodeRules(data)
			if err != nil {
				return nil, err
			}
			rules = decoded
		}

		updated, err := fn(rules, found)
		if err != nil {
			return nil, err
		}
		return encodeRules(updated)
	}

	err := s.applyUpdate(ctx, apply)
	if errors.Is(err, domainerror.ErrPatternRulesUnchanged) {
		return nil
	}
	return err
}

// applyUpdate runs apply against the rules document, inside the directory's
// own transaction when it offers one.
func (s *PatternStore) applyUpdate(ctx context.Context, apply adapter.UpdateFunc) error {
	if tx, ok := s.dir.(adapter.TransactionalDirectory); ok {
		if err := tx.UpdateFile(ctx, s.fileName, apply); err != nil {
			return fmt.Errorf("failed to update pattern rules: %w", err)
		}
		return nil
	}

	found := true
	data, err := s.dir.ReadFile(ctx, s.fileName)
	switch {
	case errors.Is(err, domainerror.ErrFileNotFound):
		found = false
	case err != nil:
		return err
	}

	out, err := apply(data, found)
	if err != nil {
		return err
	}
	if err := s.dir.WriteFile(ctx, s.fileName, out); err != nil {
		return fmt.Errorf("failed to write pattern rules: %w", err)
	}
	return nil
}

// decodeRules parses the rules document, dropping entries with an empty
// value or unknown type.
func decodeRules(data []byte) ([]entity.PatternRule, error) {
	var stored []storedPatternRule
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode pattern rules: %w", err)
	}

	rules := make([]entity.PatternRule, 0, len(stored))
	for _, r := range stored {
		rule := entity.PatternRule{
			Value:  r.Value,
			Type:   entity.PatternType(strings.ToLower(strings.TrimSpace(r.Type))),
			Active: r.Active == nil || *r.Active,
		}
		if strings.TrimSpace(rule.Value) == "" || !rule.Type.IsValid() {
			slog.Debug("Dropping malformed pattern rule", "value", r.Value, "type", r.Type)
			continue
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func encodeRules(rules []entity.PatternRule) ([]byte, error) {
	if rules == nil {
		rules = []entity.PatternRule{}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode pattern rules: %w", err)
	}
	return data, nil
}
