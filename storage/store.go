// Package storage provides the token and rule-set store collaborator,
// backed by NATS JetStream KV. It serves the scope-tuple list queries the
// resolvers need; the validation engine itself only ever reads through
// it.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/token"
)

// Bucket names.
const (
	BucketTokens   = "DESIGN_TOKENS"
	BucketRuleSets = "TOKEN_RULESETS"
)

// ErrNotFound is returned when a token or rule set does not exist.
var ErrNotFound = errors.New("entity not found")

// ErrAlreadyExists is returned by CreateToken when the scope tuple +
// path is already taken.
var ErrAlreadyExists = errors.New("entity already exists")

// tokenRecord is the stored shape of a token.
type tokenRecord struct {
	ID        string      `json:"id"`
	Token     token.Token `json:"token"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ruleSetRecord is the stored shape of a rule set.
type ruleSetRecord struct {
	ID        string         `json:"id"`
	RuleSet   *rules.RuleSet `json:"ruleset"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store provides token and rule-set storage backed by NATS KV. It
// implements both resolve.Source and rules.Source.
type Store struct {
	tokens   jetstream.KeyValue
	rulesets jetstream.KeyValue
}

// NewStore creates a Store with the given JetStream context, creating
// the KV buckets if they don't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	tokens, err := getOrCreateBucket(ctx, js, BucketTokens)
	if err != nil {
		return nil, fmt.Errorf("create tokens bucket: %w", err)
	}
	rulesets, err := getOrCreateBucket(ctx, js, BucketRuleSets)
	if err != nil {
		return nil, fmt.Errorf("create rulesets bucket: %w", err)
	}
	return &Store{tokens: tokens, rulesets: rulesets}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Design token %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// TokenKey returns the KV key for a token: the scope tuple plus path,
// with empty tuple members marked so global and project keys cannot
// collide with brand keys.
func TokenKey(scope token.Scope, path string) string {
	return strings.Join([]string{part(scope.Org), part(scope.Project), part(scope.Brand), path}, ".")
}

// ScopeKey returns the KV key for a rule-set scope: project and brand,
// or markers when absent (the global rule set keys as "_._").
func ScopeKey(project, brand string) string {
	return strings.Join([]string{part(project), part(brand)}, ".")
}

func part(s string) string {
	if s == "" {
		return "_"
	}
	return s
}

// CreateToken stores a new token. The scope tuple plus path must be
// unused; ErrAlreadyExists is returned otherwise.
func (s *Store) CreateToken(ctx context.Context, t token.Token) error {
	if err := t.Scope.Validate(); err != nil {
		return err
	}

	rec := tokenRecord{
		ID:        uuid.New().String(),
		Token:     t,
		CreatedAt: time.Now(),
	}
	rec.UpdatedAt = rec.CreatedAt

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if _, err := s.tokens.Create(ctx, TokenKey(t.Scope, t.Path), data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return fmt.Errorf("%s in scope %s/%s/%s: %w", t.Path, t.Scope.Org, t.Scope.Project, t.Scope.Brand, ErrAlreadyExists)
		}
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// PutToken creates or replaces a token.
func (s *Store) PutToken(ctx context.Context, t token.Token) error {
	if err := t.Scope.Validate(); err != nil {
		return err
	}

	key := TokenKey(t.Scope, t.Path)
	rec := tokenRecord{UpdatedAt: time.Now()}
	if existing, err := s.getTokenRecord(ctx, key); err == nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = uuid.New().String()
		rec.CreatedAt = rec.UpdatedAt
	}
	rec.Token = t

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if _, err := s.tokens.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// GetToken retrieves the token at path within scope.
func (s *Store) GetToken(ctx context.Context, scope token.Scope, path string) (token.Token, error) {
	rec, err := s.getTokenRecord(ctx, TokenKey(scope, path))
	if err != nil {
		return token.Token{}, err
	}
	return rec.Token, nil
}

// DeleteToken removes the token at path within scope.
func (s *Store) DeleteToken(ctx context.Context, scope token.Scope, path string) error {
	if err := s.tokens.Delete(ctx, TokenKey(scope, path)); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Store) getTokenRecord(ctx context.Context, key string) (*tokenRecord, error) {
	entry, err := s.tokens.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	var rec tokenRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	return &rec, nil
}

// listTokens returns every stored token matching keep.
func (s *Store) listTokens(ctx context.Context, keep func(token.Token) bool) ([]token.Token, error) {
	keys, err := s.tokens.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list token keys: %w", err)
	}

	var out []token.Token
	for _, key := range keys {
		rec, err := s.getTokenRecord(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		if keep(rec.Token) {
			out = append(out, rec.Token)
		}
	}
	return out, nil
}

// GlobalTokens implements resolve.Source.
func (s *Store) GlobalTokens(ctx context.Context) ([]token.Token, error) {
	return s.listTokens(ctx, func(t token.Token) bool {
		return t.Scope.Level == token.LevelGlobal
	})
}

// ProjectTokens implements resolve.Source: the brand-less tokens of one
// project.
func (s *Store) ProjectTokens(ctx context.Context, projectID string) ([]token.Token, error) {
	return s.listTokens(ctx, func(t token.Token) bool {
		return t.Scope.Level == token.LevelProject && t.Scope.Project == projectID
	})
}

// BrandTokens implements resolve.Source.
func (s *Store) BrandTokens(ctx context.Context, projectID, brandID string) ([]token.Token, error) {
	return s.listTokens(ctx, func(t token.Token) bool {
		return t.Scope.Level == token.LevelBrand && t.Scope.Project == projectID && t.Scope.Brand == brandID
	})
}

// AllTokens returns every stored token.
func (s *Store) AllTokens(ctx context.Context) ([]token.Token, error) {
	return s.listTokens(ctx, func(token.Token) bool { return true })
}

// PutRuleSet creates or replaces the rule set for its scope.
func (s *Store) PutRuleSet(ctx context.Context, rs *rules.RuleSet) error {
	if err := rs.Validate(); err != nil {
		return err
	}

	key := ScopeKey(rs.Project, rs.Brand)
	rec := ruleSetRecord{UpdatedAt: time.Now()}
	if existing, err := s.getRuleSetRecord(ctx, key); err == nil {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.ID = uuid.New().String()
		rec.CreatedAt = rec.UpdatedAt
	}
	rec.RuleSet = rs

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal ruleset: %w", err)
	}
	if _, err := s.rulesets.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store ruleset: %w", err)
	}
	return nil
}

func (s *Store) getRuleSetRecord(ctx context.Context, key string) (*ruleSetRecord, error) {
	entry, err := s.rulesets.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ruleset: %w", err)
	}
	var rec ruleSetRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal ruleset: %w", err)
	}
	return &rec, nil
}

func (s *Store) ruleSet(ctx context.Context, project, brand string) (*rules.RuleSet, error) {
	rec, err := s.getRuleSetRecord(ctx, ScopeKey(project, brand))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, rules.ErrNotFound
		}
		return nil, err
	}
	return rec.RuleSet, nil
}

// BrandRules implements rules.Source.
func (s *Store) BrandRules(ctx context.Context, projectID, brandID string) (*rules.RuleSet, error) {
	return s.ruleSet(ctx, projectID, brandID)
}

// ProjectRules implements rules.Source.
func (s *Store) ProjectRules(ctx context.Context, projectID string) (*rules.RuleSet, error) {
	return s.ruleSet(ctx, projectID, "")
}

// GlobalRules implements rules.Source.
func (s *Store) GlobalRules(ctx context.Context) (*rules.RuleSet, error) {
	return s.ruleSet(ctx, "", "")
}

func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
