package shutterd

import (
	"context"

	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/store"
)

type ruleRepo interface {
	All() (map[string]models.EncodedRule, error)
}

// RepoSource reads rules straight from the local database.
type RepoSource struct {
	repo ruleRepo
}

func NewRepoSource(repo ruleRepo) *RepoSource {
	return &RepoSource{repo: repo}
}

func (s *RepoSource) Schedule(_ context.Context) (map[string]models.EncodedRule, error) {
	return s.repo.All()
}

// StoreSource reads rules from a remote command service through a RuleStore.
type StoreSource struct {
	store *store.RuleStore
}

func NewStoreSource(s *store.RuleStore) *StoreSource {
	return &StoreSource{store: s}
}

func (s *StoreSource) Schedule(ctx context.Context) (map[string]models.EncodedRule, error) {
	if err := s.store.Refresh(ctx); err != nil {
		return nil, err
	}
	schedule := map[string]models.EncodedRule{}
	for _, entry := range s.store.List() {
		schedule[entry.ID] = entry.Encoded
	}
	return schedule, nil
}
