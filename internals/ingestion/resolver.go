package ingestion

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/models"
	"github.com/objectflow/ingester/internals/storage"
	"go.uber.org/zap"
)

// RuleResolver maps an object key to the single applicable ingestion rule.
// Rules are loaded fresh from the config repository on every resolution; when
// several patterns match, the first rule in the order the repository returns
// them wins, which keeps resolution deterministic for an unchanged rule set.
type RuleResolver struct {
	configRepository storage.ConfigRepository
}

// NewRuleResolver returns a resolver over a config repository.
func NewRuleResolver(configRepository storage.ConfigRepository) *RuleResolver {
	return &RuleResolver{configRepository: configRepository}
}

// Resolve returns the applicable rule for key, an ErrNoRule-marked error when
// no pattern matches, or an ErrRepository-marked error when the lookup itself
// fails (including an invalid stored pattern).
func (r *RuleResolver) Resolve(ctx context.Context, key string) (*models.Rule, error) {
	rules, err := r.configRepository.ListRules(ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "list ingestion rules"), ErrRepository)
	}

	for _, rule := range rules {
		pattern, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "invalid rule pattern %q", rule.Pattern), ErrRepository)
		}
		if pattern.MatchString(key) {
			zap.L().Debug("Rule matched",
				zap.String("key", key),
				zap.String("pattern", rule.Pattern),
				zap.String("targetTable", rule.TargetTable))
			matched := rule
			return &matched, nil
		}
	}

	zap.L().Warn("No ingestion rule matches key", zap.String("key", key), zap.Int("rulesChecked", len(rules)))
	return nil, errors.Mark(errors.Newf("no rule matches key %q", key), ErrNoRule)
}
