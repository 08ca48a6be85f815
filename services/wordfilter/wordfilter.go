// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package wordfilter

import (
	"context"
	"fmt"
	"sync"

	user_model "code.kwd.dev/wordfilter/models/user"
	"code.kwd.dev/wordfilter/modules/htmlutil"
	"code.kwd.dev/wordfilter/modules/log"
	"code.kwd.dev/wordfilter/modules/markup"
	"code.kwd.dev/wordfilter/modules/optional"
	"code.kwd.dev/wordfilter/modules/setting"
	"code.kwd.dev/wordfilter/modules/timeutil"
	"code.kwd.dev/wordfilter/modules/util"
	"code.kwd.dev/wordfilter/modules/wordfilter"
	"code.kwd.dev/wordfilter/services/options"
)

const (
	// KeyWordList stores the comma separated words to filter
	KeyWordList = "plugin_words_to_filter"
	// KeyReplacement stores the text put in place of a filtered word
	KeyReplacement = "replacementText"

	// OptionGroup is the options form group the replacement belongs to
	OptionGroup = "replacementFields"

	// NonceAction is the action the word list form nonce is created for
	NonceAction = "saveFilterWords"

	// FilterName is the name of the filter on the render pipeline
	FilterName = "wordfilter"
)

func init() {
	options.RegisterSetting(OptionGroup, KeyReplacement, nil)
}

// SettingsStore reads and writes persisted settings
type SettingsStore interface {
	Get(ctx context.Context, key string) (optional.Option[string], error)
	Set(ctx context.Context, key, value string) error
}

// AuthGuard decides whether a submission may change settings
type AuthGuard interface {
	Verify(token string, capability user_model.Capability) bool
}

// ErrAuthorization is returned when a submission fails the anti-forgery or capability check
type ErrAuthorization struct {
	Capability user_model.Capability
}

// IsErrAuthorization checks if an error is an ErrAuthorization
func IsErrAuthorization(err error) bool {
	_, ok := err.(ErrAuthorization)
	return ok
}

func (err ErrAuthorization) Error() string {
	return fmt.Sprintf("authorization failed [capability: %s]", err.Capability)
}

func (err ErrAuthorization) Unwrap() error {
	return util.ErrPermissionDenied
}

// Status describes the render hook decision
type Status struct {
	Registered  bool
	WordCount   int
	DecidedUnix timeutil.TimeStamp
}

// Service manages the word filter settings and its render hook
type Service struct {
	store              SettingsStore
	pipeline           *markup.Pipeline
	policy             wordfilter.Policy
	defaultReplacement string
	priority           int

	mu     sync.RWMutex
	status Status
}

// NewService creates a service using the [wordfilter] settings
func NewService(store SettingsStore, pipeline *markup.Pipeline) *Service {
	return &Service{
		store:              store,
		pipeline:           pipeline,
		policy:             wordfilter.ParsePolicy(setting.WordFilter.Policy),
		defaultReplacement: setting.WordFilter.DefaultReplacement,
		priority:           setting.WordFilter.FilterPriority,
	}
}

// Policy returns the replacement policy used for filtering
func (s *Service) Policy() wordfilter.Policy {
	return s.policy
}

// DefaultReplacement is the replacement used while none has been saved
func (s *Service) DefaultReplacement() string {
	return s.defaultReplacement
}

// WordList returns the saved word list as entered, "" when absent
func (s *Service) WordList(ctx context.Context) (string, error) {
	v, err := s.store.Get(ctx, KeyWordList)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", KeyWordList, err)
	}
	return v.ValueOrDefault(""), nil
}

// Words returns the configured words, empty entries are left out
func (s *Service) Words(ctx context.Context) ([]string, error) {
	list, err := s.WordList(ctx)
	if err != nil {
		return nil, err
	}
	var words []string
	for _, w := range wordfilter.SplitWords(list) {
		if w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}

// Replacement returns the saved replacement, a saved empty value means words are removed
func (s *Service) Replacement(ctx context.Context) (string, error) {
	v, err := s.store.Get(ctx, KeyReplacement)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", KeyReplacement, err)
	}
	return v.ValueOrDefault(s.defaultReplacement), nil
}

// FilterContent replaces the configured words in content with the configured replacement
func (s *Service) FilterContent(ctx context.Context, content string) (string, error) {
	list, err := s.WordList(ctx)
	if err != nil {
		return "", err
	}
	replacement, err := s.Replacement(ctx)
	if err != nil {
		return "", err
	}
	filtered := wordfilter.FilterWithPolicy(s.policy, content, list, replacement)
	if filtered != content {
		filteredRendersCounter.Inc()
	}
	return filtered, nil
}

// SaveWordList stores a submitted word list when the guard accepts the token
func (s *Service) SaveWordList(ctx context.Context, guard AuthGuard, token, raw string) error {
	if guard == nil || !guard.Verify(token, user_model.CapManageOptions) {
		refusedSavesCounter.Inc()
		return ErrAuthorization{Capability: user_model.CapManageOptions}
	}
	return s.SetWordList(ctx, raw)
}

// SetWordList sanitizes and stores a word list without any authorization check,
// it is used by the command line where the operator is trusted
func (s *Service) SetWordList(ctx context.Context, raw string) error {
	if err := s.store.Set(ctx, KeyWordList, htmlutil.SanitizeTextField(raw)); err != nil {
		return fmt.Errorf("save %s: %w", KeyWordList, err)
	}
	savedSettingsCounter.WithLabelValues(KeyWordList).Inc()
	return nil
}

// SaveReplacement stores the replacement text
func (s *Service) SaveReplacement(ctx context.Context, value string) error {
	if err := s.store.Set(ctx, KeyReplacement, value); err != nil {
		return fmt.Errorf("save %s: %w", KeyReplacement, err)
	}
	savedSettingsCounter.WithLabelValues(KeyReplacement).Inc()
	return nil
}

// Init decides whether the filter takes part in rendering, the decision holds until Reload is called
func (s *Service) Init(ctx context.Context) error {
	words, err := s.Words(ctx)
	if err != nil {
		return err
	}

	registered := len(words) > 0
	if registered {
		s.pipeline.AddFilter(FilterName, s.priority, s.FilterContent)
	} else {
		s.pipeline.RemoveFilter(FilterName)
	}

	s.mu.Lock()
	s.status = Status{Registered: registered, WordCount: len(words), DecidedUnix: timeutil.TimeStampNow()}
	s.mu.Unlock()
	hookRegisteredGauge.Set(util.Iif(registered, 1.0, 0.0))

	log.Info("Word filter: render hook registered: %t (%d words, policy %s)", registered, len(words), s.policy)
	return nil
}

// Reload re-evaluates the render hook decision with the current settings
func (s *Service) Reload(ctx context.Context) error {
	log.Trace("Word filter: reloading render hook")
	return s.Init(ctx)
}

// Registered reports whether the filter was registered by the last decision
func (s *Service) Registered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Registered
}

// Status returns the last render hook decision
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
