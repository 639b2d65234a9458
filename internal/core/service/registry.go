package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

type ComponentRegistry struct {
	mu                sync.RWMutex
	snapshotProviders map[string]ports.SnapshotProvider
	zoneProviders     map[string]ports.ZoneProvider
	reporters         map[string]ports.Reporter
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		snapshotProviders: make(map[string]ports.SnapshotProvider),
		zoneProviders:     make(map[string]ports.ZoneProvider),
		reporters:         make(map[string]ports.Reporter),
	}
}

func (r *ComponentRegistry) RegisterSnapshotProvider(provider ports.SnapshotProvider) error {
	if provider == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil snapshot provider")
	}
	providerType := provider.Type()
	if providerType == "" {
		return errors.New(errors.CodeInternal, "snapshot provider type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshotProviders[providerType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("snapshot provider type '%s' already registered", providerType))
	}
	r.snapshotProviders[providerType] = provider
	return nil
}

func (r *ComponentRegistry) GetSnapshotProvider(providerType string) (ports.SnapshotProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.snapshotProviders[providerType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("snapshot provider type '%s' not found", providerType))
	}
	return provider, nil
}

func (r *ComponentRegistry) RegisterZoneProvider(provider ports.ZoneProvider) error {
	if provider == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil zone provider")
	}
	providerType := provider.Type()
	if providerType == "" {
		return errors.New(errors.CodeInternal, "zone provider type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.zoneProviders[providerType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("zone provider type '%s' already registered", providerType))
	}
	r.zoneProviders[providerType] = provider
	return nil
}

func (r *ComponentRegistry) GetZoneProvider(providerType string) (ports.ZoneProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.zoneProviders[providerType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("zone provider type '%s' not found", providerType))
	}
	return provider, nil
}

func (r *ComponentRegistry) RegisterReporter(format string, reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	if format == "" {
		return errors.New(errors.CodeInternal, "reporter format cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[format]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter for format '%s' already registered", format))
	}
	r.reporters[format] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(format string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[format]
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("output format '%s' is not supported", format),
			fmt.Sprintf("Use one of: %v", r.reporterFormatsLocked()))
	}
	return reporter, nil
}

func (r *ComponentRegistry) reporterFormatsLocked() []string {
	formats := make([]string, 0, len(r.reporters))
	for f := range r.reporters {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
