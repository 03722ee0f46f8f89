package registry

import (
	"fmt"
	"sort"

	"github.com/XavierBriggs/vantage/internal/sports/baseball_mlb"
	"github.com/XavierBriggs/vantage/internal/sports/basketball_nba"
	"github.com/XavierBriggs/vantage/internal/sports/football_nfl"
	"github.com/XavierBriggs/vantage/internal/sports/hockey_nhl"
	"github.com/XavierBriggs/vantage/pkg/contracts"
)

// ScopeAll requests every enabled sport
const ScopeAll = "all"

// Registry manages available sport modules
type Registry struct {
	modules map[string]contracts.SportModule
}

// New creates a new sport registry with all available sports
func New() *Registry {
	r := &Registry{
		modules: make(map[string]contracts.SportModule),
	}

	r.Register(basketball_nba.New())
	r.Register(football_nfl.New())
	r.Register(baseball_mlb.New())
	r.Register(hockey_nhl.New())

	return r
}

// NewEmpty creates a registry with no modules (tests)
func NewEmpty() *Registry {
	return &Registry{modules: make(map[string]contracts.SportModule)}
}

// Register adds a sport module to the registry
func (r *Registry) Register(module contracts.SportModule) {
	r.modules[module.GetSportKey()] = module
}

// GetModule retrieves a sport module by key
func (r *Registry) GetModule(sportKey string) (contracts.SportModule, error) {
	module, ok := r.modules[sportKey]
	if !ok {
		return nil, fmt.Errorf("sport module not found: %s", sportKey)
	}
	return module, nil
}

// EnabledSports returns all enabled sport modules in stable key order
func (r *Registry) EnabledSports() []contracts.SportModule {
	var enabled []contracts.SportModule
	for _, m := range r.modules {
		if m.IsEnabled() {
			enabled = append(enabled, m)
		}
	}
	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].GetSportKey() < enabled[j].GetSportKey()
	})
	return enabled
}

// ResolveScope maps a sport scope to the modules it covers: ScopeAll
// (or empty) means every enabled sport, anything else one sport key
func (r *Registry) ResolveScope(scope string) ([]contracts.SportModule, error) {
	if scope == "" || scope == ScopeAll {
		return r.EnabledSports(), nil
	}

	module, err := r.GetModule(scope)
	if err != nil {
		return nil, err
	}
	if !module.IsEnabled() {
		return nil, fmt.Errorf("sport disabled: %s", scope)
	}
	return []contracts.SportModule{module}, nil
}

// AllSportKeys returns all registered sport keys
func (r *Registry) AllSportKeys() []string {
	keys := make([]string, 0, len(r.modules))
	for key := range r.modules {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
