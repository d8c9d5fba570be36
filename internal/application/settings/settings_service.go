package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"go.uber.org/zap"
)

// SettingsService reads and writes store settings and runs the reorder calculation
type SettingsService struct {
	repo     settings.Repository
	itemRepo inventory.Repository
	logger   *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.Repository, itemRepo inventory.Repository, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, itemRepo: itemRepo, logger: logger}
}

// Values returns the typed settings, defaults filling anything missing or unparsable
func (s *SettingsService) Values(ctx context.Context) (settings.Values, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return settings.Values{}, err
	}
	m := make(map[string]string, len(all))
	for _, st := range all {
		m[st.Key] = st.Value
	}
	return settings.ValuesFromMap(m), nil
}

// List returns every stored setting
func (s *SettingsService) List(ctx context.Context) (*SettingsResponse, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := &SettingsResponse{
		Settings: make([]SettingResponse, len(all)),
		Values:   make(map[string]string, len(all)),
	}
	for i := range all {
		resp.Settings[i] = ToSettingResponse(&all[i])
		resp.Values[all[i].Key] = all[i].Value
	}
	return resp, nil
}

// Get returns one setting
func (s *SettingsService) Get(ctx context.Context, key string) (*SettingResponse, error) {
	st, err := s.repo.FindByKey(ctx, strings.TrimSpace(key))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Setting")
		}
		return nil, err
	}
	resp := ToSettingResponse(st)
	return &resp, nil
}

// Set validates and upserts one setting
func (s *SettingsService) Set(ctx context.Context, key, value string) (*SettingResponse, error) {
	st, err := s.prepare(ctx, key, value)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("Setting updated", zap.String("key", st.Key), zap.String("value", st.Value))
	resp := ToSettingResponse(st)
	return &resp, nil
}

// SetAll validates every value first, then writes them together
func (s *SettingsService) SetAll(ctx context.Context, values map[string]string) (*SettingsResponse, error) {
	if len(values) == 0 {
		return nil, shared.InvalidInput("No settings given")
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batch := make([]settings.Setting, 0, len(keys))
	for _, k := range keys {
		st, err := s.prepare(ctx, k, values[k])
		if err != nil {
			return nil, err
		}
		batch = append(batch, *st)
	}
	if err := s.repo.UpsertAll(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("Settings updated", zap.Strings("keys", keys))
	return s.List(ctx)
}

// prepare builds the row to upsert, keeping the stored description
func (s *SettingsService) prepare(ctx context.Context, key, value string) (*settings.Setting, error) {
	key = strings.TrimSpace(key)
	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := existing.ChangeValue(value); err != nil {
			return nil, err
		}
		return existing, nil
	}

	st, err := settings.NewSetting(key, value)
	if err != nil {
		return nil, err
	}
	for _, d := range settings.Defaults() {
		if d.Key == st.Key {
			st.Description = d.Description
		}
	}
	return st, nil
}

// ReorderPoints runs the reorder calculation over the whole inventory.
// An empty priority returns every item; the summary always covers all items.
func (s *SettingsService) ReorderPoints(ctx context.Context, priority string) (*ReorderPointsResponse, error) {
	var want shopping.Priority
	if priority != "" {
		want = shopping.Priority(strings.ToLower(priority))
		if !want.IsValid() {
			return nil, shared.InvalidInput(fmt.Sprintf("Unknown priority '%s'", priority))
		}
	}

	v, err := s.Values(ctx)
	if err != nil {
		return nil, err
	}
	points, err := CalculateAll(ctx, s.itemRepo, v)
	if err != nil {
		return nil, err
	}

	summary := settings.SummarizeReorderPoints(points)
	resp := &ReorderPointsResponse{
		SettingsUsed: SettingsUsed{
			ReorderMultiplier:      v.ReorderMultiplier,
			LowStockThreshold:      v.LowStockThreshold,
			CriticalStockThreshold: v.CriticalStockThreshold,
		},
		Items:   make([]ReorderPointResponse, 0, len(points)),
		Summary: make(map[string]int, len(summary)),
	}
	for p, n := range summary {
		resp.Summary[p.String()] = n
	}
	for _, p := range points {
		if want != "" && p.Priority != want {
			continue
		}
		resp.Items = append(resp.Items, ToReorderPointResponse(p))
	}
	return resp, nil
}

// CalculateAll loads every inventory item and returns its sorted reorder points
func CalculateAll(ctx context.Context, itemRepo inventory.Repository, v settings.Values) ([]settings.ReorderPoint, error) {
	items, err := itemRepo.FindAll(ctx, shared.DefaultFilter().Unpaged())
	if err != nil {
		return nil, err
	}
	return settings.CalculateReorderPoints(items, v), nil
}
