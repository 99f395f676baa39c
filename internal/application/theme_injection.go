package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"
	"simple-gifting/internal/theme"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Injection step names reported in results
const (
	StepProductTemplate = "product-template"
	StepThemeLayout     = "theme-layout"
)

// ThemeInjectionService installs and removes the gifting code in a theme
type ThemeInjectionService struct {
	assets     ports.ThemeAssetStore
	operations ports.ThemeOperationRepository
	activity   ports.ActivityPublisher
	metrics    ports.MetricsRecorder
	logger     zerolog.Logger
}

// NewThemeInjectionService creates a new injection service. operations may be nil.
func NewThemeInjectionService(
	assets ports.ThemeAssetStore,
	operations ports.ThemeOperationRepository,
	metrics ports.MetricsRecorder,
	logger zerolog.Logger,
) *ThemeInjectionService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ThemeInjectionService{
		assets:     assets,
		operations: operations,
		metrics:    metrics,
		logger:     logger,
	}
}

// SetActivityPublisher streams every recorded operation to live subscribers
func (s *ThemeInjectionService) SetActivityPublisher(p ports.ActivityPublisher) {
	s.activity = p
}

// ActiveTheme returns the published theme of shop
func (s *ThemeInjectionService) ActiveTheme(ctx context.Context, shop string) (*domain.ThemeIdentity, error) {
	t, err := s.assets.ActiveTheme(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to get active theme: %w", err)
	}
	return t, nil
}

// History returns the most recent theme operations of shop
func (s *ThemeInjectionService) History(ctx context.Context, shop string, limit int64) ([]*domain.ThemeOperation, error) {
	if s.operations == nil {
		return []*domain.ThemeOperation{}, nil
	}
	ops, err := s.operations.ListByShop(ctx, shop, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme operations: %w", err)
	}
	return ops, nil
}

// Inject writes the gifting assets and patches the product template and layout.
// Every step is attempted independently; success means no step errored.
// An empty themeID targets the active theme.
func (s *ThemeInjectionService) Inject(ctx context.Context, shop, themeID string) *domain.InjectionResult {
	result := &domain.InjectionResult{
		Injected:      []string{},
		Errors:        []string{},
		AlreadyExists: []string{},
	}

	themeID, err := s.resolveTheme(ctx, shop, themeID)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		s.record(ctx, shop, themeID, domain.ThemeOperationInject, false, result.Injected, result.AlreadyExists, result.Errors)
		return result
	}

	existing, err := s.assets.ListAssets(ctx, shop, themeID)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Str("themeId", themeID).Msg("Theme injection failed")
		result.Errors = append(result.Errors, fmt.Sprintf("failed to list theme assets: %v", err))
		s.record(ctx, shop, themeID, domain.ThemeOperationInject, false, result.Injected, result.AlreadyExists, result.Errors)
		return result
	}
	present := make(map[string]bool, len(existing))
	for _, a := range existing {
		present[a.Key] = true
	}

	for _, asset := range theme.OwnedAssets() {
		if present[asset.Key] {
			s.alreadyExists(result, asset.Step)
			continue
		}
		err := s.assets.SaveAsset(ctx, shop, themeID, domain.ThemeAsset{Key: asset.Key, Value: asset.Value})
		if err != nil {
			s.failed(result, asset.Step, fmt.Sprintf("failed to inject %s: %v", asset.Key, err))
			continue
		}
		s.injected(result, asset.Step)
	}

	s.patchProductTemplate(ctx, shop, themeID, result)
	s.patchLayout(ctx, shop, themeID, result)

	result.Success = len(result.Errors) == 0

	s.logger.Info().
		Str("shop", shop).
		Str("themeId", themeID).
		Bool("success", result.Success).
		Strs("injected", result.Injected).
		Strs("alreadyExists", result.AlreadyExists).
		Strs("errors", result.Errors).
		Msg("Theme injection finished")

	s.record(ctx, shop, themeID, domain.ThemeOperationInject, result.Success, result.Injected, result.AlreadyExists, result.Errors)
	return result
}

func (s *ThemeInjectionService) patchProductTemplate(ctx context.Context, shop, themeID string, result *domain.InjectionResult) {
	key := theme.ProductTemplateKey
	asset, err := s.assets.GetAsset(ctx, shop, themeID, key)
	if err != nil {
		key = theme.ProductFormSectionKey
		asset, err = s.assets.GetAsset(ctx, shop, themeID, key)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			s.failed(result, StepProductTemplate, "product template not found")
		} else {
			s.failed(result, StepProductTemplate, fmt.Sprintf("failed to update product template: %v", err))
		}
		return
	}

	patched, changed := theme.PatchProductTemplate(asset.Value)
	if !changed {
		s.alreadyExists(result, StepProductTemplate)
		return
	}
	if err := s.assets.SaveAsset(ctx, shop, themeID, domain.ThemeAsset{Key: key, Value: patched}); err != nil {
		s.failed(result, StepProductTemplate, fmt.Sprintf("failed to update product template: %v", err))
		return
	}
	s.injected(result, StepProductTemplate)
}

func (s *ThemeInjectionService) patchLayout(ctx context.Context, shop, themeID string, result *domain.InjectionResult) {
	asset, err := s.assets.GetAsset(ctx, shop, themeID, theme.LayoutKey)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			s.failed(result, StepThemeLayout, "theme layout not found")
		} else {
			s.failed(result, StepThemeLayout, fmt.Sprintf("failed to update theme layout: %v", err))
		}
		return
	}

	patched, changed := theme.PatchLayout(asset.Value)
	if !changed {
		s.alreadyExists(result, StepThemeLayout)
		return
	}
	if err := s.assets.SaveAsset(ctx, shop, themeID, domain.ThemeAsset{Key: theme.LayoutKey, Value: patched}); err != nil {
		s.failed(result, StepThemeLayout, fmt.Sprintf("failed to update theme layout: %v", err))
		return
	}
	s.injected(result, StepThemeLayout)
}

// Remove deletes the app's own assets. Template and layout patches stay in
// place. A failed delete is logged and skipped, so success is always true
// once the theme is resolved.
func (s *ThemeInjectionService) Remove(ctx context.Context, shop, themeID string) *domain.RemovalResult {
	result := &domain.RemovalResult{
		Removed: []string{},
		Errors:  []string{},
	}

	themeID, err := s.resolveTheme(ctx, shop, themeID)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		s.record(ctx, shop, themeID, domain.ThemeOperationRemove, false, result.Removed, nil, result.Errors)
		return result
	}

	for _, key := range theme.OwnedAssetKeys() {
		if err := s.assets.DeleteAsset(ctx, shop, themeID, key); err != nil {
			s.logger.Info().Err(err).Str("shop", shop).Str("key", key).Msg("Asset not found or already removed")
			s.metrics.ThemeStep(string(domain.ThemeOperationRemove), key, "skipped")
			continue
		}
		result.Removed = append(result.Removed, key)
		s.metrics.ThemeStep(string(domain.ThemeOperationRemove), key, "removed")
	}
	result.Success = true

	s.logger.Info().Str("shop", shop).Str("themeId", themeID).Strs("removed", result.Removed).Msg("Theme code removed")
	s.record(ctx, shop, themeID, domain.ThemeOperationRemove, true, result.Removed, nil, result.Errors)
	return result
}

func (s *ThemeInjectionService) resolveTheme(ctx context.Context, shop, themeID string) (string, error) {
	if themeID != "" {
		return themeID, nil
	}
	active, err := s.ActiveTheme(ctx, shop)
	if err != nil {
		return "", err
	}
	if active == nil || active.ID == "" {
		return "", domain.ErrThemeNotFound
	}
	return active.ID, nil
}

func (s *ThemeInjectionService) injected(result *domain.InjectionResult, step string) {
	result.Injected = append(result.Injected, step)
	s.metrics.ThemeStep(string(domain.ThemeOperationInject), step, "injected")
}

func (s *ThemeInjectionService) alreadyExists(result *domain.InjectionResult, step string) {
	result.AlreadyExists = append(result.AlreadyExists, step)
	s.metrics.ThemeStep(string(domain.ThemeOperationInject), step, "already_exists")
}

func (s *ThemeInjectionService) failed(result *domain.InjectionResult, step, msg string) {
	result.Errors = append(result.Errors, msg)
	s.metrics.ThemeStep(string(domain.ThemeOperationInject), step, "error")
}

// record stores the audit entry; failures are only logged
func (s *ThemeInjectionService) record(
	ctx context.Context,
	shop, themeID string,
	kind domain.ThemeOperationKind,
	success bool,
	changed, alreadyExists, errs []string,
) {
	op := &domain.ThemeOperation{
		ID:            uuid.NewString(),
		Shop:          shop,
		ThemeID:       themeID,
		Kind:          kind,
		Success:       success,
		Changed:       changed,
		AlreadyExists: alreadyExists,
		Errors:        errs,
		CreatedAt:     time.Now(),
	}
	if s.activity != nil {
		s.activity.Publish(&domain.Activity{
			Kind:      domain.ActivityThemeOperation,
			Shop:      shop,
			Topic:     string(kind),
			Success:   success,
			Detail:    op,
			CreatedAt: op.CreatedAt,
		})
	}
	if s.operations == nil {
		return
	}
	if err := s.operations.Save(ctx, op); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Str("kind", string(kind)).Msg("Failed to record theme operation")
	}
}
