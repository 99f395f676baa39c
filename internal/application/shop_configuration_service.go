package application

import (
	"context"
	"errors"
	"fmt"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"

	"github.com/rs/zerolog"
)

// ShopConfigurationService reads and updates the per-shop configuration
type ShopConfigurationService struct {
	repo   ports.ShopConfigurationRepository
	cache  ports.ShopConfigurationCache
	logger zerolog.Logger
}

// NewShopConfigurationService creates a new configuration service. cache may be nil.
func NewShopConfigurationService(repo ports.ShopConfigurationRepository, cache ports.ShopConfigurationCache, logger zerolog.Logger) *ShopConfigurationService {
	return &ShopConfigurationService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the configuration of shop, creating it with defaults on first access
func (s *ShopConfigurationService) Get(ctx context.Context, shop string) (*domain.ShopConfiguration, error) {
	if shop == "" {
		return nil, domain.ErrShopRequired
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, shop)
		if err != nil {
			s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to read configuration cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	config, err := s.repo.GetByShop(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop configuration: %w", err)
	}

	if config == nil {
		config = domain.NewDefaultShopConfiguration(shop)
		if err := s.repo.Create(ctx, config); err != nil {
			if !errors.Is(err, domain.ErrConfigurationExists) {
				return nil, fmt.Errorf("failed to create shop configuration: %w", err)
			}
			// Another request created it first
			config, err = s.repo.GetByShop(ctx, shop)
			if err != nil {
				return nil, fmt.Errorf("failed to get shop configuration: %w", err)
			}
			if config == nil {
				return nil, fmt.Errorf("shop configuration for %s vanished after create conflict", shop)
			}
		} else {
			s.logger.Info().Str("shop", shop).Msg("Created default shop configuration")
		}
	}

	s.store(ctx, config)
	return config, nil
}

// Update applies a partial update, creating the defaults first when needed
func (s *ShopConfigurationService) Update(ctx context.Context, shop string, patch *domain.ShopConfigurationPatch) (*domain.ShopConfiguration, error) {
	if _, err := s.Get(ctx, shop); err != nil {
		return nil, err
	}
	if patch == nil || patch.IsEmpty() {
		return s.Get(ctx, shop)
	}

	updated, err := s.repo.Update(ctx, shop, patch)
	if err != nil {
		s.evict(ctx, shop)
		return nil, fmt.Errorf("failed to update shop configuration: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("shop configuration for %s not found", shop)
	}

	s.store(ctx, updated)
	s.logger.Info().Str("shop", shop).Msg("Shop configuration updated")
	return updated, nil
}

// Delete removes the configuration of shop
func (s *ShopConfigurationService) Delete(ctx context.Context, shop string) error {
	if shop == "" {
		return domain.ErrShopRequired
	}
	if err := s.repo.Delete(ctx, shop); err != nil {
		return fmt.Errorf("failed to delete shop configuration: %w", err)
	}
	s.evict(ctx, shop)
	return nil
}

// Evict drops the cached configuration of shop
func (s *ShopConfigurationService) Evict(ctx context.Context, shop string) {
	s.evict(ctx, shop)
}

func (s *ShopConfigurationService) store(ctx context.Context, config *domain.ShopConfiguration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, config); err != nil {
		s.logger.Warn().Err(err).Str("shop", config.Shop).Msg("Failed to cache shop configuration")
	}
}

func (s *ShopConfigurationService) evict(ctx context.Context, shop string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, shop); err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to invalidate configuration cache")
	}
}
