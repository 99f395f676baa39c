package application

import (
	"context"
	"fmt"

	"simple-gifting/internal/domain"
	"simple-gifting/internal/ports"
	"simple-gifting/internal/theme"

	"github.com/rs/zerolog"
)

// ThemeCompatibilityService decides whether the published theme can host app blocks
type ThemeCompatibilityService struct {
	reader  ports.ThemeFileReader
	metrics ports.MetricsRecorder
	logger  zerolog.Logger
}

// NewThemeCompatibilityService creates a new compatibility service
func NewThemeCompatibilityService(reader ports.ThemeFileReader, metrics ports.MetricsRecorder, logger zerolog.Logger) *ThemeCompatibilityService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ThemeCompatibilityService{
		reader:  reader,
		metrics: metrics,
		logger:  logger,
	}
}

type templateSection struct {
	template string
	section  string
}

// Check inspects the main theme of shop. It never fails: a missing themes
// permission yields a permissive fallback and any other error a negative result.
func (s *ThemeCompatibilityService) Check(ctx context.Context, shop string) *domain.ThemeCompatibility {
	result, err := s.check(ctx, shop)
	if err != nil {
		if domain.IsThemePermissionError(err) {
			s.logger.Warn().Err(err).Str("shop", shop).Msg("Theme compatibility check skipped: read_themes scope not available")
			result = permissionFallback()
		} else {
			s.logger.Error().Err(err).Str("shop", shop).Msg("Failed to check theme compatibility")
			result = &domain.ThemeCompatibility{
				SupportedTemplates: []string{},
				MainSections:       []domain.MainSection{},
				Outcome:            domain.CompatibilityFailed,
				Error:              err.Error(),
			}
		}
	}

	s.metrics.CompatibilityChecked(string(result.Outcome))
	return result
}

func (s *ThemeCompatibilityService) check(ctx context.Context, shop string) (*domain.ThemeCompatibility, error) {
	main, err := s.reader.MainTheme(ctx, shop)
	if err != nil {
		return nil, err
	}

	filenames := make([]string, 0, len(theme.AppBlockTemplates))
	for _, name := range theme.AppBlockTemplates {
		filenames = append(filenames, theme.TemplatePath(name))
	}

	templates, err := s.reader.ThemeFiles(ctx, shop, main.ID, filenames)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}

	if len(templates) != len(theme.AppBlockTemplates) {
		s.logger.Info().
			Str("shop", shop).
			Str("themeId", main.ID).
			Int("found", len(templates)).
			Msg("Theme does not provide every JSON template")
		return &domain.ThemeCompatibility{
			ThemeID:            main.ID,
			ThemeName:          main.Name,
			SupportedTemplates: []string{},
			MainSections:       []domain.MainSection{},
			Outcome:            domain.CompatibilityIncompleteTemplates,
		}, nil
	}

	refs := make([]templateSection, 0, len(templates))
	for _, file := range templates {
		sectionType, ok := theme.MainSectionType(file.Content)
		if !ok {
			s.logger.Debug().Str("shop", shop).Str("file", file.Filename).Msg("Skipping template without a readable main section")
			continue
		}
		refs = append(refs, templateSection{
			template: theme.TemplateName(file.Filename),
			section:  theme.SectionPath(sectionType),
		})
	}

	accepts := make(map[string]bool, len(refs))
	if len(refs) > 0 {
		sectionPaths := make([]string, 0, len(refs))
		for _, ref := range refs {
			sectionPaths = append(sectionPaths, ref.section)
		}
		sections, err := s.reader.ThemeFiles(ctx, shop, main.ID, sectionPaths)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sections: %w", err)
		}
		for _, file := range sections {
			accepts[file.Filename] = theme.AcceptsAppBlock(file.Content)
		}
	}

	result := &domain.ThemeCompatibility{
		ThemeID:            main.ID,
		ThemeName:          main.Name,
		SupportedTemplates: []string{},
		MainSections:       make([]domain.MainSection, 0, len(refs)),
		Outcome:            domain.CompatibilityChecked,
	}
	allSupported := len(refs) > 0
	for _, ref := range refs {
		supported := accepts[ref.section]
		result.MainSections = append(result.MainSections, domain.MainSection{
			Template:          ref.template,
			Section:           ref.section,
			SupportsAppBlocks: supported,
		})
		if supported {
			result.SupportedTemplates = append(result.SupportedTemplates, ref.template)
		} else {
			allSupported = false
		}
	}
	result.SupportsAppBlocks = allSupported

	return result, nil
}

func permissionFallback() *domain.ThemeCompatibility {
	return &domain.ThemeCompatibility{
		SupportsAppBlocks:  true,
		ThemeID:            "unknown",
		ThemeName:          "Unknown Theme",
		SupportedTemplates: append([]string(nil), theme.AppBlockTemplates...),
		MainSections:       []domain.MainSection{},
		Outcome:            domain.CompatibilityPermissionFallback,
	}
}
