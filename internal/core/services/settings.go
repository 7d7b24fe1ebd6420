package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyScraperProvider  = "scraper.provider"
	keyScraperDelay     = "scraper.delay"
	keyScraperTargets   = "scraper.targets"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedDimensions  = "embedding.dimensions"
	keyEmbedConcurrency = "embedding.concurrency"
	keyStoreProvider    = "vector_store.provider"
	keyStoreIndex       = "vector_store.index"
	keyStoreMetric      = "vector_store.metric"
	keyStoreCloud       = "vector_store.cloud"
	keyStoreRegion      = "vector_store.region"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyChunkMinLength   = "chunking.min_length"
	keyIndexBatchSize   = "indexing.batch_size"
	keyIndexPreviewLen  = "indexing.preview_length"
	keyIndexSourceTag   = "indexing.source_tag"
	keyQueryTopK        = "query.top_k"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindDuration
	kindList
)

var settingKinds = map[string]valueKind{
	keyScraperProvider:  kindString,
	keyScraperDelay:     kindDuration,
	keyScraperTargets:   kindList,
	keyEmbedProvider:    kindString,
	keyEmbedModel:       kindString,
	keyEmbedDimensions:  kindInt,
	keyEmbedConcurrency: kindInt,
	keyStoreProvider:    kindString,
	keyStoreIndex:       kindString,
	keyStoreMetric:      kindString,
	keyStoreCloud:       kindString,
	keyStoreRegion:      kindString,
	keyChunkSize:        kindInt,
	keyChunkOverlap:     kindInt,
	keyChunkMinLength:   kindInt,
	keyIndexBatchSize:   kindInt,
	keyIndexPreviewLen:  kindInt,
	keyIndexSourceTag:   kindString,
	keyQueryTopK:        kindInt,
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithOverride applies fn to the settings after the config file is read.
// Environment variables reach the pipeline this way.
func WithOverride(fn func(domain.Settings) domain.Settings) SettingsOption {
	return func(s *SettingsService) {
		s.override = fn
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	override    func(domain.Settings) domain.Settings
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{configStore: configStore}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the effective settings.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings, err := s.fromStore(s.configStore.Get)
	if err != nil {
		return domain.Settings{}, err
	}
	if s.override != nil {
		settings = s.override(settings)
	}
	return settings, nil
}

// Set parses value according to key, validates the resulting settings and
// persists it. An empty value removes the key so the default applies again.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return s.configStore.Unset(key)
	}

	parsed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	candidate, err := s.fromStore(func(k string) (any, bool) {
		if k == key {
			return parsed, true
		}
		return s.configStore.Get(k)
	})
	if err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, parsed)
}

// Keys returns every supported config key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the effective value of every config key, formatted as it
// would be passed to Set.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		keyScraperProvider:  string(settings.Scraper.Provider),
		keyScraperDelay:     settings.Scraper.Delay.String(),
		keyScraperTargets:   strings.Join(settings.Scraper.Targets, ","),
		keyEmbedProvider:    string(settings.Embedding.Provider),
		keyEmbedModel:       settings.Embedding.Model,
		keyEmbedDimensions:  strconv.Itoa(settings.Embedding.Dimensions),
		keyEmbedConcurrency: strconv.Itoa(settings.Embedding.Concurrency),
		keyStoreProvider:    string(settings.VectorStore.Provider),
		keyStoreIndex:       settings.VectorStore.Index,
		keyStoreMetric:      string(settings.VectorStore.Metric),
		keyStoreCloud:       settings.VectorStore.Cloud,
		keyStoreRegion:      settings.VectorStore.Region,
		keyChunkSize:        strconv.Itoa(settings.Chunking.Size),
		keyChunkOverlap:     strconv.Itoa(settings.Chunking.Overlap),
		keyChunkMinLength:   strconv.Itoa(settings.Chunking.MinLength),
		keyIndexBatchSize:   strconv.Itoa(settings.Indexing.BatchSize),
		keyIndexPreviewLen:  strconv.Itoa(settings.Indexing.PreviewLength),
		keyIndexSourceTag:   settings.Indexing.SourceTag,
		keyQueryTopK:        strconv.Itoa(settings.TopK),
	}, nil
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", value)
		}
		return n, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("expected a duration like 2s, got %q", value)
		}
		return d.String(), nil
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return value, nil
	}
}

// fromStore overlays stored values onto the defaults.
func (s *SettingsService) fromStore(get func(string) (any, bool)) (domain.Settings, error) {
	r := reader{get: get}
	d := domain.DefaultSettings()

	embedProvider := domain.EmbeddingProvider(r.str(keyEmbedProvider, string(d.Embedding.Provider)))
	// The model default follows the provider unless one is set explicitly.
	embedModel := r.str(keyEmbedModel, embedProvider.DefaultModel())

	settings := domain.Settings{
		Scraper: domain.ScraperSettings{
			Provider: domain.ScraperProvider(r.str(keyScraperProvider, string(d.Scraper.Provider))),
			Delay:    r.duration(keyScraperDelay, d.Scraper.Delay),
			Targets:  r.list(keyScraperTargets, d.Scraper.Targets),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:    embedProvider,
			Model:       embedModel,
			Dimensions:  r.integer(keyEmbedDimensions, d.Embedding.Dimensions),
			Concurrency: r.integer(keyEmbedConcurrency, d.Embedding.Concurrency),
		},
		VectorStore: domain.VectorStoreSettings{
			Provider: domain.VectorStoreProvider(r.str(keyStoreProvider, string(d.VectorStore.Provider))),
			Index:    r.str(keyStoreIndex, d.VectorStore.Index),
			Metric:   domain.Metric(r.str(keyStoreMetric, string(d.VectorStore.Metric))),
			Cloud:    r.str(keyStoreCloud, d.VectorStore.Cloud),
			Region:   r.str(keyStoreRegion, d.VectorStore.Region),
		},
		Chunking: domain.ChunkingSettings{
			Size:      r.integer(keyChunkSize, d.Chunking.Size),
			Overlap:   r.integer(keyChunkOverlap, d.Chunking.Overlap),
			MinLength: r.integer(keyChunkMinLength, d.Chunking.MinLength),
		},
		Indexing: domain.IndexingSettings{
			BatchSize:     r.integer(keyIndexBatchSize, d.Indexing.BatchSize),
			PreviewLength: r.integer(keyIndexPreviewLen, d.Indexing.PreviewLength),
			SourceTag:     r.str(keyIndexSourceTag, d.Indexing.SourceTag),
		},
		TopK: r.integer(keyQueryTopK, d.TopK),
	}

	if r.err != nil {
		return domain.Settings{}, r.err
	}
	return settings, nil
}

// reader converts raw config values, remembering the first type error.
type reader struct {
	get func(string) (any, bool)
	err error
}

func (r *reader) fail(key string, val any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s has unexpected value %v", domain.ErrInvalidConfig, key, val)
	}
}

func (r *reader) str(key, def string) string {
	val, ok := r.get(key)
	if !ok {
		return def
	}
	s, isStr := val.(string)
	if !isStr {
		r.fail(key, val)
		return def
	}
	if s == "" {
		return def
	}
	return s
}

func (r *reader) integer(key string, def int) int {
	val, ok := r.get(key)
	if !ok {
		return def
	}
	// TOML integers decode as int64
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		r.fail(key, val)
		return def
	}
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(key, raw)
		return def
	}
	return d
}

func (r *reader) list(key string, def []string) []string {
	val, ok := r.get(key)
	if !ok {
		return def
	}
	switch v := val.(type) {
	case []string:
		if len(v) == 0 {
			return def
		}
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isStr := item.(string)
			if !isStr {
				r.fail(key, val)
				return def
			}
			out = append(out, s)
		}
		if len(out) == 0 {
			return def
		}
		return out
	default:
		r.fail(key, val)
		return def
	}
}
