package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CacheConfig 캐시 설정
type CacheConfig struct {
	CategoryTTL time.Duration
	KeyPrefix   string
}

// DefaultCacheConfig 기본 캐시 설정
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		CategoryTTL: 10 * time.Minute,
		KeyPrefix:   "press:category:",
	}
}

// CachedCategoryRepository fronts the public category reads with Redis.
// FindByIDs is not cached: publish/create existence checks must see the
// database.
type CachedCategoryRepository struct {
	repo   CategoryRepository
	redis  *redis.Client
	config *CacheConfig
}

// NewCachedCategoryRepository wraps repo. A nil client disables caching.
func NewCachedCategoryRepository(repo CategoryRepository, redisClient *redis.Client, config *CacheConfig) CategoryRepository {
	if redisClient == nil {
		return repo
	}
	if config == nil {
		config = DefaultCacheConfig()
	}
	return &CachedCategoryRepository{
		repo:   repo,
		redis:  redisClient,
		config: config,
	}
}

func (r *CachedCategoryRepository) keyBySlug(slug string) string {
	return fmt.Sprintf("%sslug:%s", r.config.KeyPrefix, slug)
}

func (r *CachedCategoryRepository) keyActive() string {
	return r.config.KeyPrefix + "active"
}

func (r *CachedCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error) {
	return r.repo.FindByIDs(ctx, ids)
}

func (r *CachedCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	key := r.keyBySlug(slug)
	var cached domain.Category
	if r.get(ctx, key, &cached) {
		return &cached, nil
	}
	category, err := r.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, category)
	return category, nil
}

func (r *CachedCategoryRepository) ListActive(ctx context.Context) ([]*domain.Category, error) {
	key := r.keyActive()
	var cached []*domain.Category
	if r.get(ctx, key, &cached) {
		return cached, nil
	}
	categories, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	r.set(ctx, key, categories)
	return categories, nil
}

func (r *CachedCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.repo.Create(ctx, category); err != nil {
		return err
	}
	// 캐시 무효화
	if err := r.redis.Del(ctx, r.keyActive(), r.keyBySlug(category.Slug)).Err(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("category cache invalidation failed")
	}
	return nil
}

// get reports a cache hit. Redis errors count as a miss.
func (r *CachedCategoryRepository) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (r *CachedCategoryRepository) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, data, r.config.CategoryTTL).Err(); err != nil {
		logger.GetLogger().Debug().Err(err).Str("key", key).Msg("category cache write failed")
	}
}
