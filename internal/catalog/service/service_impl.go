package service

import (
	"context"
	"strings"
	"time"

	"github.com/modiatoukalord/kheops-sub000/internal/cache"
	catalogdomain "github.com/modiatoukalord/kheops-sub000/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	listCacheKey = "all"
	listCacheTTL = 30 * time.Second
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	cache cache.Cache[string, []catalogdomain.ActivityCategory]
}

func NewService(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		cache: cache.NewTTLCache[string, []catalogdomain.ActivityCategory](),
	}
}

// List returns all categories, serving repeated calls from a short TTL cache.
func (s *Service) List(ctx context.Context) ([]catalogdomain.ActivityCategory, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached, nil
	}

	var categories []catalogdomain.ActivityCategory
	if err := s.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	s.cache.Set(listCacheKey, categories, listCacheTTL)
	return categories, nil
}

// Find resolves a category by name, case-insensitively. A miss returns
// (nil, nil): unknown categories carry no custom pricing.
func (s *Service) Find(ctx context.Context, name string) (*catalogdomain.ActivityCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], nil
		}
	}
	return nil, nil
}
