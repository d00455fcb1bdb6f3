package repositories

import (
	"context"
	"freshfold/internal/database"
	. "freshfold/internal/models"
	"time"

	contextutil "freshfold/internal/context"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/gorm"
)

const (
	CATEGORY_CACHE_KEY    = "itemCategories"
	CATEGORY_CACHE_EXPIRY = time.Hour
)

type ItemCategoryRepository interface {
	GetAll(ctx context.Context) ([]ItemCategory, error)
	GetByNames(ctx context.Context, names []string) (map[string]ItemCategory, error)
}

type itemCategoryRepository struct {
	db  database.DB
	log logger.Logger
}

func NewItemCategoryRepository(db database.DB) ItemCategoryRepository {
	return &itemCategoryRepository{
		db:  db,
		log: logger.New("itemCategoryRepository"),
	}
}

func (r *itemCategoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// GetAll backs the new-request form. Categories change rarely so the full list
// is cached for an hour.
func (r *itemCategoryRepository) GetAll(ctx context.Context) ([]ItemCategory, error) {
	log := r.log.Function("GetAll")

	var categories []ItemCategory
	found, err := database.NewCacheBuilder(r.db.Cache.General, CATEGORY_CACHE_KEY).
		WithContext(ctx).
		Get(&categories)
	if err == nil && found {
		return categories, nil
	}

	if err := r.getDB(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, log.Err("failed to list item categories", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.General, CATEGORY_CACHE_KEY).
		WithStruct(categories).
		WithTTL(CATEGORY_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache item categories", "error", err)
	}

	return categories, nil
}

func (r *itemCategoryRepository) GetByNames(
	ctx context.Context,
	names []string,
) (map[string]ItemCategory, error) {
	log := r.log.Function("GetByNames")

	if len(names) == 0 {
		return map[string]ItemCategory{}, nil
	}

	var categories []ItemCategory
	if err := r.getDB(ctx).Where("name IN ?", names).Find(&categories).Error; err != nil {
		return nil, log.Err("failed to get item categories by name", err, "names", names)
	}

	byName := make(map[string]ItemCategory, len(categories))
	for _, category := range categories {
		byName[category.Name] = category
	}

	return byName, nil
}
