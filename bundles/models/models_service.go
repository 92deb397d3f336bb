package models

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/globals"
	"github.com/jinzhu/gorm"
)

// Service is the main struct exported by this Models Service.
// It was meant as a way to structure code and help future extensions.
type Service struct{}

// ListRequest selects one page of models. Empty filters match everything.
type ListRequest struct {
	Page     int64
	PerPage  int64
	Category string
	Type     string
	Keyword  string
}

func (lr ListRequest) offset() int64 {
	return (gz.Max(lr.Page, 1) - 1) * lr.PerPage
}

// isBasic returns true for unfiltered listings. Those can be served from
// the memory cache.
func (lr ListRequest) isBasic() bool {
	return lr.Category == "" && lr.Type == "" && strings.TrimSpace(lr.Keyword) == ""
}

func listCacheKeys(lr ListRequest) (modelsKey, paginationKey string) {
	suffix := fmt.Sprintf("_%d_%d", lr.Page, lr.PerPage)
	return "models_list_models" + suffix, "models_list_pagination" + suffix
}

// getModelListCache attempts to get a query result from memcache.
func getModelListCache(modelsKey, paginationKey string) (Models, *gz.PaginationResult, bool) {
	if globals.QueryCache == nil {
		return nil, nil, false
	}
	paginationItem, errPagination := globals.QueryCache.Get(paginationKey)
	modelsItem, errModels := globals.QueryCache.Get(modelsKey)
	if errPagination != nil || errModels != nil {
		return nil, nil, false
	}

	var paginationResult gz.PaginationResult
	var modelsResult Models
	errPagination = json.Unmarshal(paginationItem.Value, &paginationResult)
	errModels = json.Unmarshal(modelsItem.Value, &modelsResult)
	if errPagination != nil || errModels != nil {
		return nil, nil, false
	}
	return modelsResult, &paginationResult, true
}

func setModelListCache(ctx context.Context, modelsKey, paginationKey string, list Models, pagination *gz.PaginationResult) {
	if globals.QueryCache == nil {
		return
	}
	paginationBytes, paginationErr := json.Marshal(pagination)
	if paginationErr != nil {
		gz.LoggerFromContext(ctx).Error("Error marshalling pagination result", paginationErr)
	}
	modelsBytes, modelsErr := json.Marshal(list)
	if modelsErr != nil {
		gz.LoggerFromContext(ctx).Error("Error marshalling models result", modelsErr)
	}
	if paginationErr != nil || modelsErr != nil {
		return
	}
	if err := globals.QueryCache.Set(&memcache.Item{Key: paginationKey, Value: paginationBytes}); err != nil {
		gz.LoggerFromContext(ctx).Error("Error caching model pagination result", err)
	}
	if err := globals.QueryCache.Set(&memcache.Item{Key: modelsKey, Value: modelsBytes}); err != nil {
		gz.LoggerFromContext(ctx).Error("Error caching model list result", err)
	}
}

func clearModelListCache(ctx context.Context) {
	if globals.QueryCache == nil {
		return
	}
	if err := globals.QueryCache.DeleteAll(); err != nil {
		gz.LoggerFromContext(ctx).Error("Failed to clear the memory cache.")
	}
}

// likeEscaper makes LIKE wildcards in a keyword match literally, with '!'
// as the escape character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ModelList returns a page of models, ordered by ID.
// Keyword searches go to Elastic Search when available and fall back to a
// SQL LIKE search over name, description and type otherwise. A page past
// the end is not an error: it has no models and PageFound is false.
func (ms *Service) ModelList(ctx context.Context, tx *gorm.DB, lr ListRequest) (Models, *gz.PaginationResult, *gz.ErrMsg) {
	basic := lr.isBasic()
	modelsKey, paginationKey := listCacheKeys(lr)
	if basic {
		if list, pagination, ok := getModelListCache(modelsKey, paginationKey); ok {
			return list, pagination, nil
		}
	}

	keyword := strings.TrimSpace(lr.Keyword)
	if keyword != "" && globals.ElasticSearch != nil {
		list, pagination, em := ElasticSearchModels(ctx, tx, lr)
		if em == nil {
			return list, pagination, nil
		}
		gz.LoggerFromContext(ctx).Warning("Elastic Search failed, using SQL search.", em.Msg)
	}

	q := QueryForModels(tx)
	if lr.Category != "" {
		q = q.Where("category = ?", lr.Category)
	}
	if lr.Type != "" {
		q = q.Where("type = ?", lr.Type)
	}
	if keyword != "" {
		like := "%" + escapeLike(strings.ToLower(keyword)) + "%"
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(type) LIKE ? ESCAPE '!'",
			like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, gz.NewErrorMessageWithBase(gz.ErrorNoDatabase, err)
	}

	var list Models
	if err := q.Order("id").Offset(lr.offset()).Limit(lr.PerPage).Find(&list).Error; err != nil {
		return nil, nil, gz.NewErrorMessageWithBase(gz.ErrorNoDatabase, err)
	}
	if list == nil {
		list = Models{}
	}

	pagination := &gz.PaginationResult{
		Page:       lr.Page,
		PerPage:    lr.PerPage,
		QueryCount: total,
		PageFound:  len(list) > 0 || lr.Page == 1,
	}

	if basic {
		setModelListCache(ctx, modelsKey, paginationKey, list, pagination)
	}
	return list, pagination, nil
}

// GetModel returns a model by its id.
func (ms *Service) GetModel(tx *gorm.DB, id uint) (*Model, *gz.ErrMsg) {
	model, err := GetModelByID(tx, id)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, gz.NewErrorMessageWithArgs(gz.ErrorIDNotFound, err, []string{fmt.Sprint(id)})
		}
		return nil, gz.NewErrorMessageWithBase(gz.ErrorNoDatabase, err)
	}
	return model, nil
}

// applyExpression applies an update expression to a model field.
func (ms *Service) applyExpression(tx *gorm.DB, model *Model, field string, expr *gorm.SqlExpr) *gz.ErrMsg {
	if err := tx.Model(model).UpdateColumn(field, expr).Error; err != nil {
		return gz.NewErrorMessageWithBase(gz.ErrorDbSave, err)
	}
	return nil
}

// SetLike records a like (liked true) or an unlike of a model and returns
// the updated model. The like count never goes below zero.
func (ms *Service) SetLike(ctx context.Context, tx *gorm.DB, id uint, liked bool) (*Model, *gz.ErrMsg) {
	model, em := ms.GetModel(tx, id)
	if em != nil {
		return nil, em
	}
	if liked {
		em = ms.applyExpression(tx, model, "like_count", gorm.Expr("like_count + ?", 1))
	} else {
		// Floored in SQL.
		em = ms.applyExpression(tx.Where("like_count > ?", 0), model, "like_count", gorm.Expr("like_count - ?", 1))
	}
	if em != nil {
		return nil, em
	}
	clearModelListCache(ctx)
	return ms.GetModel(tx, id)
}

// CategoryCount is the number of models in a category.
type CategoryCount struct {
	Category string
	Count    int64
}

// CountByCategory returns the number of models per category code.
func (ms *Service) CountByCategory(tx *gorm.DB) (map[string]int64, *gz.ErrMsg) {
	var rows []CategoryCount
	if err := QueryForModels(tx).Select("category, count(*) as count").Group("category").Scan(&rows).Error; err != nil {
		return nil, gz.NewErrorMessageWithBase(gz.ErrorNoDatabase, err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Count
	}
	return counts, nil
}

// Populate fills an empty models table with n generated models. It does
// nothing when the table already has rows.
func (ms *Service) Populate(ctx context.Context, tx *gorm.DB, n int, fileServer string, rnd *rand.Rand) *gz.ErrMsg {
	var count int64
	if err := QueryForModels(tx).Count(&count).Error; err != nil {
		return gz.NewErrorMessageWithBase(gz.ErrorNoDatabase, err)
	}
	if count > 0 {
		return nil
	}

	generated := Generate(n, fileServer, rnd, time.Now())
	db := tx.Begin()
	for i := range generated {
		if err := db.Create(&generated[i]).Error; err != nil {
			db.Rollback()
			gz.LoggerFromContext(ctx).Error("Error populating models", err)
			return gz.NewErrorMessageWithBase(gz.ErrorDbSave, err)
		}
	}
	if err := db.Commit().Error; err != nil {
		return gz.NewErrorMessageWithBase(gz.ErrorDbSave, err)
	}
	gz.LoggerFromContext(ctx).Info("Populated ", len(generated), " models")
	clearModelListCache(ctx)
	return nil
}
