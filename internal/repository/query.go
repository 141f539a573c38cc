package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/collab-projects-api/internal/database"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// orderBy maps a client ordering key such as "-created_at" onto an allowed
// column, returning fallback for anything unknown.
func orderBy(key string, allowed map[string]string, fallback string) string {
	column, ok := allowed[strings.TrimPrefix(key, "-")]
	if !ok {
		return fallback
	}
	if strings.HasPrefix(key, "-") {
		return column + " DESC"
	}
	return column + " ASC"
}

// searchPattern builds a case-insensitive LIKE pattern.
func searchPattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// paginate applies the page window when one was requested.
func paginate(query *gorm.DB, params utils.PaginationParams) *gorm.DB {
	if params.Limit <= 0 {
		return query
	}
	return query.Scopes(database.Paginate(params))
}

func preloadAll(query *gorm.DB, preload []string) *gorm.DB {
	for _, p := range preload {
		query = query.Preload(p)
	}
	return query
}
