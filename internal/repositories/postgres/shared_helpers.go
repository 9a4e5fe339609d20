package postgres

import (
	"gorm.io/gorm"
)

// applyPaginationAndSort applies pagination and sorting with a sort-column
// whitelist so user input never reaches the ORDER BY clause directly.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at":       true,
		"updated_at":       true,
		"id":               true,
		"application_fees": true,
		"post_date":        true,
		"applied_at":       true,
		"rating_point":     true,
		"paid_at":          true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
