package repository

import "gorm.io/gorm"

// applyPagination 给查询追加分页；page 小于 1 按第一页处理，pageSize 非法时不分页。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
