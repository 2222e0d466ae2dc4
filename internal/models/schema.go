// Package models lists the row models of every table.
package models

import (
	"github.com/light-bringer/procat-orm/internal/models/m_post"
	"github.com/light-bringer/procat-orm/internal/models/m_product"
	"github.com/light-bringer/procat-orm/internal/models/m_sequence"
)

// GormModels returns the row structs gorm migrates.
func GormModels() []any {
	return []any{&m_product.Data{}, &m_post.Data{}}
}

// SpannerDDL returns the CREATE TABLE statement of every Spanner table,
// including the identity counters.
func SpannerDDL() []string {
	return []string{m_sequence.SpannerDDL, m_product.SpannerDDL, m_post.SpannerDDL}
}

// TableNames returns every entity table name.
func TableNames() []string {
	return []string{m_product.TableName, m_post.TableName}
}

// SpannerTableNames returns every Spanner table name.
func SpannerTableNames() []string {
	return append([]string{m_sequence.TableName}, TableNames()...)
}
