package m_product

import (
	"time"

	"gorm.io/gorm"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// Data represents a row of the tbl_product table.
//
// create_date is written on insert only; update_date is refreshed on every
// write. Both are stamped by the engine, never by the caller.
type Data struct {
	ID         int64     `gorm:"column:prod_id;primaryKey;autoIncrement"`
	Name       string    `gorm:"column:prod_name;size:30;not null" validate:"required,max=30"`
	Price      int       `gorm:"column:price;not null"`
	Category   *string   `gorm:"column:category;size:20" validate:"omitempty,oneof=FOOD FASHION ELECTRONIC"`
	CreateDate time.Time `gorm:"column:create_date;autoCreateTime;<-:create;not null"`
	UpdateDate time.Time `gorm:"column:update_date;autoUpdateTime;not null"`
}

// TableName binds Data to tbl_product for gorm.
func (Data) TableName() string {
	return TableName
}

// BeforeSave rejects rows that break the column constraints before gorm
// issues the INSERT or UPDATE.
func (d *Data) BeforeSave(_ *gorm.DB) error {
	return crud.CheckConstraints(d)
}

func (d *Data) PrimaryKey() int64 { return d.ID }

func (d *Data) SetPrimaryKey(id int64) { d.ID = id }

// Stamp sets update_date, and create_date when the row is being created.
func (d *Data) Stamp(now time.Time, creating bool) {
	if creating {
		d.CreateDate = now
	}
	d.UpdateDate = now
}

// CopyColumns copies the named updatable columns from src.
func (d *Data) CopyColumns(src *Data, columns []string) {
	for _, col := range columns {
		switch col {
		case ProdName:
			d.Name = src.Name
		case Price:
			d.Price = src.Price
		case Category:
			d.Category = src.Category
		}
	}
}
