package m_post

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// Data represents a row of the tbl_post table.
type Data struct {
	ID         string    `gorm:"column:post_id;primaryKey;size:36"`
	Title      string    `gorm:"column:title;size:100;not null" validate:"required,max=100"`
	Content    string    `gorm:"column:content;type:text"`
	Writer     string    `gorm:"column:writer;size:30;not null" validate:"required,max=30"`
	CreateDate time.Time `gorm:"column:create_date;autoCreateTime;<-:create;not null"`
	UpdateDate time.Time `gorm:"column:update_date;autoUpdateTime;not null"`
}

// NewID returns a fresh post identity. UUIDv7 embeds a millisecond
// timestamp, so identities are assigned in increasing order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (Data) TableName() string {
	return TableName
}

func (d *Data) BeforeSave(_ *gorm.DB) error {
	return crud.CheckConstraints(d)
}

// BeforeCreate assigns the identity of a new post.
func (d *Data) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}

func (d *Data) PrimaryKey() string { return d.ID }

func (d *Data) SetPrimaryKey(id string) { d.ID = id }

func (d *Data) Stamp(now time.Time, creating bool) {
	if creating {
		d.CreateDate = now
	}
	d.UpdateDate = now
}

func (d *Data) CopyColumns(src *Data, columns []string) {
	for _, col := range columns {
		switch col {
		case Title:
			d.Title = src.Title
		case Content:
			d.Content = src.Content
		case Writer:
			d.Writer = src.Writer
		}
	}
}
