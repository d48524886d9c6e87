package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:180;not null"`
	Category    string    `gorm:"size:100;index"`
	PriceUSD    float64   `gorm:"type:decimal(12,2);not null"`
	ImageURL    string    `gorm:"size:500"`
	Description string    `gorm:"type:text"`
	Sizes       []string  `gorm:"type:jsonb;serializer:json"`
	Rating      float64   `gorm:"type:decimal(3,1);default:0"`
	Reviews     int       `gorm:"type:int;default:0"`
	Premium     bool      `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductFilter struct {
	Query    string
	Category string
	Sort     string
	Page     int
	PageSize int
}
