package entity

import (
	"time"
)

// Alert is one fired anomaly notification, journaled for later review.
type Alert struct {
	Id          int64  `gorm:"primaryKey;autoIncrement"`
	BaseSymbol  string `gorm:"index"`
	QuoteSymbol string `gorm:"index"`
	Kinds       string `gorm:"index"` // comma separated signal kinds

	Price          string
	Volume         string
	VolumeZScore   float64
	PricePctChange float64
	PriceDirection int

	CandleClosedAt time.Time `gorm:"index"`
	CreatedAt      time.Time `gorm:"index"`
}
