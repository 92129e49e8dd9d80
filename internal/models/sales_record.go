package models

import "time"

// SalesRecord is one day of trading. The date is the natural key: importing
// the same day twice replaces the earlier record and its children.
type SalesRecord struct {
	ID   uint      `gorm:"primaryKey"`
	Date time.Time `gorm:"uniqueIndex;not null"` // day granularity, midnight local

	TotalSales float64 `gorm:"not null"`

	// Optional breakdowns stay nullable: a missing line in the source report
	// is not the same as a reported zero.
	HappyHourSales     *float64
	SalesFrom7pmTo10pm *float64
	After10pmSales     *float64
	FoodSales          *float64
	BarSales           *float64
	WineSales          *float64

	Reservations       *int
	Cancellations      *int
	NoShows            *int
	WalkIns            *int
	PhoneCallsAnswered *int
	MissedPhoneCalls   *int
	Purezza            *int

	TotalPax     int     `gorm:"not null"`
	PerHeadSpend float64 `gorm:"not null"`

	MTDSales *float64

	// Free-form sections kept verbatim (JSON).
	Miscellaneous string `gorm:"type:jsonb"`
	Entertainment string `gorm:"type:jsonb"`

	PaymentMethods []SalesPaymentMethod `gorm:"foreignKey:SalesRecordID;constraint:OnDelete:CASCADE"`
	Promotions     []SalesPromotion     `gorm:"foreignKey:SalesRecordID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SalesPaymentMethod struct {
	ID            uint    `gorm:"primaryKey"`
	SalesRecordID uint    `gorm:"index;not null"`
	Method        string  `gorm:"size:50;not null"` // Cash / Visa / MasterCard / Amex / NETS
	Amount        float64 `gorm:"not null"`
}

type SalesPromotion struct {
	ID            uint    `gorm:"primaryKey"`
	SalesRecordID uint    `gorm:"index;not null"`
	Name          string  `gorm:"size:100;not null"`
	Amount        float64 `gorm:"not null"` // 0 for free promotions
	Sets          int     `gorm:"not null"`
}
