package models

type Brand struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null;uniqueIndex" json:"name"`
	Vehicles []Vehicle `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"-"`
}
