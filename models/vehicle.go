package models

// Vehicle names are unique per brand, not globally.
type Vehicle struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;index;uniqueIndex:idx_vehicles_brand_name,priority:2" json:"name"`
	Year    int    `gorm:"not null" json:"year"`
	BrandID uint   `gorm:"not null;uniqueIndex:idx_vehicles_brand_name,priority:1" json:"brand_id"`
}
