package models

// FishSpecies describes one catchable species. Rarity runs 1-5; species
// with rarity 4 or higher count as rare finds.
type FishSpecies struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:64;not null" json:"name"`
	Description string `gorm:"size:255;not null" json:"description"`
	Rarity      int    `gorm:"not null" json:"rarity"`
	MinSize     int    `gorm:"not null" json:"minSize"`
	MaxSize     int    `gorm:"not null" json:"maxSize"`
	GaugeType   string `gorm:"size:32;not null" json:"gaugeType"`
	Color       string `gorm:"size:16;not null" json:"color"`
}

// Island is a fixed landmark in the game world. The hub island is where
// new players spawn.
type Island struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"size:64;not null" json:"name"`
	PositionX float64 `gorm:"not null" json:"positionX"`
	PositionY float64 `gorm:"not null" json:"positionY"`
	Size      int     `gorm:"not null" json:"size"`
	IsHub     bool    `gorm:"default:false;not null" json:"isHub"`
}
