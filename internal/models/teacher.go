package models

type Teacher struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:120"`
	Email   string `gorm:"size:120;uniqueIndex"`
	Subject string `gorm:"size:100"`
}
