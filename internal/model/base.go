package model

import "time"

// BaseModel handles the generated integer identity and audit timestamps
// shared by the persisted entities.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
