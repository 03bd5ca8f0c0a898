package models

import "time"

type User struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string       `gorm:"default:New User" json:"name"`
	Email       string       `gorm:"uniqueIndex;not null" json:"email"`
	Password    string       `json:"-"`
	Avatar      string       `json:"avatar"`
	IsVerified  bool         `gorm:"default:false" json:"isVerified"`
	Role        int          `gorm:"default:0" json:"role"`
	Status      int          `gorm:"default:1" json:"status"`
	Attendances []Attendance `gorm:"foreignKey:UserID" json:"attendances,omitempty"`
}
