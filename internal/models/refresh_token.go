package models

import (
	"time"
)

// RefreshToken is a stored, rotatable JWT refresh token.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Revoke marks the token unusable and clamps its expiry to now.
func (rt *RefreshToken) Revoke() {
	rt.IsRevoked = true
	rt.ExpiresAt = time.Now()
}
