package model

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User 用户模型

type User struct {
	BaseModel
	PublicID     int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Email        string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"` // bcrypt 哈希，不对外暴露
	Nickname     string     `gorm:"type:varchar(64);not null;default:''" json:"nickname"`
	Status       UserStatus `gorm:"type:varchar(16);not null;default:'active';index:idx_users_status" json:"status"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
