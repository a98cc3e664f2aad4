package model

// MaxSignatories 签核人上限
const MaxSignatories = 2

// Profile 员工个人资料，一个用户一条
type Profile struct {
	BaseModel
	UserID      int64       `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName    string      `gorm:"type:varchar(128);not null;default:''" json:"full_name"`
	Position    string      `gorm:"type:varchar(128);not null;default:''" json:"position"`
	Division    string      `gorm:"type:varchar(128);not null;default:''" json:"division"`
	Signature   string      `gorm:"type:text" json:"signature"` // base64 编码的 PNG，空串表示未设置
	Signatories Signatories `gorm:"type:jsonb;serializer:json;default:'[]'" json:"signatories"`
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// Signatories 签核人数组（JSONB），最多两个
type Signatories []Signatory

// Signatory 签核人，ID 只能是 1 或 2，对应打印文档上的两个签名位
type Signatory struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}
