package model

type Discussion struct {
	UUIDBase
	AuthorID uint    `gorm:"index" json:"authorId"`
	Author   User    `gorm:"foreignKey:AuthorID" json:"author"`
	Question string  `gorm:"type:text;not null" json:"question"`
	Views    int     `gorm:"default:0" json:"views"`
	Replies  []Reply `gorm:"foreignKey:DiscussionID" json:"replies"`
}

func (Discussion) TableName() string {
	return "discussions"
}

type Reply struct {
	UUIDBase
	DiscussionID string   `gorm:"index;type:varchar(36)" json:"discussionId"`
	ResponderID  uint     `gorm:"index" json:"responderId"`
	Responder    User     `gorm:"foreignKey:ResponderID" json:"responder"`
	// 回复时从令牌声明快照角色，前端据此渲染教师/管理员标识
	Role UserRole `gorm:"size:20" json:"role"`
	Text string   `gorm:"type:text;not null" json:"text"`
}

func (Reply) TableName() string {
	return "replies"
}
