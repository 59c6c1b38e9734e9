package model

import "time"

// Opportunity 聚合后的机会（当前一条合格帖子对应一个机会，不做相似合并）
type Opportunity struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	OpportunityUUID string    `gorm:"column:opportunity_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一ID"`
	Source          string    `gorm:"column:source;type:varchar(32);index;comment:首个帖子的数据源"`
	Title           string    `gorm:"column:title;type:varchar(512);not null;comment:标题"`
	Description     string    `gorm:"column:description;type:text;comment:描述"`
	Score           int       `gorm:"column:score;index;not null;default:0;comment:机会分 0-100"`
	TweetCount      int       `gorm:"column:tweet_count;not null;default:0;comment:关联帖子数"`
	FirstSeen       time.Time `gorm:"column:first_seen;comment:首次出现"`
	LastSeen        time.Time `gorm:"column:last_seen;comment:最近出现"`
	CreatedAt       time.Time `gorm:"column:created_at;index;autoCreateTime;comment:创建时间"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime;comment:更新时间"`
}

func (Opportunity) TableName() string { return "opportunities" }

// OpportunityPost 机会与帖子的多对多关联，自增 ID 即关联顺序
type OpportunityPost struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	OpportunityID uint64    `gorm:"column:opportunity_id;not null;uniqueIndex:uq_opportunity_post"`
	PostID        uint64    `gorm:"column:post_id;not null;index;uniqueIndex:uq_opportunity_post"`
	LinkedAt      time.Time `gorm:"column:linked_at;autoCreateTime"`
}

func (OpportunityPost) TableName() string { return "opportunity_posts" }

// AllModels 迁移顺序
func AllModels() []interface{} {
	return []interface{}{
		&RawPost{},
		&PainAnalysis{},
		&Opportunity{},
		&OpportunityPost{},
	}
}
