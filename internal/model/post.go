package model

import "time"

// 数据源名称
const (
	SourceTwitter       = "twitter"
	SourceReddit        = "reddit"
	SourceHackerNews    = "hackernews"
	SourceStackOverflow = "stackoverflow"
	SourceGitHub        = "github"
)

// RawPost 采集到的原始帖子，入库后不再修改
type RawPost struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	ExternalID      string    `gorm:"column:external_id;type:varchar(128);uniqueIndex;not null;comment:来源ID（带来源前缀，全局唯一）"`
	Source          string    `gorm:"column:source;type:varchar(32);index;not null;comment:数据源"`
	Text            string    `gorm:"column:text;type:text;not null;comment:正文"`
	URL             string    `gorm:"column:url;type:varchar(512);comment:原帖地址"`
	PostedAt        time.Time `gorm:"column:posted_at;not null;comment:发帖时间"`
	AuthorHandle    *string   `gorm:"column:author_handle;type:varchar(128);comment:作者"`
	AuthorWeight    int       `gorm:"column:author_weight;default:0;comment:作者粉丝数/声望"`
	Likes           int       `gorm:"column:likes;default:0;comment:点赞类计数"`
	Retweets        int       `gorm:"column:retweets;default:0;comment:转发类计数"`
	Replies         int       `gorm:"column:replies;default:0;comment:回复类计数"`
	EngagementScore int       `gorm:"column:engagement_score;index;default:0;comment:likes + 2*retweets"`
	CollectedAt     time.Time `gorm:"column:collected_at;autoCreateTime;comment:采集时间"`
}

func (RawPost) TableName() string { return "raw_posts" }

// ComputeEngagementScore likes + 2*retweets
func ComputeEngagementScore(likes, retweets int) int {
	return likes + 2*retweets
}
