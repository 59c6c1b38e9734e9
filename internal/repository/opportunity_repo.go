package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"PainRadar/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TopFilter 机会列表筛选条件
type TopFilter struct {
	Limit     int    // 返回条数上限
	MinScore  int    // 最低分（含）
	SinceDays int    // 创建时间窗口（天，含边界），<=0 不限
	Source    string // 可选：数据源
}

// OpportunityStats 机会统计
type OpportunityStats struct {
	Total     int64            `json:"total"`  // 窗口内全部机会，不按最低分过滤
	High      int64            `json:"high"`   // score >= highValue
	Medium    int64            `json:"medium"` // 50 <= score < highValue
	Low       int64            `json:"low"`    // minScore <= score < 50
	AvgScore  float64          `json:"avg_score"`
	BySource  map[string]int64 `json:"by_source"`
	SinceDays int              `json:"since_days"`
}

// OpportunityRepository 机会聚合仓储
type OpportunityRepository interface {
	// CreateOpportunity 总是新建一行，tweet_count=0，first/last seen 为当前时间
	CreateOpportunity(ctx context.Context, opp *model.Opportunity) (uint64, error)
	// Link 幂等关联帖子，并在同一事务内按关联表重算 tweet_count，返回最新计数
	Link(ctx context.Context, opportunityID, postID uint64) (int, error)
	TopOpportunities(ctx context.Context, filter TopFilter) ([]*model.Opportunity, error)
	// LinkedPosts 关联帖子，按互动分倒序
	LinkedPosts(ctx context.Context, opportunityID uint64) ([]*model.RawPost, error)
	// FirstLinkedPost 最早关联的帖子（按关联顺序）
	FirstLinkedPost(ctx context.Context, opportunityID uint64) (*model.RawPost, error)
	// GetOpportunity idOrUUID 为数字时按主键，否则按 opportunity_uuid
	GetOpportunity(ctx context.Context, idOrUUID string) (*model.Opportunity, error)
	// UpdateScore 仅更新 score 列
	UpdateScore(ctx context.Context, id uint64, score int) error
	// EachOpportunity 按 id 顺序分批遍历
	EachOpportunity(ctx context.Context, batchSize int, fn func(batch []*model.Opportunity) error) error
	Stats(ctx context.Context, minScore, highValue, sinceDays int) (*OpportunityStats, error)
}

type opportunityRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *opportunityRepository) CreateOpportunity(ctx context.Context, opp *model.Opportunity) (uint64, error) {
	now := r.now()
	opp.ID = 0
	if opp.OpportunityUUID == "" {
		opp.OpportunityUUID = uuid.NewString() // 生成全局唯一ID
	}
	opp.TweetCount = 0
	opp.Score = clampScore(opp.Score)
	opp.FirstSeen = now
	opp.LastSeen = now
	if err := r.db.WithContext(ctx).Create(opp).Error; err != nil {
		return 0, wrapErr("创建机会失败", err)
	}
	return opp.ID, nil
}

func (r *opportunityRepository) Link(ctx context.Context, opportunityID, postID uint64) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		link := &model.OpportunityPost{OpportunityID: opportunityID, PostID: postID}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "opportunity_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(link).Error; err != nil {
			return err
		}

		// 计数永远以关联表为准，不做自增
		if err := tx.Model(&model.OpportunityPost{}).
			Where("opportunity_id = ?", opportunityID).Count(&count).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Opportunity{}).Where("id = ?", opportunityID).
			UpdateColumns(map[string]interface{}{
				"tweet_count": count,
				"last_seen":   r.now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, wrapErr("关联帖子失败", err)
	}
	return int(count), nil
}

func (r *opportunityRepository) TopOpportunities(ctx context.Context, filter TopFilter) ([]*model.Opportunity, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	db := r.db.WithContext(ctx).Model(&model.Opportunity{}).Where("score >= ?", filter.MinScore)
	if filter.SinceDays > 0 {
		db = db.Where("created_at >= ?", r.now().Add(-time.Duration(filter.SinceDays)*24*time.Hour))
	}
	if filter.Source != "" {
		db = db.Where("source = ?", filter.Source)
	}

	var list []*model.Opportunity
	if err := db.Order("score DESC").Order("tweet_count DESC").Order("id ASC").
		Limit(limit).Find(&list).Error; err != nil {
		return nil, wrapErr("查询机会列表失败", err)
	}
	return list, nil
}

func (r *opportunityRepository) LinkedPosts(ctx context.Context, opportunityID uint64) ([]*model.RawPost, error) {
	var posts []*model.RawPost
	if err := r.db.WithContext(ctx).Model(&model.RawPost{}).
		Joins("JOIN opportunity_posts ON opportunity_posts.post_id = raw_posts.id").
		Where("opportunity_posts.opportunity_id = ?", opportunityID).
		Order("raw_posts.engagement_score DESC").Order("raw_posts.id ASC").
		Find(&posts).Error; err != nil {
		return nil, wrapErr("查询关联帖子失败", err)
	}
	return posts, nil
}

func (r *opportunityRepository) FirstLinkedPost(ctx context.Context, opportunityID uint64) (*model.RawPost, error) {
	var post model.RawPost
	if err := r.db.WithContext(ctx).Model(&model.RawPost{}).
		Joins("JOIN opportunity_posts ON opportunity_posts.post_id = raw_posts.id").
		Where("opportunity_posts.opportunity_id = ?", opportunityID).
		Order("opportunity_posts.id ASC").
		Take(&post).Error; err != nil {
		return nil, wrapErr("查询首个关联帖子失败", err)
	}
	return &post, nil
}

func (r *opportunityRepository) GetOpportunity(ctx context.Context, idOrUUID string) (*model.Opportunity, error) {
	idOrUUID = strings.TrimSpace(idOrUUID)
	db := r.db.WithContext(ctx)
	if id, err := strconv.ParseUint(idOrUUID, 10, 64); err == nil {
		db = db.Where("id = ?", id)
	} else {
		db = db.Where("opportunity_uuid = ?", idOrUUID)
	}
	var opp model.Opportunity
	if err := db.First(&opp).Error; err != nil {
		return nil, wrapErr("查询机会失败", err)
	}
	return &opp, nil
}

func (r *opportunityRepository) UpdateScore(ctx context.Context, id uint64, score int) error {
	res := r.db.WithContext(ctx).Model(&model.Opportunity{}).Where("id = ?", id).
		UpdateColumn("score", clampScore(score))
	if res.Error != nil {
		return wrapErr("更新机会分失败", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr("更新机会分失败", ErrNotFound)
	}
	return nil
}

func (r *opportunityRepository) EachOpportunity(ctx context.Context, batchSize int, fn func(batch []*model.Opportunity) error) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	var (
		batch []*model.Opportunity
		fnErr error
	)
	// FindInBatches 自带主键排序
	res := r.db.WithContext(ctx).Model(&model.Opportunity{}).
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			fnErr = fn(batch)
			return fnErr
		})
	if fnErr != nil {
		return fnErr
	}
	if res.Error != nil {
		return wrapErr("遍历机会失败", res.Error)
	}
	return nil
}

func (r *opportunityRepository) Stats(ctx context.Context, minScore, highValue, sinceDays int) (*OpportunityStats, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&model.Opportunity{})
		if sinceDays > 0 {
			db = db.Where("created_at >= ?", r.now().Add(-time.Duration(sinceDays)*24*time.Hour))
		}
		return db
	}

	stats := &OpportunityStats{BySource: map[string]int64{}, SinceDays: sinceDays}
	var agg struct {
		Total    int64
		High     int64
		Medium   int64
		Low      int64
		AvgScore float64
	}
	if err := base().Select(
		"COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN score >= ? THEN 1 ELSE 0 END), 0) AS high, "+
			"COALESCE(SUM(CASE WHEN score >= 50 AND score < ? THEN 1 ELSE 0 END), 0) AS medium, "+
			"COALESCE(SUM(CASE WHEN score >= ? AND score < 50 THEN 1 ELSE 0 END), 0) AS low, "+
			"COALESCE(AVG(score), 0) AS avg_score",
		highValue, highValue, minScore,
	).Scan(&agg).Error; err != nil {
		return nil, wrapErr("统计机会失败", err)
	}
	stats.Total = agg.Total
	stats.High = agg.High
	stats.Medium = agg.Medium
	stats.Low = agg.Low
	stats.AvgScore = float64(int(agg.AvgScore*10+0.5)) / 10

	var rows []struct {
		Source string
		Count  int64
	}
	if err := base().Select("source, COUNT(*) AS count").Group("source").Scan(&rows).Error; err != nil {
		return nil, wrapErr("按来源统计失败", err)
	}
	for _, row := range rows {
		stats.BySource[row.Source] = row.Count
	}
	return stats, nil
}

func clampScore(score int) int {
	return max(0, min(100, score))
}
