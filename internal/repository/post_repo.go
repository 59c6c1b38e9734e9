package repository

import (
	"context"

	"PainRadar/internal/model"
	"PainRadar/internal/pain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository 原始帖子与痛点分析仓储
type PostRepository interface {
	// IngestPost 按 external_id 幂等写入，已存在时返回已有ID且 created=false
	IngestPost(ctx context.Context, post *model.RawPost) (id uint64, created bool, err error)
	// RecordAnalysis 写入或覆盖帖子的痛点分析（每个帖子仅一条）
	RecordAnalysis(ctx context.Context, postID uint64, analysis pain.Analysis) error
	// IngestWithAnalysis 帖子与分析在同一事务内写入
	IngestWithAnalysis(ctx context.Context, post *model.RawPost, analysis pain.Analysis) (id uint64, created bool, err error)
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
	GetPost(ctx context.Context, id uint64) (*model.RawPost, error)
	AnalysisByPost(ctx context.Context, postID uint64) (*model.PainAnalysis, error)
	AnalysesByPosts(ctx context.Context, postIDs []uint64) (map[uint64]*model.PainAnalysis, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) IngestPost(ctx context.Context, post *model.RawPost) (uint64, bool, error) {
	id, created, err := ingestPost(r.db.WithContext(ctx), post)
	return id, created, wrapErr("写入帖子失败", err)
}

func ingestPost(db *gorm.DB, post *model.RawPost) (uint64, bool, error) {
	post.ID = 0
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(post)
	if res.Error != nil && !isUniqueViolation(res.Error) {
		return 0, false, res.Error
	}
	if res.Error == nil && res.RowsAffected > 0 && post.ID != 0 {
		return post.ID, true, nil
	}

	// 已存在（或并发写入冲突）：按 external_id 取已有ID
	var existing model.RawPost
	if err := db.Select("id").Where("external_id = ?", post.ExternalID).First(&existing).Error; err != nil {
		return 0, false, err
	}
	post.ID = existing.ID
	return existing.ID, false, nil
}

func (r *postRepository) RecordAnalysis(ctx context.Context, postID uint64, analysis pain.Analysis) error {
	return wrapErr("写入痛点分析失败", recordAnalysis(r.db.WithContext(ctx), postID, analysis))
}

func recordAnalysis(db *gorm.DB, postID uint64, analysis pain.Analysis) error {
	row := model.NewPainAnalysis(postID, analysis)
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"frustration_score", "budget_signal_score", "pain_keywords", "products_mentioned",
			"dollar_amounts", "has_solution_seeking", "has_time_investment", "analyzed_at",
		}),
	}).Create(row).Error
}

func (r *postRepository) IngestWithAnalysis(ctx context.Context, post *model.RawPost, analysis pain.Analysis) (uint64, bool, error) {
	var (
		id      uint64
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		id, created, err = ingestPost(tx, post)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		return recordAnalysis(tx, id, analysis)
	})
	if err != nil {
		return 0, false, wrapErr("写入帖子及分析失败", err)
	}
	return id, created, nil
}

func (r *postRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.RawPost{}).
		Where("external_id = ?", externalID).Count(&count).Error; err != nil {
		return false, wrapErr("查询帖子失败", err)
	}
	return count > 0, nil
}

func (r *postRepository) GetPost(ctx context.Context, id uint64) (*model.RawPost, error) {
	var post model.RawPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, wrapErr("查询帖子失败", err)
	}
	return &post, nil
}

func (r *postRepository) AnalysisByPost(ctx context.Context, postID uint64) (*model.PainAnalysis, error) {
	var pa model.PainAnalysis
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&pa).Error; err != nil {
		return nil, wrapErr("查询痛点分析失败", err)
	}
	return &pa, nil
}

func (r *postRepository) AnalysesByPosts(ctx context.Context, postIDs []uint64) (map[uint64]*model.PainAnalysis, error) {
	out := make(map[uint64]*model.PainAnalysis, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var list []*model.PainAnalysis
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&list).Error; err != nil {
		return nil, wrapErr("批量查询痛点分析失败", err)
	}
	for _, pa := range list {
		out[pa.PostID] = pa
	}
	return out, nil
}
