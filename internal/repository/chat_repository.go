package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.ChatConversation, error)
	Save(ctx context.Context, conversation *models.ChatConversation) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// GetByUserID returns nil without error when the user has no conversation yet.
func (r *chatRepository) GetByUserID(ctx context.Context, userID uint) (*models.ChatConversation, error) {
	var conversation models.ChatConversation
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *chatRepository) Save(ctx context.Context, conversation *models.ChatConversation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"messages", "updated_at"}),
	}).Create(conversation).Error
}

func (r *chatRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ChatConversation{}).Error
}
