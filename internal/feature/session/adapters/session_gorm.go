// Package adapters はsessionフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	"yoga_backend/internal/feature/session/domain/entity"
	"yoga_backend/internal/feature/session/usecase"
)

// participationTable はセッション参加の中間テーブル名です。
const participationTable = "participate"

// sessionRepository はSessionRepositoryのGORM実装です。
type sessionRepository struct {
	db *gorm.DB
}

var _ usecase.SessionRepository = (*sessionRepository)(nil)

// NewSessionRepository は新しいsessionRepositoryを生成します。
func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// FindAll はすべてのセッションを参加者付きでID順に取得します。
func (r *sessionRepository) FindAll(ctx context.Context) ([]entity.Session, error) {
	var out []entity.Session
	err := r.db.WithContext(ctx).
		Preload("Users", orderByID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID はIDでセッションを参加者付きで取得します。
// 存在しない場合はusecase.ErrSessionNotFoundを返します。
func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*entity.Session, error) {
	var s entity.Session
	if err := r.db.WithContext(ctx).Preload("Users", orderByID).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create はセッションを追加します。関連（講師・参加者）の行は書き込みません。
func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Omit("Users", "Teacher").Create(s).Error
}

// Update はセッションのスカラー項目と講師IDを更新します。参加者は変更しません。
func (r *sessionRepository) Update(ctx context.Context, s *entity.Session) error {
	res := r.db.WithContext(ctx).
		Model(s).
		Select("Name", "Date", "Description", "TeacherID", "UpdatedAt").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// Delete はセッションと参加行を削除します。
func (r *sessionRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("Users").Delete(&entity.Session{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// AddParticipant は参加行を追加します。既に存在する場合は何もしません。
// Association("Users").Append はユーザー行のupsertも行うため、中間テーブルへ直接書き込みます。
func (r *sessionRepository) AddParticipant(ctx context.Context, sessionID, userID uint) error {
	return r.db.WithContext(ctx).
		Table(participationTable).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]any{"session_id": sessionID, "user_id": userID}).Error
}

// RemoveParticipant は参加行を削除します。ユーザー行は残ります。
func (r *sessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Session{ID: sessionID}).
		Association("Users").
		Delete(&authentity.User{ID: userID})
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
