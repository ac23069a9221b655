// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yoga_backend/internal/feature/auth/domain/entity"
	"yoga_backend/internal/feature/auth/usecase"
	"yoga_backend/internal/platform/db"
)

// participationTable はセッション参加の中間テーブル名です。
const participationTable = "participate"

// userRepository はユーザー永続化のGORM実装です。
// 本番はPostgreSQL、テストはSQLiteで動作します。
type userRepository struct {
	db *gorm.DB
}

// userRepositoryがUserRepositoryとUserFinderを実装していることをコンパイル時に検証します。
var (
	_ usecase.UserRepository = (*userRepository)(nil)
	_ usecase.UserFinder     = (*userRepository)(nil)
)

// NewUserRepository は指定されたgorm.DB接続でuserRepositoryの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailTakenを返します。
func (r *userRepository) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ExistsByEmail はメールアドレスが登録済みかどうかを返します。
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete はユーザーとそのセッション参加を1トランザクションで削除します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Migrator().HasTable(participationTable) {
			if err := tx.Exec("DELETE FROM "+participationTable+" WHERE user_id = ?", id).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&entity.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}
