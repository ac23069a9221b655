// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"yoga_backend/internal/feature/auth/domain/entity"
)

// dummyPasswordHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail は指定されたメールアドレスのユーザーが存在するかを返します。
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を抽象化します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer は署名済みトークンの発行を抽象化します。
type TokenIssuer interface {
	// Issue はsubject(メールアドレス)を持つトークンを発行します。
	Issue(subject string) (string, error)
}

// LoginResult はログイン成功時に返される情報です。
// Adminはトークンではなくストレージから毎回読み込まれます。
type LoginResult struct {
	Token     string
	UserID    uint
	Email     string
	FirstName string
	LastName  string
	Admin     bool
}

// RegisterInput は新規登録に必要な値です。
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 管理者フラグは常にfalseで保存され、クライアントからは指定できません。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) error {
	exists, err := u.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return ErrEmailTaken
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
		Admin:     false,
	}
	// 存在確認と挿入の間に競合した場合もリポジトリがErrEmailTakenを返す
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にトークンとプロフィールを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		// 結果は使わないが、存在するユーザーと同じだけ時間をかける
		_, _ = u.hasher.Verify(password, dummyPasswordHash)
		return nil, ErrAuthenticationFailed
	}

	ok, err := u.hasher.Verify(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailed
	}

	token, err := u.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
	}, nil
}
