// Package db はPostgreSQLへのGORM接続とマイグレーションを提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	sessionentity "yoga_backend/internal/feature/session/domain/entity"
	teacherentity "yoga_backend/internal/feature/teacher/domain/entity"
	"yoga_backend/internal/platform/config"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// retryInterval は接続リトライの待機時間です。テストで短縮できるよう変数にしています。
var retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開く関数です。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN は設定からPostgreSQLのDSN文字列を生成します。
func BuildDSN(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
}

// PostgresOpener はpgxベースのPostgreSQLドライバで接続します。
// 一意制約違反をgorm.ErrDuplicatedKeyに変換するためTranslateErrorを有効にします。
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry はtimeoutに達するまでretryInterval間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	attempt := 0
	for {
		attempt++
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, oops.Code("DB_CONNECT_FAILED").
				With("attempts", attempt).
				With("timeout", timeout.String()).
				Wrap(err)
		}
		slog.Warn("DB connect failed, retrying", "attempt", attempt, "error", err)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってPostgreSQLに接続し、RunMigrationsが有効ならスキーマを移行します。
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "host", cfg.Host, "database", cfg.Name)

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate はusers, teachers, sessionsと参加テーブル(participate)を作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&teacherentity.Teacher{},
		&sessionentity.Session{},
	); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "auto migrate").Wrap(err)
	}
	return nil
}

// IsUniqueViolation はerrが一意制約違反かどうかを判定します。
// TranslateError済みのgorm.ErrDuplicatedKey、PostgreSQLの23505、未変換のSQLiteエラーに対応します。
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
