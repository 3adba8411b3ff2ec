package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirtySchema 上次迁移中途失败，需人工修复后再启动
var ErrDirtySchema = errors.New("数据库迁移处于 dirty 状态")

func newSource() (source.Driver, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("加载迁移文件失败: %w", err)
	}
	return src, nil
}

// LatestVersion 返回嵌入迁移文件中的最高版本号
func LatestVersion() (uint, error) {
	src, err := newSource()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	v, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("读取首个迁移版本失败: %w", err)
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, fmt.Errorf("读取迁移版本失败: %w", err)
		}
		v = next
	}
}

// currentVersion 未执行过任何迁移时返回 0
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// RunMigrations 应用所有未执行的迁移
// 数据库处于 dirty 状态时拒绝启动，不在半完成的结构上继续执行
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	latest, err := LatestVersion()
	if err != nil {
		return err
	}

	src, err := newSource()
	if err != nil {
		return err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	before, dirty, err := currentVersion(m)
	if err != nil {
		return fmt.Errorf("读取数据库迁移版本失败: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w: version=%d", ErrDirtySchema, before)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	after, _, err := currentVersion(m)
	if err != nil {
		return fmt.Errorf("读取数据库迁移版本失败: %w", err)
	}
	switch {
	case after > latest:
		// 数据库由更新的版本迁移过，本程序不认识其中的结构
		logger.Warn("数据库结构版本高于当前程序", zap.Uint("db_version", after), zap.Uint("latest", latest))
	case after == before:
		logger.Info("数据库结构已是最新", zap.Uint("version", after))
	default:
		logger.Info("数据库迁移完成", zap.Uint("from", before), zap.Uint("to", after))
	}
	return nil
}
