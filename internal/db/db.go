package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init 初始化数据库连接并执行自动迁移。
// databaseURL 非空时使用 Postgres，否则使用 SQLite 文件 databasePath（为空时回退到 habits.db）。
func Init(databasePath, databaseURL string) error {
	gdb, err := Open(databasePath, databaseURL)
	if err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Open 打开连接并迁移表结构，不修改全局 DB。
func Open(databasePath, databaseURL string) (*gorm.DB, error) {
	config := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var dialector gorm.Dialector
	if dsn := strings.TrimSpace(databaseURL); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		path := strings.TrimSpace(databasePath)
		if path == "" {
			path = "habits.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(path)
	}

	gdb, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate 为核心模型创建表
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&DailyEntry{},
		&NotificationLog{},
		&SystemSetting{},
	)
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
