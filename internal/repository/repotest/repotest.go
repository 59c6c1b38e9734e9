// Package repotest 为测试提供独立的内存 SQLite 数据库
package repotest

import (
	"io"
	"testing"

	"PainRadar/internal/config"
	"PainRadar/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Logger 丢弃输出的日志器
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewDB 每个测试一个独立的共享缓存内存库，测试结束时关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := repository.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, Logger())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
