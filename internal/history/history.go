// Package history persists executed command lines and serves the prefix
// queries the completion façade uses to surface previously run commands.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the sqlite-backed command history.
type Store struct {
	db *gorm.DB
}

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index;index:idx_dir_created,priority:2"`

	Command   string `gorm:"index"`
	Directory string `gorm:"index:idx_dir_created,priority:1"`
	ExitCode  sql.NullInt32
}

// Open creates or opens the history database at path. The PRAGMA settings
// keep the file usable over network filesystems: a busy timeout for
// locking latency, NORMAL synchronous mode, a generous page cache and
// in-memory temp storage.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(1)&_pragma=cache_size(-20000)&_pragma=temp_store(2)", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializes writes anyway; one connection avoids lock churn.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores one executed command line.
func (s *Store) Record(command, directory string, exitCode int) error {
	entry := Entry{
		Command:   command,
		Directory: directory,
		ExitCode:  sql.NullInt32{Int32: int32(exitCode), Valid: true},
	}
	return s.db.Create(&entry).Error
}

// RecentCommands returns up to limit distinct command lines starting with
// prefix, most recent first.
func (s *Store) RecentCommands(prefix string, limit int) ([]string, error) {
	var commands []string
	result := s.db.Model(&Entry{}).
		Where(`command LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Group("command").
		Order("max(created_at) desc").
		Limit(limit).
		Pluck("command", &commands)
	if result.Error != nil {
		return nil, result.Error
	}
	return commands, nil
}

// escapeLike neutralizes LIKE wildcards so a prefix containing % or _
// matches literally.
func escapeLike(prefix string) string {
	var b strings.Builder
	for _, c := range prefix {
		switch c {
		case '%', '_', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
