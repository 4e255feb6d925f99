package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"oabplanner/backend/config"
	"oabplanner/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNotFound = errors.New("record not found")

// InitDB opens the configured database and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg.DBType, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// newGormLogger reports slow queries and errors. Lookups that find nothing
// are ordinary here and stay quiet.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects to postgres or, for any other type, sqlite.
func Open(dbType, dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         newGormLogger(os.Stdout),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if dbType == "postgres" {
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dbType == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// sqlite serialises writers anyway, and an in-memory database only
		// lives as long as its single connection.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.UserProfile{},
		&models.Question{},
		&models.AnsweredQuestion{},
		&models.Note{},
		&models.ProgressRecord{},
		&models.SaleRecord{},
	)
}

// Store groups the repositories over one connection.
type Store struct {
	DB        *gorm.DB
	Accounts  *AccountRepository
	Profiles  *ProfileRepository
	Questions *QuestionRepository
	Notebook  *NotebookRepository
	Notes     *NoteRepository
	Progress  *ProgressRepository
	Sales     *SaleRepository
}

// Transaction runs fn against a store bound to one database transaction.
// The transaction commits when fn returns nil.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:        db,
		Accounts:  NewAccountRepository(db),
		Profiles:  NewProfileRepository(db),
		Questions: NewQuestionRepository(db),
		Notebook:  NewNotebookRepository(db),
		Notes:     NewNoteRepository(db),
		Progress:  NewProgressRepository(db),
		Sales:     NewSaleRepository(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
