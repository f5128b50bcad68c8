package repository

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const ( // Local Database tables for client side application

	createUsersTable = `
		-- Just to store the current logged-in user
		CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            avatar_url TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL -- DATETIME works TEXT, INTEGER will not be mapped to time.Time
		);
	`
	createContactTable = `
		-- Cached profiles of peers we have exchanged messages with
		CREATE TABLE IF NOT EXISTS contact (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            avatar_url TEXT NOT NULL DEFAULT ''
		);
	`
	createConversationTable = `
		CREATE TABLE IF NOT EXISTS conversation (
            id TEXT PRIMARY KEY, -- Simulating UUID
            peer_id TEXT NOT NULL,
            peer_name TEXT NOT NULL,
            peer_avatar_url TEXT NOT NULL DEFAULT '',
            unread_count INTEGER NOT NULL DEFAULT 0,
            last_message_sender_id TEXT NOT NULL DEFAULT ''
		);
	`
	createMessageTable = `
		CREATE TABLE IF NOT EXISTS message (
            id TEXT PRIMARY KEY,
            conversation_id TEXT NOT NULL,
            sender_id TEXT NOT NULL,
            body TEXT NOT NULL,
            sent_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_message_conversation_sent_at ON message(conversation_id, sent_at);
	`
)

const dbFileName = "Mingle.db"

type DB struct {
	*sqlx.DB
}

func OpenDB(filesDir string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "sqlite3", filepath.Join(filesDir, dbFileName))
	if err == nil {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(15 * time.Minute)
	}
	if err != nil && db != nil {
		db.Close()
	}
	return &DB{db}, err
}

func DeleteDBFile(filesDir string) error {
	return os.Remove(filepath.Join(filesDir, dbFileName))
}

func (db *DB) RunMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, stmt := range []string{
		createUsersTable,
		createContactTable,
		createConversationTable,
		createMessageTable,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
