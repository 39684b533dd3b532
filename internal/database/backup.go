package database

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
)

// Backup copies the sqlite database file into dir and returns the backup
// path. Only the sqlite driver supports file-copy backups; mysql deployments
// are expected to use their own dump tooling.
func (db *DB) Backup(dir string) (string, error) {
	if db.Driver != "sqlite" {
		return "", apperrors.InvalidState("backup is only supported for the sqlite driver")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("crm-%s.db", time.Now().Format("20060102-150405"))
	dst := filepath.Join(dir, name)

	if err := copyFile(db.DSN, dst); err != nil {
		return "", fmt.Errorf("backup database: %w", err)
	}
	return dst, nil
}

// Restore replaces the sqlite database file with the given backup.
// The caller must reopen the connection afterwards.
func (db *DB) Restore(backupPath string) error {
	if db.Driver != "sqlite" {
		return apperrors.InvalidState("restore is only supported for the sqlite driver")
	}

	if _, err := os.Stat(backupPath); err != nil {
		return apperrors.NotFound("Backup file").WithCause(err)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	if err := copyFile(backupPath, db.DSN); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
