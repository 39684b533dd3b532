package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/TicketXOS/CRM-sub001/internal/database"
	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
)

// BackupHandler exposes admin-only file-copy backup and restore for the
// sqlite driver.
type BackupHandler struct {
	db        *database.DB
	backupDir string
}

func NewBackupHandler(db *database.DB, backupDir string) *BackupHandler {
	return &BackupHandler{db: db, backupDir: backupDir}
}

func (h *BackupHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Post("/restore", h.Restore)

	return r
}

// POST /admin/backup
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	path, err := h.db.Backup(h.backupDir)
	if err != nil {
		log.Error().Err(err).Msg("backup failed")
		writeError(w, err)
		return
	}

	log.Info().Str("path", path).Msg("database backup created")
	writeSuccess(w, map[string]string{"path": path})
}

// POST /admin/backup/restore
//
// Restore closes the database connection; the process must be restarted
// afterwards, which the supervisor is expected to handle.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Path == "" {
		writeError(w, apperrors.MissingRequired("path"))
		return
	}

	if err := h.db.Restore(req.Path); err != nil {
		log.Error().Err(err).Msg("restore failed")
		writeError(w, err)
		return
	}

	log.Info().Str("path", req.Path).Msg("database restored, restart required")
	writeMessage(w, "Database restored; restart the service to reconnect")
}
