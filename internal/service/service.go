// Package service holds the core operations. Every operation takes the acting
// principal explicitly and returns apperr-classified errors.
package service

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/model"
)

// Service runs core operations against the entity store.
type Service struct {
	db     *sql.DB
	hasher *auth.Hasher
	mode   string
	log    *zap.Logger
}

// New returns a Service for the given tenancy mode.
func New(db *sql.DB, hasher *auth.Hasher, mode string, log *zap.Logger) *Service {
	if mode == "" {
		mode = model.TenancyMulti
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, hasher: hasher, mode: mode, log: log}
}

// Mode returns the tenancy mode the service was built for.
func (s *Service) Mode() string { return s.mode }

func (s *Service) single() bool { return s.mode == model.TenancySingle }
