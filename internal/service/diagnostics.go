package service

import (
	"bitwise74/videogen-api/internal/store"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type Status string

const (
	StatusOK          Status = "ok"
	StatusDegraded    Status = "degraded"
	StatusUnavailable Status = "unavailable"
)

const (
	diagnosticsTimeout = 3 * time.Second
	maxErrorLen        = 80
)

// Report is what GET /test returns. It never carries an error of its own,
// problems are folded into Status and Database instead
type Report struct {
	Backend          string   `json:"backend"`
	Status           Status   `json:"status"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Diagnose inspects s. urlSet tells whether a database URL was configured
func Diagnose(ctx context.Context, s store.Store, urlSet bool) Report {
	r := Report{
		Backend:          "Running",
		Status:           StatusUnavailable,
		Database:         "Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	// database_url stays null until there is a store to report on
	if u, ok := s.(*store.Unavailable); ok || s == nil {
		r.Database = "Available but not initialized"
		if u != nil && u.Reason != nil && !errors.Is(u.Reason, store.ErrNotConfigured) {
			r.Database = "Error: " + truncate(u.Reason.Error())
		}

		return r
	}

	url := "Not Set"
	if urlSet {
		url = "Set"
	}
	r.DatabaseURL = &url

	ctx, cancel := context.WithTimeout(ctx, diagnosticsTimeout)
	defer cancel()

	if err := s.Ping(ctx); err != nil {
		zap.L().Warn("Database ping failed", zap.Error(err))
		r.Database = "Error: " + truncate(err.Error())
		return r
	}

	name := s.Name()
	r.DatabaseName = &name
	r.ConnectionStatus = "Connected"

	names, err := s.Collections(ctx)
	if err != nil {
		zap.L().Warn("Failed to list collections", zap.Error(err))
		r.Status = StatusDegraded
		r.Database = "Connected but Error: " + truncate(err.Error())
		return r
	}

	r.Status = StatusOK
	r.Database = "Connected & Working"
	r.Collections = names

	return r
}

// truncate cuts by runes so multi-byte text stays valid UTF-8
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxErrorLen {
		return s
	}

	return string(r[:maxErrorLen])
}
