package handlers

import (
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/connector/internal/domain"
	"github.com/MrSnakeDoc/connector/internal/httpserver/deps"
	"github.com/MrSnakeDoc/connector/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload asks the bootstrap reloader to re-read its file. The reload runs in
// the background; a pending trigger answers 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, d.Logger, fmt.Errorf("no bootstrap file configured: %w", domain.ErrInvalidConfiguration))
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual bootstrap reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{Triggered: true, Message: "reload triggered"})
		default:
			d.Logger.Warn("bootstrap reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Message: "reload already in progress, please wait"})
		}
	}
}
