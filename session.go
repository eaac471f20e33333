package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"showdoidioma/internal/game"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < minSessionIDLen {
		sessionID = uuid.NewString()
		app.setSessionCookie(c, sessionID, int(app.Config.CookieMaxAge.Seconds()))
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

func (app *App) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, value, maxAge, "/", "", app.Config.IsProduction(), true)
}

// getGameSession retrieves or creates the game session for a session ID.
func (app *App) getGameSession(sessionID string) *gameSession {
	now := time.Now()
	app.SessionMutex.RLock()
	gs, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		gs.touch(now)
		return gs
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if gs, exists := app.Sessions[sessionID]; exists {
		gs.touch(now)
		return gs
	}
	gs = app.newGameSession(sessionID)
	gs.touch(now)
	app.Sessions[sessionID] = gs
	app.Logger.Debug().Str("session", sessionID).Int("sessions", len(app.Sessions)).Msg("game session created")
	return gs
}

func (app *App) newGameSession(sessionID string) *gameSession {
	effects := &effectQueue{}
	opts := app.ControllerOptions
	opts.Effects = effects
	logger := app.Logger.With().Str("session", sessionID).Logger()
	opts.Logger = &logger
	return &gameSession{
		ID:         sessionID,
		Controller: game.NewController(app.Generator, opts),
		Effects:    effects,
	}
}

// endGameSession drops a session and cancels its pending work.
func (app *App) endGameSession(sessionID string) bool {
	app.SessionMutex.Lock()
	gs, exists := app.Sessions[sessionID]
	delete(app.Sessions, sessionID)
	app.SessionMutex.Unlock()
	if exists {
		gs.Controller.Close()
	}
	return exists
}

// cleanupIdleSessions removes sessions not used within the session timeout.
func (app *App) cleanupIdleSessions(now time.Time) int {
	cutoff := now.Add(-app.Config.SessionTimeout)
	app.SessionMutex.Lock()
	idle := lo.PickBy(app.Sessions, func(_ string, gs *gameSession) bool {
		return gs.idleSince().Before(cutoff)
	})
	for id := range idle {
		delete(app.Sessions, id)
	}
	app.SessionMutex.Unlock()

	for _, gs := range idle {
		gs.Controller.Close()
	}
	if len(idle) > 0 {
		logInfo("Removed %d idle session(s)", len(idle))
	}
	return len(idle)
}

// runSessionReaper calls cleanupIdleSessions periodically until ctx is done.
func (app *App) runSessionReaper(ctx context.Context) {
	interval := max(app.Config.SessionTimeout/4, time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.cleanupIdleSessions(now)
		}
	}
}

// closeAllSessions cancels every session's pending work. Used on shutdown.
func (app *App) closeAllSessions() {
	app.SessionMutex.Lock()
	sessions := lo.Values(app.Sessions)
	app.Sessions = make(map[string]*gameSession)
	app.SessionMutex.Unlock()
	for _, gs := range sessions {
		gs.Controller.Close()
	}
}
