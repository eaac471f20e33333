package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"showdoidioma/internal/game"
	"showdoidioma/internal/types"
)

// respondState writes the session's current state along with any sound cues
// queued since the last response.
func (app *App) respondState(c *gin.Context, status int, gs *gameSession) {
	c.JSON(status, buildStateView(gs.Controller.Snapshot(), gs.Effects.Drain()))
}

// sessionFor resolves the caller's game session, creating one if needed.
func (app *App) sessionFor(c *gin.Context) *gameSession {
	return app.getGameSession(app.getOrCreateSession(c))
}

// languagesHandler lists the playable languages.
func (app *App) languagesHandler(c *gin.Context) {
	type languageView struct {
		Name string `json:"name"`
		Tag  string `json:"tag"`
	}
	c.JSON(http.StatusOK, gin.H{
		"languages": lo.Map(types.Languages, func(l types.Language, _ int) languageView {
			return languageView{Name: string(l), Tag: l.Tag().String()}
		}),
	})
}

// prizesHandler returns the prize ladder, lowest first.
func (app *App) prizesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prizes": types.Prizes, "noPrize": types.NoPrize})
}

// gameStateHandler returns the current game state.
func (app *App) gameStateHandler(c *gin.Context) {
	app.respondState(c, http.StatusOK, app.sessionFor(c))
}

// startHandler starts a game in the requested language.
func (app *App) startHandler(c *gin.Context) {
	gs := app.sessionFor(c)
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBadRequest})
		return
	}
	lang, err := types.ParseLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorUnknownLanguage})
		return
	}
	if err := gs.Controller.Start(lang); err != nil {
		if errors.Is(err, game.ErrAlreadyStarted) {
			c.JSON(http.StatusConflict, gin.H{"error": ErrorAlreadyStarted})
			return
		}
		logWarn("Session %s failed to start (request %s): %v", gs.ID, requestID(c), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logInfo("Session %s started a game in %s", gs.ID, lang)
	app.respondState(c, http.StatusOK, gs)
}

// answerHandler locks in the player's answer. Answers the game cannot take
// right now are ignored; the returned state shows what happened.
func (app *App) answerHandler(c *gin.Context) {
	gs := app.sessionFor(c)
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBadRequest})
		return
	}
	gs.Controller.SubmitAnswer(*req.Index)
	app.respondState(c, http.StatusOK, gs)
}

// lifelineHandler uses one of the lifelines.
func (app *App) lifelineHandler(c *gin.Context) {
	gs := app.sessionFor(c)
	kind, ok := types.ParseLifeline(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorUnknownLifeline})
		return
	}
	gs.Controller.UseLifeline(kind)
	app.respondState(c, http.StatusOK, gs)
}

// retryHandler retries a failed question load.
func (app *App) retryHandler(c *gin.Context) {
	gs := app.sessionFor(c)
	gs.Controller.Retry()
	app.respondState(c, http.StatusOK, gs)
}

// restartHandler returns a finished game to the language menu.
func (app *App) restartHandler(c *gin.Context) {
	gs := app.sessionFor(c)
	if err := gs.Controller.Restart(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": ErrorNotFinished})
		return
	}
	app.respondState(c, http.StatusOK, gs)
}

// endSessionHandler discards the session and clears its cookie.
func (app *App) endSessionHandler(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil && sessionID != "" {
		if app.endGameSession(sessionID) {
			logInfo("Ended session: %s", sessionID)
		}
	}
	app.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	app.SessionMutex.RLock()
	sessions := len(app.Sessions)
	app.SessionMutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       map[bool]string{true: "production", false: "development"}[app.Config.IsProduction()],
		"generator": map[bool]string{true: "offline", false: "ai"}[app.Config.Offline()],
		"sessions":  sessions,
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
