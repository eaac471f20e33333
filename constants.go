package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
	minSessionIDLen   = 10
)

// Route constants
const (
	RouteHealth     = "/healthz"
	RouteLanguages  = "/api/languages"
	RoutePrizes     = "/api/prizes"
	RouteGameState  = "/api/game"
	RouteStart      = "/api/game/start"
	RouteAnswer     = "/api/game/answer"
	RouteLifeline   = "/api/game/lifeline/:kind"
	RouteRetry      = "/api/game/retry"
	RouteRestart    = "/api/game/restart"
	RouteEndSession = "/api/session"
)

// Error message constants
const (
	ErrorBadRequest      = "Invalid request body."
	ErrorUnknownLanguage = "Unknown language."
	ErrorUnknownLifeline = "Unknown lifeline."
	ErrorAlreadyStarted  = "Game already started. Restart it first."
	ErrorNotFinished     = "Game is not over yet."
	ErrorTooManyRequests = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
