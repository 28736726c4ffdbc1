package constants

// Centralized constants for env keys, routes, JSON keys and error strings.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "ORANGEGAME_CONFIG"
	EnvDBPath              = "ORANGEGAME_DB"

	// Session / Cookie names
	CookieSessionName = "oj_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteVersion            = "/version"
	RoutePublicGames        = "/public-games"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteGames              = "/games"
	RouteGamesJoin          = "/games/join"
	RouteGameByCode         = "/games/:gameCode"
	RouteGameClaimRole      = "/games/:gameCode/claim-role"
	RouteGameStart          = "/games/:gameCode/start"
	RouteGameLeave          = "/games/:gameCode/leave"
	RouteGameEnd            = "/games/:gameCode/end"
	RouteGameOrders         = "/games/:gameCode/orders"
	RouteGameAdvance        = "/games/:gameCode/advance"
	RouteGameSnapshot       = "/games/:gameCode/snapshot"
	RouteGameHistory        = "/games/:gameCode/history"
	RouteGameExport         = "/games/:gameCode/export"
	RouteGameWS             = "/games/:gameCode/ws"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidGameCode        = "Invalid game code"
	ErrGameNotFound           = "Game not found"
	ErrFailedFetchGames       = "Failed to fetch games"
	ErrFailedEncodeGames      = "Failed to encode games"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeGame       = "Failed to encode game"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateGame      = "Failed to create game"
	ErrGameNameExceeds       = "Game name exceeds 64 characters"
	ErrInvalidRole           = "Unknown supply chain role"
	ErrRoleAlreadyTaken      = "Role already taken"
	ErrGameFull              = "All roles are taken"
	ErrAlreadyClaimedRole    = "You already claimed a role in this game"
	ErrInvalidRoundSetting   = "Invalid round settings"
	ErrRolesUnclaimed        = "All roles must be claimed or filled with AI before starting"
	ErrOnlyHostMayStart      = "Only the game host may start the game"
	ErrOnlyHostMayAdvance    = "Only the game host may force the round to advance"
	ErrGameAlreadyStarted    = "Game has already started"
	ErrFailedUpdateGame      = "Failed to update game"
	ErrFailedEndGame         = "Failed to end game"
	ErrFailedRemovePlayer    = "Failed to remove player"
	ErrPlayerNotInThisGame   = "Player not in this game"
	ErrCannotLeaveAfterStart = "Cannot leave after the game has started"

	ErrFailedStoreOrder   = "Failed to store order"
	ErrGameNotInProgress  = "Game is not in progress"
	ErrRoundSettling      = "Orders are locked; settling current round"
	ErrInvalidOrderValue  = "Order must be a non-negative whole number"
	ErrDuplicateOrder     = "An order was already placed for this round"
	ErrWrongRound         = "Order is not for the current round"
	ErrOrdersPending      = "Not all orders are in yet"
	ErrGameCompleted      = "Game is already completed"
	ErrFailedAdvanceRound = "Failed to advance round"
	ErrFailedExport       = "Failed to export game history"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldGameID   = "game_id"
	LogFieldJoinCode = "join_code"
	LogFieldRole     = "role"
	LogFieldRound    = "round"
	LogFieldAddr     = "addr"
	LogFieldPlayer   = "player"
)
