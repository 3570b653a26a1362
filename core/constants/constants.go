package constants

import "time"

// Timeouts
const (
	DefaultTimeout        = 5 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	// Assignment runs read and rewrite a whole event, so they get more room.
	AssignmentTimeout = 60 * time.Second
	ShutdownTimeout   = 15 * time.Second
)

// Echo context keys
const (
	ContextTokenData = "token_data"
	ContextToken     = "token"
)

// Token scopes and roles
const (
	ScopeTokenAccess = "access"

	RoleAdmin     = "admin"
	RoleCandidate = "candidate"

	TokenTTL = 10 * 24 * time.Hour
)

// Login attempt blocking
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Redis keys
const (
	RedisKeyLoginAttempt   = "login:"
	RedisKeyTokenBlacklist = "blacklist:"
	RedisKeyAssignmentLock = "lock:assignment:"
)

// Database
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
)

// Pagination
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 200
)

// Round 1 slot assignment
const (
	RoomCapacity       = 10
	MaxSlotSearch      = 1000
	TimingsPlaceholder = "Wait to be Assign"
	AssignmentLockTTL  = 2 * time.Minute

	MaxRound1Selections = 5
	TarufStatusActive   = 1
)

// Queue
const (
	QueueDefault           = "default"
	TaskTypeAutoAssign     = "slot:auto_assign"
	AutoAssignUniqueTTL    = 5 * time.Minute
	AutoAssignMaxRetry     = 3
	QueueWorkerConcurrency = 4
)
