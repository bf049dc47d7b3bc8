package contextkeys

type contextKey string

// DBContextKey is where DBMiddleware stores the *gorm.DB (pool or transaction).
const DBContextKey = contextKey("db")

// SessionContextKey is where SessionMiddleware stores the decoded session.
const SessionContextKey = contextKey("session")

// RequestIDKey carries the request id into the logger.
const RequestIDKey = contextKey("request_id")
