package contextkeys

// Используем кастомный тип, чтобы избежать коллизий в context.Context
type contextKey string

// DBContextKey - ключ для *gorm.DB (пул или транзакция)
const DBContextKey = contextKey("db")

// Ключи gin.Context (gin принимает только строковые ключи)
const (
	GinDBKey         = string(DBContextKey)
	GinUserIDKey     = "userID"
	GinUserEmailKey  = "userEmail"
	GinErrorDebugKey = "errorDebug"
)
