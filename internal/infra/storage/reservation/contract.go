package reservation

import "github.com/m04kA/FP-ReservationService/pkg/txmanager"

// DBExecutor интерфейс для работы с БД
// Репозиторий получает *sql.DB, а активная транзакция (если есть)
// достаётся из контекста через txmanager.GetExecutor
type DBExecutor = txmanager.Executor
