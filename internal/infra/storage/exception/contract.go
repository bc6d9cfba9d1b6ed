package exception

import "github.com/m04kA/DS-ScheduleService/pkg/txmanager"

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
