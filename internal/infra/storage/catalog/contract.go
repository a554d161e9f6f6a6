package catalog

import "github.com/pawcare/PC-BookingWizard/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов к БД.
// Реализуется *sql.DB и *dbmetrics.DB.
type DBExecutor = dbmetrics.DBExecutor
