package database

import (
	"fmt"
	"log"
	"reflect"
	"sync"

	"lumber-app/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

var (
	dbPool  = make(map[string]*gorm.DB)
	dbMutex sync.Mutex
)

// GetDBConnection manages one pooled connection per database name.
func GetDBConnection(dbName string) (*gorm.DB, error) {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if db, exists := dbPool[dbName]; exists {
		return db, nil
	}

	_, dialector := getDSNAndDialector(dbName)
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	dbPool[dbName] = db
	return db, nil
}

func OpenDatabaseConnection(dbName string) (*gorm.DB, error) {
	_, dialector := getDSNAndDialector(dbName)
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

func getDSNAndDialector(dbName string) (string, gorm.Dialector) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		return dsn, postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, mysql.Open(dsn)
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, sqlserver.Open(dsn)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
		return "", nil
	}
}

// EnsureDatabaseExists connects without a database name and creates the
// target database if the server does not have it yet.
func EnsureDatabaseExists(dbName string) {
	var dsn string
	var db *gorm.DB
	var err error

	switch config.DBDriver {
	case "postgres":
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "mssql":
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
	}

	if err != nil {
		log.Fatalf("Failed to connect to DB server: %v", err)
	}

	switch config.DBDriver {
	case "postgres":
		db.Exec("CREATE DATABASE " + dbName)
	case "mysql":
		db.Exec("CREATE DATABASE IF NOT EXISTS " + dbName)
	case "mssql":
		db.Exec("IF DB_ID('" + dbName + "') IS NULL CREATE DATABASE " + dbName)
	}
}

// InjectDBMiddleware injects the pooled connection into the DB field of a
// controller before the handler runs.
func InjectDBMiddleware(controller interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db, err := GetDBConnection(config.DBName)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "error connecting to database")
		}

		val := reflect.ValueOf(controller)
		if val.Kind() != reflect.Ptr || val.IsNil() {
			return fiber.NewError(fiber.StatusInternalServerError, "controller must be a non-nil pointer")
		}

		elem := val.Elem()
		dbField := elem.FieldByName("DB")
		if !dbField.IsValid() || !dbField.CanSet() {
			return fiber.NewError(fiber.StatusInternalServerError, "DB field not found or cannot be set in controller")
		}

		if dbField.Type() != reflect.TypeOf((*gorm.DB)(nil)) {
			return fiber.NewError(fiber.StatusInternalServerError, "DB field has wrong type")
		}

		dbField.Set(reflect.ValueOf(db))

		return c.Next()
	}
}
