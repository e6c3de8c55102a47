package database

import (
	"fmt"
	"sync"

	"inspection-app/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// OpenDatabaseConnection membuka koneksi GORM sesuai DB_DRIVER.
func OpenDatabaseConnection(dbName string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.DBHost, config.DBPort, config.DBUser, config.DBPassword, dbName)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		dialector = mysql.Open(dsn)
	case "mssql":
		dsn := "sqlserver://" + config.DBUser + ":" + config.DBPassword + "@" + config.DBHost + ":" + config.DBPort + "?database=" + dbName
		dialector = sqlserver.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", config.DBDriver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return nil, err
	}

	return conn, nil
}

// GetDB mengembalikan koneksi bersama, dibuka sekali saat pertama dipanggil.
func GetDB() (*gorm.DB, error) {
	var err error
	once.Do(func() {
		db, err = OpenDatabaseConnection(config.DBName)
	})
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}
