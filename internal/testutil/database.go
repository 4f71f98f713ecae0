package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL test database named by STOCKDESK_TEST_DSN,
// defaulting to root@localhost:3306/stockdesk_test. The test is skipped when
// the database is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("STOCKDESK_TEST_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/stockdesk_test?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderLines", "Orders", "Stock"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrderLinesTable := `
	CREATE TABLE IF NOT EXISTS OrderLines (
		orderId VARCHAR(64) NOT NULL,
		position INT NOT NULL,
		productCode VARCHAR(100) NOT NULL,
		requestedQty INT NOT NULL DEFAULT 0,
		availableQty INT NOT NULL DEFAULT 0,
		allocatedQty INT NOT NULL DEFAULT 0,
		unitPrice DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		PRIMARY KEY (orderId, position),
		UNIQUE KEY uq_order_product (orderId, productCode),
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE
	)`

	createStockTable := `
	CREATE TABLE IF NOT EXISTS Stock (
		productCode VARCHAR(100) NOT NULL PRIMARY KEY,
		onHand INT,
		reserved INT,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Orders", createOrdersTable},
		{"OrderLines", createOrderLinesTable},
		{"Stock", createStockTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
