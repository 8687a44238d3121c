package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_erp"
	JWTSecret  = "lp-erp-jwt-secret-key-2024"
)

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnv loads .env from the project root
func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB creates a test database connection using a dedicated test schema.
// Each test gets an isolated schema that is cleaned up after the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "erp")
	password := getEnv("DB_PASSWORD", "erp123")
	dbname := getEnv("DB_NAME", "lp_erp")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// Create a unique test schema for isolation
	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	// First: create schema using a temporary connection
	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// Second: open connection with search_path in DSN so ALL pooled connections use test schema
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := entity.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	// Cleanup on test completion
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		// Reconnect to drop the schema
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, tenantID, name, email string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       userID,
		"uid":       userID,
		"tenant_id": tenantID,
		"name":      name,
		"email":     email,
		"role":      "admin",
		"iss":       "lp-erp",
		"iat":       now.Unix(),
		"exp":       now.Add(24 * time.Hour).Unix(),
		"jti":       fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedTenant creates a test tenant
func SeedTenant(t *testing.T, db *gorm.DB, name, consumptionMode string) *entity.Tenant {
	t.Helper()
	tenant := &entity.Tenant{
		Name:                   name,
		LeatherConsumptionMode: consumptionMode,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("Failed to seed tenant: %v", err)
	}
	return tenant
}

// SeedUser creates a test user under a tenant
func SeedUser(t *testing.T, db *gorm.DB, tenantID, name, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		TenantID: tenantID,
		Name:     name,
		Email:    email,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// SeedStages writes the default stage pipeline and returns it ordered
func SeedStages(t *testing.T, db *gorm.DB) []entity.ProductionStage {
	t.Helper()
	if err := entity.SeedDefaultStages(db); err != nil {
		t.Fatalf("Failed to seed stages: %v", err)
	}
	var stages []entity.ProductionStage
	if err := db.Order("sort_order ASC").Find(&stages).Error; err != nil {
		t.Fatalf("Failed to load stages: %v", err)
	}
	return stages
}

// SeedProduct creates a test product
func SeedProduct(t *testing.T, db *gorm.DB, tenantID, name, formula string) *entity.Product {
	t.Helper()
	product := &entity.Product{
		TenantID:           tenantID,
		ProductName:        name,
		SKU:                "SKU-" + name,
		UnitPrice:          100,
		ConsumptionFormula: formula,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

// SeedOrder creates a test order
func SeedOrder(t *testing.T, db *gorm.DB, tenantID, productID string, quantity int) *entity.Order {
	t.Helper()
	order := &entity.Order{
		TenantID:  tenantID,
		ProductID: productID,
		OrderType: entity.OrderTypeCorporate,
		Quantity:  quantity,
		Status:    entity.OrderStatusPending,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

// SeedBatch creates a pending batch for an order
func SeedBatch(t *testing.T, db *gorm.DB, tenantID, orderID string, quantity int) *entity.Batch {
	t.Helper()
	batch := &entity.Batch{
		TenantID:        tenantID,
		OrderID:         orderID,
		BatchCode:       fmt.Sprintf("BATCH-TEST%d-%s", time.Now().UnixNano()%100000, time.Now().Format("20060102")),
		Status:          entity.BatchStatusPending,
		TotalQuantity:   quantity,
		CurrentQuantity: quantity,
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("Failed to seed batch: %v", err)
	}
	return batch
}

// SeedLeatherLot creates a leather inventory lot
func SeedLeatherLot(t *testing.T, db *gorm.DB, tenantID, name string, quantitySqft float64, purchaseDate time.Time) *entity.LeatherInventory {
	t.Helper()
	lot := &entity.LeatherInventory{
		TenantID:     tenantID,
		LeatherName:  name,
		PurchaseDate: purchaseDate,
		QuantitySqft: quantitySqft,
	}
	if err := db.Create(lot).Error; err != nil {
		t.Fatalf("Failed to seed leather lot: %v", err)
	}
	return lot
}

// SeedAccessory creates an accessories inventory row
func SeedAccessory(t *testing.T, db *gorm.DB, tenantID, name string, quantity float64) *entity.AccessoriesInventory {
	t.Helper()
	acc := &entity.AccessoriesInventory{
		TenantID: tenantID,
		Name:     name,
		Quantity: quantity,
		Unit:     "pcs",
	}
	if err := db.Create(acc).Error; err != nil {
		t.Fatalf("Failed to seed accessory: %v", err)
	}
	return acc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
