package integration_test

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/localnerve/sitebuilder/internal/config"
	"github.com/localnerve/sitebuilder/internal/database"
	"github.com/localnerve/sitebuilder/internal/models"
	"github.com/localnerve/sitebuilder/internal/services"
	"github.com/localnerve/sitebuilder/tests/helpers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// startDatabase starts a database container and returns a migrated connection
func startDatabase(t *testing.T, req testcontainers.ContainerRequest, cfg *config.Config, port string) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start %s container: %v", cfg.DBType, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate %s container: %v", cfg.DBType, err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}
	cfg.DBHost = host
	cfg.DBPort = mapped.Port()

	// Wait for database to be ready
	time.Sleep(3 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func startMariaDB(t *testing.T) *gorm.DB {
	return startDatabase(t, testcontainers.ContainerRequest{
		Image:        os.Getenv("DB_IMAGE"),
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "rootpass",
			"MYSQL_DATABASE":      "testdb",
			"MYSQL_USER":          "testuser",
			"MYSQL_PASSWORD":      "testpass",
		},
		WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
	}, &config.Config{
		DBType:            "mysql",
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
	}, "3306")
}

// TestWithMariaDB runs the ordering scenarios against MariaDB, where the site
// row lock is a real FOR UPDATE
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := startMariaDB(t)
	runScenarios(t, db)
}

// TestWithPostgreSQL runs the ordering scenarios against PostgreSQL
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := startDatabase(t, testcontainers.ContainerRequest{
		Image:        os.Getenv("POSTGRES_IMAGE"),
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, &config.Config{
		DBType:            "postgres",
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
	}, "5432")

	runScenarios(t, db)
}

func runScenarios(t *testing.T, db *gorm.DB) {
	t.Run("AppendThenReorder", func(t *testing.T) {
		testAppendThenReorder(t, db)
	})

	t.Run("RenumberRepairsGaps", func(t *testing.T) {
		testRenumberRepairsGaps(t, db)
	})

	t.Run("ConcurrentServicesStayDense", func(t *testing.T) {
		testConcurrentServicesStayDense(t, db)
	})

	t.Run("DeleteSiteCascades", func(t *testing.T) {
		testDeleteSiteCascades(t, db)
	})
}

func positions(t *testing.T, db *gorm.DB, siteID uint64) []models.Component {
	t.Helper()
	var comps []models.Component
	if err := db.Where("site_id = ?", siteID).Order("sort_order, component_id").Find(&comps).Error; err != nil {
		t.Fatalf("Failed to read components: %v", err)
	}
	return comps
}

func assertDense(t *testing.T, comps []models.Component) {
	t.Helper()
	got := make([]int, len(comps))
	for i, c := range comps {
		got[i] = c.SortOrder
	}
	sort.Ints(got)
	for i, p := range got {
		if p != i {
			t.Fatalf("Positions are not dense: %v", got)
		}
	}
}

func testAppendThenReorder(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	owner := uuid.NewString()
	sites := services.NewSiteService(db, nil)
	comps := services.NewComponentService(db, nil, nil, false)

	site, err := sites.CreateSite(ctx, owner, services.SiteInput{Name: "Integration"})
	if err != nil {
		t.Fatalf("Failed to create site: %v", err)
	}

	var ids []uint64
	for _, typ := range []component.Type{component.Header, component.Paragraph, component.Button} {
		c, err := comps.Append(ctx, site.SiteID, owner, services.ComponentInput{Type: typ})
		if err != nil {
			t.Fatalf("Failed to append %s: %v", typ, err)
		}
		ids = append(ids, c.ComponentID)
	}

	updated, err := comps.Reorder(ctx, site.SiteID, owner, []uint64{ids[2], ids[0], ids[1]})
	if err != nil {
		t.Fatalf("Failed to reorder: %v", err)
	}
	if updated != 3 {
		t.Errorf("Expected 3 rows updated, got %d", updated)
	}

	got := positions(t, db, site.SiteID)
	want := []uint64{ids[2], ids[0], ids[1]}
	for i, c := range got {
		if c.ComponentID != want[i] || c.SortOrder != i {
			t.Errorf("Position %d: expected %d, got %d at %d", i, want[i], c.ComponentID, c.SortOrder)
		}
	}

	// Strangers see nothing and change nothing
	if _, err := comps.Reorder(ctx, site.SiteID, uuid.NewString(), ids); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a stranger, got %v", err)
	}
}

func testRenumberRepairsGaps(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	owner := uuid.NewString()
	comps := services.NewComponentService(db, nil, nil, false)

	site := helpers.CreateTestSite(t, db, owner, "Gaps")
	seeded := helpers.CreateTestComponents(t, db, site.SiteID, component.Paragraph, 4, 9, 4, 0)

	if err := comps.Renumber(ctx, site.SiteID); err != nil {
		t.Fatalf("Failed to renumber: %v", err)
	}
	first := positions(t, db, site.SiteID)
	assertDense(t, first)

	// (0, d) (4, a) (4, c) (9, b)
	want := []uint64{seeded[3].ComponentID, seeded[0].ComponentID, seeded[2].ComponentID, seeded[1].ComponentID}
	for i, c := range first {
		if c.ComponentID != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], c.ComponentID)
		}
	}

	if err := comps.Renumber(ctx, site.SiteID); err != nil {
		t.Fatalf("Failed to renumber again: %v", err)
	}
	second := positions(t, db, site.SiteID)
	for i := range first {
		if first[i].ComponentID != second[i].ComponentID || first[i].SortOrder != second[i].SortOrder {
			t.Errorf("Renumber is not idempotent at %d", i)
		}
	}
}

// testConcurrentServicesStayDense uses two service instances with separate
// in-process locks, so only the database row lock serializes them
func testConcurrentServicesStayDense(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	owner := uuid.NewString()
	sites := services.NewSiteService(db, nil)
	a := services.NewComponentService(db, services.NewSiteLocks(), nil, false)
	b := services.NewComponentService(db, services.NewSiteLocks(), nil, false)

	site, err := sites.CreateSite(ctx, owner, services.SiteInput{Name: "Concurrent"})
	if err != nil {
		t.Fatalf("Failed to create site: %v", err)
	}

	const perService = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perService)
	for _, svc := range []*services.ComponentService{a, b} {
		for i := 0; i < perService; i++ {
			wg.Add(1)
			go func(svc *services.ComponentService) {
				defer wg.Done()
				_, err := svc.Append(ctx, site.SiteID, owner, services.ComponentInput{Type: component.Divider})
				errs <- err
			}(svc)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Concurrent append failed: %v", err)
		}
	}

	got := positions(t, db, site.SiteID)
	if len(got) != 2*perService {
		t.Fatalf("Expected %d components, got %d", 2*perService, len(got))
	}
	assertDense(t, got)
}

func testDeleteSiteCascades(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	owner := uuid.NewString()
	sites := services.NewSiteService(db, nil)

	site := helpers.CreateTestSite(t, db, owner, "Cascade")
	helpers.CreateTestComponents(t, db, site.SiteID, component.Header, 0, 1)

	deleted, err := sites.DeleteSite(ctx, site.SiteID, owner)
	if err != nil || !deleted {
		t.Fatalf("Failed to delete site: deleted=%v err=%v", deleted, err)
	}
	if got := positions(t, db, site.SiteID); len(got) != 0 {
		t.Errorf("Expected components to be deleted, got %d", len(got))
	}
}

// TestHealthCheck tests the health check functionality
func TestHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := startMariaDB(t)
	cfg := &config.Config{
		DBType:     "mysql",
		DBDatabase: "testdb",
		AuthzURL:   "http://localhost:9999", // Non-existent service
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := services.HealthCheck(ctx, cfg, db)

	if result.Database != "ok" {
		t.Errorf("Expected database to be ok, got: %s", result.Database)
	}
	if result.Details["sites"] == "" {
		t.Errorf("Expected a site count, got: %v", result.Details)
	}
	if result.Authorizer != "unreachable" {
		t.Errorf("Expected authorizer to be unreachable, got: %s", result.Authorizer)
	}
	if result.Status != "unhealthy" {
		t.Errorf("Expected status to be unhealthy, got: %s", result.Status)
	}
}
