package services

import (
	"context"
	"fmt"
	"log"

	"github.com/localnerve/sitebuilder/internal/config"
	"github.com/localnerve/sitebuilder/internal/models"
	"github.com/localnerve/sitebuilder/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(format string, args ...any) {
	r.Status = "unhealthy"
	msg := fmt.Sprintf(format, args...)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
	log.Printf("Health check failed - %s", msg)
}

// HealthCheck reports database and Authorizer reachability, plus site and
// component counts when the database answers.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail("Database connection error: %v", err)
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail("Database ping failed: %v", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase

		var sites, comps int64
		tx := db.WithContext(ctx)
		if err := tx.Model(&models.Site{}).Count(&sites).Error; err == nil {
			result.Details["sites"] = fmt.Sprintf("%d", sites)
		}
		if err := tx.Model(&models.Component{}).Count(&comps).Error; err == nil {
			result.Details["components"] = fmt.Sprintf("%d", comps)
		}
	}

	// Check Authorizer connectivity
	if err := utils.PingAuthorizer(ctx, cfg.AuthzURL); err != nil {
		result.Authorizer = "unreachable"
		result.Details["authorizer_error"] = err.Error()
		result.fail("Authorizer ping failed: %v", err)
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
