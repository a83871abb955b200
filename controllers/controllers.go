package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"campus-compliance-api/config"
	"campus-compliance-api/services"
	"campus-compliance-api/store"

	"github.com/gin-gonic/gin"
)

var (
	recordStore  store.Store
	queryService *services.QueryService
	analytics    *services.AnalyticsService
	lifecycle    *services.LifecycleTracker
	notifier     *services.Notifier
)

// Init wires the handlers to a record store. Called once from main after the
// database is up; tests may call it again with an in-memory store.
func Init(s store.Store) {
	recordStore = s
	queryService = services.NewQueryService(s)
	analytics = services.NewAnalyticsService(s)
	lifecycle = services.NewLifecycleTracker(s)
	notifier = services.NewNotifier(s)
}

// storeFailure logs the underlying store error and answers with a generic
// message. Outside production the detail is echoed to ease debugging; it is
// never sent to real clients.
func storeFailure(c *gin.Context, action string, err error) {
	log.Printf("%s: %v", action, err)
	msg := action
	if !config.IsProduction() {
		msg = fmt.Sprintf("%s: %v", action, err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "error": what + " not found"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
