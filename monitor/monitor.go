// Package monitor exposes a lightweight operational snapshot: process
// uptime, request counters and database reachability.
package monitor

import (
	"sync/atomic"
	"time"

	"campus-compliance-api/config"

	"github.com/gin-gonic/gin"
)

var (
	startedAt    = time.Now()
	requestCount int64
	errorCount   int64
)

// CountRequests tallies every request and every 5xx answer.
func CountRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		atomic.AddInt64(&requestCount, 1)
		c.Next()
		if c.Writer.Status() >= 500 {
			atomic.AddInt64(&errorCount, 1)
		}
	}
}

// RegisterMonitorPage serves the status snapshot at /monitor.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		dbStatus := "ok"
		if config.DB == nil {
			dbStatus = "not connected"
		} else if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "unreachable"
		}

		c.JSON(200, gin.H{
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
			"requests":       atomic.LoadInt64(&requestCount),
			"errors":         atomic.LoadInt64(&errorCount),
			"database":       dbStatus,
		})
	})
}
