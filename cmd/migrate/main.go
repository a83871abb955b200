package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"campus-compliance-api/models"
)

func main() {
	godotenv.Load()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USERNAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_DATABASE"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260115_create_compliance_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{},
					&models.Audit{},
					&models.Grievance{},
					&models.Policy{},
					&models.FacultyPerformance{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"faculty_performances", "policies", "grievances", "audits", "users")
			},
		},
		{
			ID: "20260116_compliance_indexes",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec(`CREATE INDEX idx_audits_status_date ON audits (status, audit_date)`).Error; err != nil {
					return err
				}
				if err := tx.Exec(`CREATE INDEX idx_grievances_status ON grievances (status)`).Error; err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX idx_policies_next_due ON policies (next_due_date)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				tx.Exec(`DROP INDEX idx_audits_status_date ON audits`)
				tx.Exec(`DROP INDEX idx_grievances_status ON grievances`)
				return tx.Exec(`DROP INDEX idx_policies_next_due ON policies`).Error
			},
		},
	})

	if err := m.Migrate(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration completed")
}
