package migrations

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the default admin account, the service catalog and three counters.
func init() {
	m.Register(func(app core.App) error {
		admins, err := app.FindCollectionByNameOrId("admins")
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := core.NewRecord(admins)
		admin.Set("username", "admin")
		admin.Set("password_hash", string(hash))
		admin.Set("full_name", "Administrator")
		if err := app.Save(admin); err != nil {
			return err
		}

		serviceTypes, err := app.FindCollectionByNameOrId("service_types")
		if err != nil {
			return err
		}

		catalog := []struct {
			name   string
			prefix string
		}{
			{"Facility Maintenance", "FM"},
			{"Air Conditioning", "AC"},
			{"Electrical", "EL"},
			{"Plumbing", "PL"},
		}
		for _, entry := range catalog {
			record := core.NewRecord(serviceTypes)
			record.Set("name", entry.name)
			record.Set("prefix", entry.prefix)
			record.Set("current_number", 0)
			record.Set("served", 0)
			if err := app.Save(record); err != nil {
				return err
			}
		}

		counters, err := app.FindCollectionByNameOrId("counters")
		if err != nil {
			return err
		}

		for i := 1; i <= 3; i++ {
			record := core.NewRecord(counters)
			record.Set("name", fmt.Sprintf("Counter %d", i))
			record.Set("status", "inactive")
			if err := app.Save(record); err != nil {
				return err
			}
		}

		return nil
	}, func(app core.App) error {
		// Best-effort removal of the seeded records.
		if record, err := app.FindFirstRecordByFilter("admins", "username = 'admin'"); err == nil {
			_ = app.Delete(record)
		}

		for _, prefix := range []string{"FM", "AC", "EL", "PL"} {
			if record, err := app.FindFirstRecordByFilter("service_types", fmt.Sprintf("prefix = '%s'", prefix)); err == nil {
				_ = app.Delete(record)
			}
		}

		for i := 1; i <= 3; i++ {
			if record, err := app.FindFirstRecordByFilter("counters", fmt.Sprintf("name = 'Counter %d'", i)); err == nil {
				_ = app.Delete(record)
			}
		}

		return nil
	})
}
