package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// Adds the counters.currently_serving relation after queue_tickets exists;
// the two collections reference each other, so this cannot be part of the
// counters create migration.
func init() {
	m.Register(func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_3142635823")
		if err != nil {
			return err
		}

		collection.Fields.Add(&core.RelationField{
			Id:           "relation821034977",
			Name:         "currently_serving",
			CollectionId: "pbc_4091854257",
			MaxSelect:    1,
		})

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_3142635823")
		if err != nil {
			return err
		}

		collection.Fields.RemoveByName("currently_serving")

		return app.Save(collection)
	})
}
