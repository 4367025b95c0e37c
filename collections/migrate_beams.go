package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"steelquote/services"
)

// MigrateBeamSizeNormalization rewrites every beam_connection_data record
// whose beam_size is not already in canonical form (uppercase, trimmed).
// Lookups compare normalized sizes, so stored rows must match.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateBeamSizeNormalization(app *pocketbase.PocketBase) error {
	beamCol, err := app.FindCollectionByNameOrId("beam_connection_data")
	if err != nil {
		return fmt.Errorf("migrate: could not find beam_connection_data collection: %w", err)
	}

	beams, err := app.FindAllRecords(beamCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query beam_connection_data: %w", err)
	}

	dirty := 0
	for _, beam := range beams {
		size := beam.GetString("beam_size")
		normalized := services.NormalizeBeamSize(size)
		if size == normalized {
			continue
		}

		beam.Set("beam_size", normalized)
		if err := app.Save(beam); err != nil {
			log.Printf("migrate: failed to normalize beam %s (%q): %v\n", beam.Id, size, err)
			continue
		}
		dirty++
	}

	if dirty > 0 {
		log.Printf("migrate: normalized %d beam size(s)\n", dirty)
	}
	return nil
}
