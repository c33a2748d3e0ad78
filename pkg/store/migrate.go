package store

import "cropwatch/entities"

// migrateFieldCrops backfills the crop attribute on records written before
// fields carried their own crop, copying it from the owning directory. Run
// once at load time; a second run over the result is a no-op.
func migrateFieldCrops(fields []entities.Field, dirs []entities.Directory) (bool, []entities.Field) {
	migrated := false
	for i := range fields {
		if fields[i].Crop != "" {
			continue
		}
		d, ok := findDirectory(dirs, fields[i].DirectoryID)
		if !ok || d.Crop == "" {
			continue
		}
		fields[i].Crop = d.Crop
		migrated = true
	}
	return migrated, fields
}
