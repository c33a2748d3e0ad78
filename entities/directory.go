package entities

import "time"

// DefaultDirectoryID is the reserved grouping every store always carries.
// It is synthesized on first read and can never be deleted or imported over.
const DefaultDirectoryID = "default"

type Directory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Crop      string    `json:"crop"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDefault reports whether d is the reserved default directory.
func (d Directory) IsDefault() bool { return d.ID == DefaultDirectoryID }
