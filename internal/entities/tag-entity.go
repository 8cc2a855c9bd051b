package entities

// Tag - свободная метка оборудования (many-to-many через equipment_tags).
type Tag struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
