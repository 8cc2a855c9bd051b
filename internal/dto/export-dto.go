package dto

// ExportRowDTO - строка xlsx-выгрузки, все значения уже отформатированы:
// пустая строка вместо NULL, даты в формате 02.01.2006.
type ExportRowDTO struct {
	SerialNumber        string
	Name                string
	Brand               string
	Model               string
	Category            string
	Status              string
	Condition           string
	OwnerName           string
	OwnerEmail          string
	Location            string
	PurchaseDate        string
	PurchaseMethod      string
	PurchasePrice       float64
	WarrantyExpiry      string
	LastMaintenanceDate string
	LastMaintenanceCost float64
	Tags                string
	Notes               string
	CreatedAt           string
	UpdatedAt           string
}
