package entity

// Rental represents a rental agreement. LandlordID, TenantName, HouseTitle
// and MonthlyRent are snapshots taken from the house and tenant when the
// rental is created; later edits to either do not flow back. Ended rentals
// stay on record with IsActive false.
type Rental struct {
	ID          int     `json:"id"`
	HouseID     int     `json:"house_id"`
	TenantID    int     `json:"tenant_id"`
	LandlordID  int     `json:"landlord_id"`
	TenantName  string  `json:"tenant_name"`
	HouseTitle  string  `json:"house_title"`
	RentalDate  string  `json:"rental_date"`
	MonthlyRent float64 `json:"monthly_rent"`
	IsActive    bool    `json:"is_active"`
}
