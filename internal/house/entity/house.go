package entity

// Status is the listing state. The numeric values are part of the houses.txt
// format and must not be reordered.
type Status int

const (
	StatusAvailable Status = iota
	StatusRented
	StatusMaintenance
)

func (s Status) Valid() bool {
	return s >= StatusAvailable && s <= StatusMaintenance
}

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusRented:
		return "Rented"
	case StatusMaintenance:
		return "Maintenance"
	default:
		return "Unknown"
	}
}

// House represents a property listing. LandlordName is a snapshot of the
// owner's full name at creation time and is not resynced with later account
// edits. DateAdded uses the fixed YYYY-MM-DD format.
type House struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Area         string  `json:"area"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Rent         float64 `json:"rent"`
	Description  string  `json:"description"`
	LandlordID   int     `json:"landlord_id"`
	LandlordName string  `json:"landlord_name"`
	Status       Status  `json:"status"`
	DateAdded    string  `json:"date_added"`
}
