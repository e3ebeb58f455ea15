package screens

// Technician is a support technician as listed by the API.
type Technician struct {
	ID              string `json:"_id" mapstructure:"_id"`
	TechnicianType  string `json:"technicianType" mapstructure:"technicianType"`
	Name            string `json:"name" mapstructure:"name"`
	City            string `json:"city" mapstructure:"city"`
	MobileNumber    string `json:"mobileNumber" mapstructure:"mobileNumber"`
	AlternateNumber string `json:"alternateNumber" mapstructure:"alternateNumber"`
	VehicleType     string `json:"vehicleType" mapstructure:"vehicleType"`
	CreatedAt       string `json:"createdAt,omitempty" mapstructure:"createdAt"`
	UpdatedAt       string `json:"updatedAt,omitempty" mapstructure:"updatedAt"`
}

type Vehicle struct {
	ID              string   `json:"_id"`
	Number          string   `json:"number"`
	SeatingCapacity int      `json:"seatingCapacity"`
	Model           string   `json:"model"`
	BodyType        string   `json:"bodyType"`
	ChassisBrand    string   `json:"chassisBrand"`
	Location        string   `json:"location"`
	ContactNumber   string   `json:"contactNumber"`
	Photos          []string `json:"photos"`
	IsAC            bool     `json:"isAC"`
	IsForRent       bool     `json:"isForRent"`
	IsForSell       bool     `json:"isForSell"`
	Type            string   `json:"type"`
}

// PackageBooking keeps dates and times as the raw strings the API sent;
// they are reformatted for display only.
type PackageBooking struct {
	ID                   string  `json:"_id"`
	Vehicle              string  `json:"vehicle"`
	OtherVehicle         string  `json:"otherVehicle"`
	CustomerName         string  `json:"customerName"`
	MobileNumber         string  `json:"mobileNumber"`
	AlternateNumber      string  `json:"alternateNumber"`
	KmStarting           float64 `json:"kmStarting"`
	PerKmRateInINR       float64 `json:"perKmRateInINR"`
	AdvanceAmountInINR   float64 `json:"advanceAmountInINR"`
	RemainingAmountInINR float64 `json:"remainingAmountInINR"`
	DeparturePlace       string  `json:"departurePlace"`
	DestinationPlace     string  `json:"destinationPlace"`
	DepartureDate        string  `json:"departureDate"`
	DepartureTime        string  `json:"departureTime"`
	ReturnDate           string  `json:"returnDate"`
	ReturnTime           string  `json:"returnTime"`
	TollInINR            float64 `json:"tollInINR"`
	OtherStateTaxInINR   float64 `json:"otherStateTaxInINR"`
	Instructions         string  `json:"instructions"`
	Note                 string  `json:"note"`
}
