package models

// Address - результат обратного геокодирования точки
type Address struct {
	StreetName  string `json:"street_name"`
	FullAddress string `json:"full_address"`
	City        string `json:"city"`
	District    string `json:"district,omitempty"`
}
