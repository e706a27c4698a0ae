package entity

// DoctorFilter narrows a directory search. Empty fields match everything.
type DoctorFilter struct {
	Query    string // doctor name or specialty name
	Location string // city name
}
