package models

// State is read-only reference data.
type State struct {
	ID   int64
	UUID string
	Name string
}

// Address belongs to exactly one customer through a customer_address row.
type Address struct {
	ID               int64
	UUID             string
	FlatBuildingName string
	Locality         string
	City             string
	Pincode          string
	Active           bool
	State            State
}
