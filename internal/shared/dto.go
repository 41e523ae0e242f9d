// Package shared holds the JSON bodies exchanged between the addrkeeper
// HTTP API and its clients.
package shared

// Status phrases returned on success.
const (
	StatusCustomerRegistered = "CUSTOMER SUCCESSFULLY REGISTERED"
	StatusLoggedIn           = "LOGGED IN SUCCESSFULLY"
	StatusLoggedOut          = "LOGGED OUT SUCCESSFULLY"
	StatusCustomerUpdated    = "CUSTOMER DETAILS UPDATED SUCCESSFULLY"
	StatusPasswordUpdated    = "CUSTOMER PASSWORD UPDATED SUCCESSFULLY"
	StatusAddressRegistered  = "ADDRESS SUCCESSFULLY REGISTERED"
	StatusAddressDeleted     = "ADDRESS DELETED SUCCESSFULLY"
)

// CodeInternal is the code of every non-domain failure.
const CodeInternal = "INTERNAL"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SignupCustomerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EmailAddress  string `json:"email_address"`
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`
}

// StatusResponse is the body of most mutating calls.
type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type LoginResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EmailAddress  string `json:"email_address"`
	ContactNumber string `json:"contact_number"`
	Message       string `json:"message"`
}

type LogoutResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type UpdateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateCustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type SaveAddressRequest struct {
	FlatBuildingName string `json:"flat_building_name"`
	Locality         string `json:"locality"`
	City             string `json:"city"`
	Pincode          string `json:"pincode"`
	StateUUID        string `json:"state_uuid"`
}

type State struct {
	ID        string `json:"id"`
	StateName string `json:"state_name"`
}

type Address struct {
	ID               string `json:"id"`
	FlatBuildingName string `json:"flat_building_name"`
	Locality         string `json:"locality"`
	City             string `json:"city"`
	Pincode          string `json:"pincode"`
	State            State  `json:"state"`
}

type AddressListResponse struct {
	Addresses []Address `json:"addresses"`
}

type StatesListResponse struct {
	States []State `json:"states"`
}

// CodeBadRequest is returned for bodies that are not valid JSON.
const CodeBadRequest = "BAD_REQUEST"
