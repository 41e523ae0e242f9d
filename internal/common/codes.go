package common

// Authorization gate outcomes.
var (
	ErrNotLoggedIn = NewCodedError(ErrUnauthenticated, "ATHR-001", "Customer is not Logged in.")
	ErrLoggedOut   = NewCodedError(ErrSessionClosed, "ATHR-002", "Customer is logged out. Log in again to access this endpoint.")
	ErrExpired     = NewCodedError(ErrSessionExpired, "ATHR-003", "Your session is expired. Log in again to access this endpoint.")
)

// Login failures.
var (
	ErrLoginUnknownAccount   = NewCodedError(ErrAuthenticationFailed, "ATH-001", "This contact number has not been registered!")
	ErrLoginBadCredentials   = NewCodedError(ErrAuthenticationFailed, "ATH-002", "Invalid Credentials")
	ErrLoginMalformedRequest = NewCodedError(ErrAuthenticationFailed, "ATH-003", "Incorrect format of decoded customer name and password")
)

// Signup failures.
var (
	ErrSignupContactTaken    = NewCodedError(ErrValidationFailed, "SGR-001", "This contact number is already registered! Try other contact number.")
	ErrSignupInvalidEmail    = NewCodedError(ErrValidationFailed, "SGR-002", "Invalid email-id format!")
	ErrSignupInvalidContact  = NewCodedError(ErrValidationFailed, "SGR-003", "Invalid contact number!")
	ErrSignupWeakPassword    = NewCodedError(ErrValidationFailed, "SGR-004", "Weak Password")
	ErrSignupMissingRequired = NewCodedError(ErrValidationFailed, "SGR-005", "Except last name all fields should be filled")
)

// Address failures.
var (
	ErrAddressMissingField = NewCodedError(ErrValidationFailed, "SAR-001", "No field can be empty")
	ErrAddressInvalidPin   = NewCodedError(ErrValidationFailed, "SAR-002", "Invalid pincode")
	ErrStateNotFound       = NewCodedError(ErrNotFound, "ANF-002", "No state by this id")
	ErrAddressNotFound     = NewCodedError(ErrNotFound, "ANF-003", "No address by this id")
	ErrAddressNotOwned     = NewCodedError(ErrOwnershipViolation, "ANF-003", "No address by this id")
	ErrAddressIDMissing    = NewCodedError(ErrNotFound, "ANF-005", "Address id can not be empty")
)

// Customer update failures.
var (
	ErrUpdateWeakPassword   = NewCodedError(ErrValidationFailed, "UCR-001", "Weak Password")
	ErrUpdateFirstNameEmpty = NewCodedError(ErrValidationFailed, "UCR-002", "First name field should not be empty")
	ErrUpdateMissingField   = NewCodedError(ErrValidationFailed, "UCR-003", "No field Should be empty")
	ErrUpdateWrongPassword  = NewCodedError(ErrValidationFailed, "UCR-004", "IncorrectOld Password!")
)
