package errors

// Error is a comparable sentinel usable with errors.Is.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrPropertyNotFound = Error("Property not found")
	ErrUserNotFound     = Error("User not found")
	ErrRequestNotFound  = Error("Contact request not found")

	ErrAlreadySold     = Error("Property is already SOLD")
	ErrSoldImmutable   = Error("Sold property can no longer be edited")
	ErrHasTransactions = Error("Property has recorded transactions and cannot be deleted")

	ErrNotOwner  = Error("Unauthorized: you do not own this property")
	ErrNotSeller = Error("Unauthorized: only the seller on the request may update it")
	ErrForbidden = Error("Forbidden")

	ErrEmailExists        = Error("Email already exists in database")
	ErrInvalidCredentials = Error("Invalid email or password")
	ErrNotVerified        = Error("Email is not verified")
	ErrAlreadyVerified    = Error("User is already verified")
	ErrInvalidOtp         = Error("Invalid OTP")
	ErrOtpExpired         = Error("OTP has expired")

	ErrRejectReasonRequired = Error("Rejection reason is required")
	ErrInvalidStatus        = Error("Invalid status value")

	InvalidRequestFormatError = "Invalid request format"
)
