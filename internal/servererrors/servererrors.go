package servererrors

import "errors"

// sentinel errors returned by services. Handlers translate these into
// [ServerError] values with the right status code.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnauthorizedAccess  = errors.New("unauthorized access")
	ErrNoAccessTokenCookie = errors.New("no access token cookie")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountInactive     = errors.New("account is inactive. contact the administrator")
	ErrForbidden           = errors.New("forbidden")
	ErrAdminCartForbidden  = errors.New("admin users cannot access the cart")

	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyTaken = errors.New("email already registered")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")

	ErrProductNotFound       = errors.New("product not found")
	ErrProductAlreadyExists  = errors.New("product already exists")
	ErrProductReferenced     = errors.New("cannot delete product: it is linked to existing orders")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")

	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrCartEmpty         = errors.New("cart is empty")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderAlreadyPaid      = errors.New("order is already completed")
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")
	ErrCannotCancelPaidOrder = errors.New("cannot cancel a paid order")
	ErrCannotDeletePaidOrder = errors.New("cannot delete a paid order")

	ErrReviewNotFound   = errors.New("review not found")
	ErrDuplicateReview  = errors.New("you have already reviewed this product")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrReviewNotAllowed = errors.New("you can only review products you have purchased")
)

// ServerError carries a http status code alongside the error message and
// optional structured details so the error middleware can write a proper
// json response.
type ServerError struct {
	StatusCode int
	Message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}
