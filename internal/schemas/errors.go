package schemas

// GlobalKey is the error-map key used for failures that are not
// attributable to a single request field.
const GlobalKey = "global"

// FieldErrors maps request field names (or GlobalKey) to human-readable
// messages. It is the value-based error type of the account service:
// validation runs collect all violations into one map instead of
// failing on the first, so a client can render every field error at
// once. FieldErrors serializes directly as the JSON error body.
type FieldErrors map[string]string

// Error implements the error interface by returning the first message
// in an unspecified order. Callers render the full map, not this string.
func (e FieldErrors) Error() string {
	for field, message := range e {
		return field + ": " + message
	}
	return "validation failed"
}

// Add records a message for a field unless one is already present, so
// the first violation found for a field wins.
func (e FieldErrors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Global builds a FieldErrors carrying a single global message.
func Global(message string) FieldErrors {
	return FieldErrors{GlobalKey: message}
}

// Messages shared across the account service and the HTTP layer. The
// token messages are deliberately uniform: verify and reset failures
// never reveal whether the user, the record, or the code was the
// invalid part.
const (
	MsgUsernameInvalid   = "Username is not valid."
	MsgEmailInvalid      = "Email is not valid."
	MsgPasswordInvalid   = "Password is not valid."
	MsgUsernameTaken     = "Username is already in use."
	MsgEmailTaken        = "Email is already in use."
	MsgNoSuchUsername    = "There is no user with this username."
	MsgNoUser            = "There is no user."
	MsgTokenInvalid      = "Token is not valid."
	MsgTokenExpired      = "Token is expired."
	MsgAlreadyVerified   = "User is already verified."
	MsgNotVerified       = "Please verify your email address."
	MsgPasswordUnchanged = "New password must be different than the old one."
	MsgNameInvalid       = "Name must be between 3 and 80 characters."
	MsgUserIdInvalid     = "User ID is not valid."
	MsgUserNotFound      = "User not found."
	MsgUnauthorized      = "Request is not authorized."
	MsgBadRequest        = "Request body is not valid."
	MsgInternal          = "There was an error."
	MsgImageRequired     = "Please provide an image."
	MsgImageInvalid      = "Image is not valid."
	MsgNoAvatar          = "There is no avatar."
)
