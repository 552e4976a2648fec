package utils

const (
	// UserIdKey is the key for the user ID used in routing parameters.
	UserIdKey = "userId"

	// CodeParamKey is the key for the one-time code used in query parameters.
	CodeParamKey = "code"

	// AvatarFormKey is the multipart form field carrying the avatar image.
	AvatarFormKey = "avatar"
)
