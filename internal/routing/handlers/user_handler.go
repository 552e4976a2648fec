// Package handlers contains the gin handlers of the account routes.
// Handlers bind transport details (cookies, multipart uploads, query
// parameters) and delegate everything else to the account service.
package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"account-server/internal/managers"
	"account-server/internal/schemas"
	"account-server/internal/service"
	"account-server/internal/utils"
)

// UserHdl defines the handler interface of the user routes.
type UserHdl interface {
	Signup(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Verify(ctx *gin.Context)
	RequestPasswordReset(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
	Authorize(ctx *gin.Context)
	UpdateAvatar(ctx *gin.Context)
	UpdatePassword(ctx *gin.Context)
	UpdateProfile(ctx *gin.Context)
	RequestEmailUpdate(ctx *gin.Context)
	UpdateEmail(ctx *gin.Context)
	Delete(ctx *gin.Context)
	GetUser(ctx *gin.Context)
	GetAvatar(ctx *gin.Context)
}

// UserHandler provides all handler functions for the user routes.
type UserHandler struct {
	service     *service.AccountService
	jwtManager  managers.JWTMgr
	mailManager managers.MailMgr
}

func NewUserHandler(accountService *service.AccountService, jwtManager managers.JWTMgr, mailManager managers.MailMgr) UserHdl {
	return &UserHandler{
		service:     accountService,
		jwtManager:  jwtManager,
		mailManager: mailManager,
	}
}

const maxAvatarUploadBytes = 5 << 20

// Signup handles POST requests to create a new, unverified account and
// dispatches the verification mail.
func (handler *UserHandler) Signup(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.SignupRequest)

	user, code, err := handler.service.Signup(ctx.Request.Context(), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	handler.dispatchMail(ctx, func() error {
		return handler.mailManager.SendVerificationMail(user.Email, user.Username, code)
	})

	response := &schemas.UserDTO{ID: user.ID, Username: user.Username, Email: user.Email}
	utils.WriteAndLogResponse(ctx, response, http.StatusCreated)
}

// Login handles POST requests to authenticate a user. On success the
// session token is returned in the body and set as an httpOnly cookie.
func (handler *UserHandler) Login(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.LoginRequest)

	user, err := handler.service.Login(ctx.Request.Context(), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	lifetime := managers.ShortSession
	if req.LongSession {
		lifetime = managers.LongSession
	}
	token, err := handler.jwtManager.Issue(user.ID.String(), lifetime)
	if err != nil {
		utils.WriteAndLogInternalError(ctx, err)
		return
	}
	setSessionCookie(ctx, token, lifetime)

	response := &schemas.LoginResponseDTO{ProfileDTO: schemas.NewProfileDTO(user), Token: token}
	utils.WriteAndLogResponse(ctx, response, http.StatusOK)
}

// Logout clears the session cookie. The token itself stays valid until
// it expires; clients are expected to drop their copy.
func (handler *UserHandler) Logout(ctx *gin.Context) {
	clearSessionCookie(ctx)
	ctx.Status(http.StatusOK)
}

// Verify handles POST requests to consume the signup code.
func (handler *UserHandler) Verify(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.VerifyRequest)
	userId := ctx.Param(utils.UserIdKey)

	user, err := handler.service.Verify(ctx.Request.Context(), userId, req.Code)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	response := &schemas.UserDTO{ID: user.ID, Username: user.Username, Email: user.Email}
	utils.WriteAndLogResponse(ctx, response, http.StatusOK)
}

// RequestPasswordReset handles POST requests to issue a reset code for
// the account behind the given email address.
func (handler *UserHandler) RequestPasswordReset(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.RequestPasswordResetRequest)

	user, code, err := handler.service.RequestPasswordReset(ctx.Request.Context(), req.Email)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	handler.dispatchMail(ctx, func() error {
		return handler.mailManager.SendPasswordResetMail(user.Email, user.Username, code)
	})

	utils.WriteAndLogResponse(ctx, &schemas.EmailDTO{Email: user.Email}, http.StatusOK)
}

// ResetPassword handles PATCH requests carrying the reset code as a
// query parameter and the new password in the body.
func (handler *UserHandler) ResetPassword(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.ResetPasswordRequest)
	userId := ctx.Param(utils.UserIdKey)
	code := ctx.Query(utils.CodeParamKey)

	user, err := handler.service.ResetPassword(ctx.Request.Context(), userId, code, req.NewPassword)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.EmailDTO{Email: user.Email}, http.StatusOK)
}

// Authorize returns the profile of the authenticated user. The auth
// middleware has already re-checked that the account still exists.
func (handler *UserHandler) Authorize(ctx *gin.Context) {
	user := currentUser(ctx)
	utils.WriteAndLogResponse(ctx, schemas.NewProfileDTO(user), http.StatusOK)
}

// UpdateAvatar handles multipart PATCH requests to replace the stored
// avatar. The image is normalized to a 200x200 PNG before it is stored.
func (handler *UserHandler) UpdateAvatar(ctx *gin.Context) {
	user := currentUser(ctx)

	fileHeader, err := ctx.FormFile(utils.AvatarFormKey)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.Global(schemas.MsgImageRequired), http.StatusBadRequest, err)
		return
	}
	if fileHeader.Size > maxAvatarUploadBytes {
		utils.WriteAndLogError(ctx, schemas.Global(schemas.MsgImageInvalid), http.StatusBadRequest, errors.New("avatar exceeds size limit"))
		return
	}
	if contentType := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		utils.WriteAndLogError(ctx, schemas.Global(schemas.MsgImageInvalid), http.StatusBadRequest, errors.New("avatar is not an image"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.WriteAndLogInternalError(ctx, err)
		return
	}
	defer file.Close()

	processed, err := utils.ProcessAvatar(file)
	if err != nil {
		utils.WriteAndLogError(ctx, schemas.Global(schemas.MsgImageInvalid), http.StatusBadRequest, err)
		return
	}

	avatar := &schemas.Avatar{Data: processed, MimeType: utils.AvatarMimeType}
	if _, err := handler.service.UpdateAvatar(ctx.Request.Context(), user.ID, avatar); err != nil {
		writeServiceError(ctx, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.UsernameDTO{Username: user.Username}, http.StatusOK)
}

// UpdatePassword handles PATCH requests of an authenticated user to
// change the password.
func (handler *UserHandler) UpdatePassword(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.UpdatePasswordRequest)
	user := currentUser(ctx)

	if _, err := handler.service.UpdatePassword(ctx.Request.Context(), user.ID, req.NewPassword); err != nil {
		writeServiceError(ctx, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.UsernameDTO{Username: user.Username}, http.StatusOK)
}

// UpdateProfile handles PATCH requests to replace the optional first
// and last name.
func (handler *UserHandler) UpdateProfile(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.UpdateProfileRequest)
	user := currentUser(ctx)

	if _, err := handler.service.UpdateProfile(ctx.Request.Context(), user.ID, req); err != nil {
		writeServiceError(ctx, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.UsernameDTO{Username: user.Username}, http.StatusOK)
}

// RequestEmailUpdate handles POST requests to stage a new email
// address. The confirmation code is mailed to the new address.
func (handler *UserHandler) RequestEmailUpdate(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.RequestEmailUpdateRequest)
	user := currentUser(ctx)

	updated, code, err := handler.service.RequestEmailUpdate(ctx.Request.Context(), user.ID, req.Email)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	handler.dispatchMail(ctx, func() error {
		return handler.mailManager.SendEmailChangeMail(updated.EmailUpdate.NewEmail, updated.Username, code)
	})

	utils.WriteAndLogResponse(ctx, &schemas.EmailDTO{Email: updated.EmailUpdate.NewEmail}, http.StatusOK)
}

// UpdateEmail handles PATCH requests confirming a staged email change.
func (handler *UserHandler) UpdateEmail(ctx *gin.Context) {
	req := ctx.Value(utils.SanitizedPayloadKey).(*schemas.UpdateEmailRequest)
	user := currentUser(ctx)

	updated, err := handler.service.UpdateEmail(ctx.Request.Context(), user.ID, req.Code)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.EmailDTO{Email: updated.Email}, http.StatusOK)
}

// Delete handles DELETE requests to remove the account permanently and
// clears the session cookie.
func (handler *UserHandler) Delete(ctx *gin.Context) {
	user := currentUser(ctx)

	if err := handler.service.Delete(ctx.Request.Context(), user.ID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	clearSessionCookie(ctx)

	utils.WriteAndLogResponse(ctx, &schemas.UsernameDTO{Username: user.Username}, http.StatusOK)
}

// GetUser handles public GET requests for the user card of an account.
func (handler *UserHandler) GetUser(ctx *gin.Context) {
	user, err := handler.service.GetByID(ctx.Request.Context(), ctx.Param(utils.UserIdKey))
	if err != nil {
		writeLookupError(ctx, err)
		return
	}

	utils.WriteAndLogResponse(ctx, &schemas.UserCardDTO{ID: user.ID, Username: user.Username}, http.StatusOK)
}

// GetAvatar serves the raw avatar bytes with the stored MIME type.
func (handler *UserHandler) GetAvatar(ctx *gin.Context) {
	user, err := handler.service.GetByID(ctx.Request.Context(), ctx.Param(utils.UserIdKey))
	if err != nil {
		writeLookupError(ctx, err)
		return
	}
	if user.Avatar == nil {
		utils.WriteAndLogError(ctx, schemas.Global(schemas.MsgNoAvatar), http.StatusNotFound, errors.New("user has no avatar"))
		return
	}

	ctx.Data(http.StatusOK, user.Avatar.MimeType, user.Avatar.Data)
}

// dispatchMail sends a mail in the background. A failed delivery is
// logged but never rolls back the state change that triggered it.
func (handler *UserHandler) dispatchMail(ctx *gin.Context, send func() error) {
	traceId := ctx.GetString(utils.TraceIdKey)
	go func() {
		if err := send(); err != nil {
			utils.LogEntryWithTrace(traceId, "error", "Mail dispatch failed: "+err.Error())
		}
	}()
}

func currentUser(ctx *gin.Context) *schemas.User {
	return ctx.Value(utils.UserKey).(*schemas.User)
}

func writeServiceError(ctx *gin.Context, err error) {
	var fieldErrors schemas.FieldErrors
	if errors.As(err, &fieldErrors) {
		utils.WriteAndLogError(ctx, fieldErrors, http.StatusBadRequest, err)
		return
	}
	utils.WriteAndLogInternalError(ctx, err)
}

// writeLookupError answers the public lookup routes. Unlike the account
// operations, which answer every domain failure with 400 so they never
// confirm whether an account exists, a plain profile lookup has nothing
// to hide and uses 404.
func writeLookupError(ctx *gin.Context, err error) {
	var fieldErrors schemas.FieldErrors
	if errors.As(err, &fieldErrors) && fieldErrors[schemas.GlobalKey] == schemas.MsgUserNotFound {
		utils.WriteAndLogError(ctx, fieldErrors, http.StatusNotFound, err)
		return
	}
	writeServiceError(ctx, err)
}

func setSessionCookie(ctx *gin.Context, token string, lifetime time.Duration) {
	ctx.SetCookie("token", token, int(lifetime.Seconds()), "/", os.Getenv("COOKIE_DOMAIN"), true, true)
}

func clearSessionCookie(ctx *gin.Context) {
	ctx.SetCookie("token", "", -1, "/", os.Getenv("COOKIE_DOMAIN"), true, true)
}
