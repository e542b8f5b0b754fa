package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	userusecases "assetdesk/internal/application/user/usecases"
	workorderusecases "assetdesk/internal/application/workorder/usecases"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// UserHandler serves authentication and account administration.
type UserHandler struct {
	login          *userusecases.LoginUseCase
	wechatLogin    *userusecases.WeChatLoginUseCase
	logout         *userusecases.LogoutUseCase
	changePassword *userusecases.ChangePasswordUseCase
	resetPassword  *userusecases.ResetPasswordUseCase
	createUser     *userusecases.CreateUserUseCase
	updateProfile  *userusecases.UpdateProfileUseCase
	updateRole     *userusecases.UpdateRoleUseCase
	listUsers      *userusecases.ListUsersUseCase
	getUser        *userusecases.GetUserUseCase
	getConfig      *userusecases.GetConfigUseCase
	updateConfig   *userusecases.UpdateConfigUseCase
	listWorkers    *workorderusecases.ListWorkersUseCase
	codec          *id.Codec
	logger         logger.Interface
}

func NewUserHandler(
	login *userusecases.LoginUseCase,
	wechatLogin *userusecases.WeChatLoginUseCase,
	logout *userusecases.LogoutUseCase,
	changePassword *userusecases.ChangePasswordUseCase,
	resetPassword *userusecases.ResetPasswordUseCase,
	createUser *userusecases.CreateUserUseCase,
	updateProfile *userusecases.UpdateProfileUseCase,
	updateRole *userusecases.UpdateRoleUseCase,
	listUsers *userusecases.ListUsersUseCase,
	getUser *userusecases.GetUserUseCase,
	getConfig *userusecases.GetConfigUseCase,
	updateConfig *userusecases.UpdateConfigUseCase,
	listWorkers *workorderusecases.ListWorkersUseCase,
	codec *id.Codec,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		login:          login,
		wechatLogin:    wechatLogin,
		logout:         logout,
		changePassword: changePassword,
		resetPassword:  resetPassword,
		createUser:     createUser,
		updateProfile:  updateProfile,
		updateRole:     updateRole,
		listUsers:      listUsers,
		getUser:        getUser,
		getConfig:      getConfig,
		updateConfig:   updateConfig,
		listWorkers:    listWorkers,
		codec:          codec,
		logger:         logger.Named("user-handler"),
	}
}

type loginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       uint8  `json:"role"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	result, err := h.login.Execute(c.Request.Context(), userusecases.LoginCommand{
		Account:  req.Account,
		Password: req.Password,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, loginResponse{
		Token:      result.Token,
		Name:       result.Name,
		Department: result.Department,
		Role:       uint8(result.Role),
	})
}

// WeChatLogin handles the OAuth redirect from WeChat Work. The code in
// the query is exchanged for the corporate member id.
func (h *UserHandler) WeChatLogin(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.Fail(c, errors.NewValidationError("code is required"))
		return
	}

	result, err := h.wechatLogin.Execute(c.Request.Context(), userusecases.WeChatLoginCommand{Code: code})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, loginResponse{
		Token:      result.Token,
		Name:       result.Name,
		Department: result.Department,
		Role:       uint8(result.Role),
	})
}

// Logout is public so a client with an already expired token can still
// land here. Which session to clear is read from the token's own
// claims, never from the request.
func (h *UserHandler) Logout(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
			token = parts[1]
		}
	}

	if err := h.logout.Execute(c.Request.Context(), userusecases.LogoutCommand{
		Token: token,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

// Alive answers the frontend's session probe with the identity carried
// by the token. Reaching this handler at all means the guard passed.
func (h *UserHandler) Alive(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}
	utils.OK(c, gin.H{
		"name":       claims.Name,
		"department": claims.Dep,
		"role":       uint8(claims.Rol),
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.changePassword.Execute(c.Request.Context(), userusecases.ChangePasswordCommand{
		UID:         claims.UID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type resetPasswordRequest struct {
	UID         string `json:"uid" binding:"required"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	target, err := h.codec.Decode(req.UID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid user id"))
		return
	}

	if err := h.resetPassword.Execute(c.Request.Context(), userusecases.ResetPasswordCommand{
		TargetUID:   target,
		NewPassword: req.NewPassword,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type createUserRequest struct {
	Name       string `json:"name" binding:"required"`
	WorkNumber string `json:"work_number" binding:"required"`
	Department string `json:"department" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	WxID       string `json:"wx_id"`
	Role       uint8  `json:"role"`
	Password   string `json:"password"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	result, err := h.createUser.Execute(c.Request.Context(), userusecases.CreateUserCommand{
		Name:       req.Name,
		WorkNumber: req.WorkNumber,
		Department: req.Department,
		Phone:      req.Phone,
		Email:      req.Email,
		WxID:       req.WxID,
		Role:       authorization.Permission(req.Role),
		Password:   req.Password,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"uid": h.codec.Encode(result.UID), "username": result.Username})
}

type updateProfileRequest struct {
	UID        string  `json:"uid"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Department *string `json:"department"`
	WxID       *string `json:"wx_id"`
}

// UpdateProfile edits contact fields. Without the administrator bit a
// user can only edit their own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	target := claims.UID
	if req.UID != "" {
		decoded, err := h.codec.Decode(req.UID)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid user id"))
			return
		}
		target = decoded
	}
	if target != claims.UID && !authorization.Has(claims.Rol, authorization.PermSuper) {
		utils.Fail(c, errors.NewPermissionDeniedError())
		return
	}

	if err := h.updateProfile.Execute(c.Request.Context(), userusecases.UpdateProfileCommand{
		UID:        target,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		WxID:       req.WxID,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type updateRoleRequest struct {
	UID  string `json:"uid" binding:"required"`
	Role uint8  `json:"role"`
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	target, err := h.codec.Decode(req.UID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid user id"))
		return
	}

	if err := h.updateRole.Execute(c.Request.Context(), userusecases.UpdateRoleCommand{
		TargetUID:     target,
		Role:          authorization.Permission(req.Role),
		RequesterRole: claims.Rol,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type userRow struct {
	UID        string `json:"uid"`
	Username   string `json:"username"`
	WorkNumber string `json:"work_number"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Role       uint8  `json:"role"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	pg := utils.ParsePagination(c)

	result, err := h.listUsers.Execute(c.Request.Context(), userusecases.ListUsersQuery{
		Page:     pg.Page,
		PageSize: pg.PageSize,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows := make([]userRow, 0, len(result.Users))
	for _, profile := range result.Users {
		rows = append(rows, userRow{
			UID:        h.codec.Encode(profile.ID),
			Username:   profile.Username,
			WorkNumber: profile.WorkNumber,
			Name:       profile.Name,
			Department: profile.Department,
			Phone:      profile.Phone,
			Email:      profile.Email,
			Role:       uint8(profile.Role),
		})
	}
	utils.OK(c, utils.PageData{TotalPage: pg.TotalPages(result.Total), TableData: rows})
}

// Info returns the caller's own profile.
func (h *UserHandler) Info(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	profile, err := h.getUser.Execute(c.Request.Context(), claims.UID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, userRow{
		UID:        h.codec.Encode(profile.ID),
		Username:   profile.Username,
		WorkNumber: profile.WorkNumber,
		Name:       profile.Name,
		Department: profile.Department,
		Phone:      profile.Phone,
		Email:      profile.Email,
		Role:       uint8(profile.Role),
	})
}

// DispatchQuery lists profiles carrying the maintenance bit, for the
// dispatcher's worker picker.
func (h *UserHandler) DispatchQuery(c *gin.Context) {
	workers, err := h.listWorkers.Execute(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows := make([]userRow, 0, len(workers))
	for _, profile := range workers {
		rows = append(rows, userRow{
			UID:        h.codec.Encode(profile.ID),
			Name:       profile.Name,
			Department: profile.Department,
			Phone:      profile.Phone,
			Role:       uint8(profile.Role),
		})
	}
	utils.OK(c, rows)
}

func (h *UserHandler) GetConfig(c *gin.Context) {
	config, err := h.getConfig.Execute(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, config)
}

type updateConfigRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

func (h *UserHandler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.updateConfig.Execute(c.Request.Context(), userusecases.UpdateConfigCommand{
		Key:   req.Key,
		Value: req.Value,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}
