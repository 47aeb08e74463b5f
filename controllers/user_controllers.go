package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/middlewares"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPasswordMismatch    = errors.New("Passwords do not match.")
	ErrNewPasswordMismatch = errors.New("New passwords do not match.")
	ErrWrongPassword       = errors.New("Current password is incorrect.")
	ErrEmailTaken          = errors.New("A user with this email already exists.")
	ErrInvalidCredentials  = errors.New("Invalid email or password.")
	ErrAccountDisabled     = errors.New("User account is disabled.")
	ErrUserNotFound        = errors.New("User not found.")
	ErrInvalidRefresh      = errors.New("Invalid or expired refresh token.")
)

type UserController struct {
	DB        *gorm.DB
	Blacklist services.TokenBlacklist
}

func NewUserController(db *gorm.DB, blacklist services.TokenBlacklist) *UserController {
	if blacklist == nil {
		blacklist = services.NewMemoryBlacklist()
	}
	return &UserController{DB: db, Blacklist: blacklist}
}

type signupRequest struct {
	FirstName       string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName        string  `json:"last_name" binding:"required,min=2,max=100"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone" binding:"omitempty,max=20"`
	Avatar          *string `json:"avatar" binding:"omitempty,max=255"`
	Password        string  `json:"password" binding:"required,min=6,max=128"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,min=6,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Avatar    *string `json:"avatar" binding:"omitempty,max=255"`
}

type changePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,min=6,max=128"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required,min=6,max=128"`
}

// Signup registers a user and issues its first token pair.
func (uc *UserController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Password != req.PasswordConfirm {
		utils.RespondError(c, http.StatusBadRequest, ErrPasswordMismatch)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var count int64
	if err := uc.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to check email")
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrEmailTaken)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Phone:     req.Phone,
		Avatar:    req.Avatar,
		Password:  string(hashed),
		IsActive:  true,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusBadRequest, ErrEmailTaken)
			return
		}
		utils.ErrorLogger.WithError(err).Error("Failed to create user")
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	tokens, ok := uc.issueTokens(c, &user)
	if !ok {
		return
	}

	utils.InfoLogger.WithField("user_id", user.UserID).Info("New user registered")
	utils.RespondJSON(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":   user.Response(),
		"tokens": tokens,
	})
}

func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := uc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if !user.IsActive {
		utils.RespondError(c, http.StatusForbidden, ErrAccountDisabled)
		return
	}

	tokens, ok := uc.issueTokens(c, &user)
	if !ok {
		return
	}

	utils.InfoLogger.WithField("user_id", user.UserID).Info("Login successful")
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"user":   user.Response(),
		"tokens": tokens,
	})
}

// Logout clears the stored tokens and revokes the presented access token
// for the rest of its lifetime.
func (uc *UserController) Logout(c *gin.Context) {
	user, ok := uc.currentUser(c)
	if !ok {
		return
	}

	user.Token = nil
	user.RefreshToken = nil
	if err := uc.DB.Save(user).Error; err != nil {
		utils.ErrorLogger.WithError(err).WithField("user_id", user.UserID).Error("Failed to clear tokens on logout")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Something went wrong"))
		return
	}

	token := c.GetString(middlewares.ContextToken)
	ttl := time.Hour
	if expiry, ok := c.Get(middlewares.ContextTokenExpiry); ok {
		if t, ok := expiry.(time.Time); ok && !t.IsZero() {
			ttl = time.Until(t)
		}
	}
	if token != "" && ttl > 0 {
		if err := uc.Blacklist.Revoke(c.Request.Context(), token, ttl); err != nil {
			utils.ErrorLogger.WithError(err).WithField("user_id", user.UserID).Error("Failed to revoke token on logout")
			utils.RespondError(c, http.StatusInternalServerError, errors.New("Something went wrong"))
			return
		}
	}

	utils.InfoLogger.WithField("user_id", user.UserID).Info("Logout successful")
	utils.RespondJSON(c, http.StatusOK, "Logout successful", nil)
}

// RefreshToken issues a new access token for a refresh token that is still
// the one stored on the user.
func (uc *UserController) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	claims, err := utils.ParseToken(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidRefresh)
		return
	}

	var user models.User
	if err := uc.DB.Where("user_id = ?", claims.UserID).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidRefresh)
		return
	}
	if !user.IsActive || user.RefreshToken == nil || *user.RefreshToken != req.Refresh {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidRefresh)
		return
	}

	access, err := utils.GenerateToken(user.UserID, user.Email, utils.TokenTypeAccess)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	user.Token = &access
	if err := uc.DB.Save(&user).Error; err != nil {
		utils.ErrorLogger.WithError(err).WithField("user_id", user.UserID).Warn("Failed to persist refreshed access token")
	}

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{"access": access})
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var total int64
	if err := uc.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	var users []models.User
	if err := uc.DB.Order("id").Offset(int(p.Skip())).Limit(int(p.PerPage)).Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].Response())
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", listResponse("users", out, total, p))
}

func (uc *UserController) GetUser(c *gin.Context) {
	var user models.User
	if err := uc.DB.Where("user_id = ?", c.Param("user_id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrUserNotFound)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User detail", user.Response())
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := uc.currentUser(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user.Response())
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, ok := uc.currentUser(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := uc.DB.Save(user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated successfully", user.Response())
}

func (uc *UserController) ChangePassword(c *gin.Context) {
	user, ok := uc.currentUser(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrWrongPassword)
		return
	}
	if req.NewPassword != req.NewPasswordConfirm {
		utils.RespondError(c, http.StatusBadRequest, ErrNewPasswordMismatch)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}
	user.Password = string(hashed)
	if err := uc.DB.Save(user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return
	}

	utils.InfoLogger.WithField("user_id", user.UserID).Info("Password changed")
	utils.RespondJSON(c, http.StatusOK, "Password changed successfully", nil)
}

// currentUser loads the user set by the auth middleware.
func (uc *UserController) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetString(middlewares.ContextUserID)
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return nil, false
	}

	var user models.User
	if err := uc.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrUserNotFound)
		return nil, false
	}
	return &user, true
}

// issueTokens generates a token pair and stores it on the user.
func (uc *UserController) issueTokens(c *gin.Context, user *models.User) (utils.TokenPair, bool) {
	tokens, err := utils.GenerateTokenPair(user.UserID, user.Email)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return utils.TokenPair{}, false
	}

	user.Token = &tokens.Access
	user.RefreshToken = &tokens.Refresh
	if err := uc.DB.Save(user).Error; err != nil {
		utils.ErrorLogger.WithError(err).WithField("user_id", user.UserID).Error("Failed to store tokens")
		utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
		return utils.TokenPair{}, false
	}
	return tokens, true
}
