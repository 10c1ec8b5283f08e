package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"devmatch/internal/domain"
	"devmatch/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	requests    service.RequestService
	feed        service.FeedService
	tokens      *tokenManager
	allowOrigin string
}

func NewHandler(users service.UserService, requests service.RequestService, feed service.FeedService, jwtSecret string, tokenTTL time.Duration, allowOrigin string) *Handler {
	return &Handler{
		users:       users,
		requests:    requests,
		feed:        feed,
		tokens:      newTokenManager(jwtSecret, tokenTTL),
		allowOrigin: allowOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.allowOrigin))

	router.POST("/signup", h.signup)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusAccepted, gin.H{"ok": "ok"})
	})

	authed := router.Group("", h.requireAuth())
	{
		authed.GET("/profile/view", h.viewProfile)
		authed.PATCH("/profile/edit", h.editProfile)
		authed.PUT("/profile/change-password", h.changePassword)
		authed.POST("/request/send/:status/:toUserId", h.sendRequest)
		authed.POST("/request/review/:status/:requestId", h.reviewRequest)
		authed.GET("/feed", h.getFeed)
		authed.GET("/user/connections", h.getConnections)
		authed.GET("/user/requests/received", h.getReceivedRequests)
	}
}

func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type signupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"emailId" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"emailId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// editProfileRequest lists every field a user may edit. The edit handler
// decodes with DisallowUnknownFields so any other key is rejected outright.
type editProfileRequest struct {
	FirstName  *string   `json:"firstName"`
	LastName   *string   `json:"lastName"`
	Email      *string   `json:"emailId"`
	Age        *int      `json:"age"`
	Gender     *string   `json:"gender"`
	About      *string   `json:"about"`
	Skills     *[]string `json:"skills"`
	ProfilePic *string   `json:"profilePic"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setAuthCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully!",
		"data":    profileToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"data": profileToResponse(user)})
}

func (h *Handler) logout(c *gin.Context) {
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully!"})
}

func (h *Handler) viewProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": profileToResponse(currentUser(c))})
}

func (h *Handler) editProfile(c *gin.Context) {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	var req editProfileRequest
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid edit field: " + err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, service.ProfileEdit{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Age:        req.Age,
		Gender:     req.Gender,
		About:      req.About,
		Skills:     req.Skills,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": user.FirstName + ", your profile updated successfully!",
		"data":    profileToResponse(user),
	})
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), currentUser(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully!"})
}

func (h *Handler) sendRequest(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("toUserId"), 10, 64)
	if err != nil || targetID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}
	status := domain.RequestStatus(c.Param("status"))

	result, err := h.requests.Send(c.Request.Context(), currentUser(c).ID, targetID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": result.Message,
		"data":    requestToResponse(*result.Request),
	})
}

func (h *Handler) reviewRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || requestID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request id"})
		return
	}
	status := domain.RequestStatus(c.Param("status"))

	request, err := h.requests.Review(c.Request.Context(), currentUser(c).ID, requestID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connection request " + string(request.Status),
		"data":    requestToResponse(*request),
	})
}

func (h *Handler) getFeed(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		limit = 0
	}

	users, err := h.feed.Feed(c.Request.Context(), currentUser(c).ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) getConnections(c *gin.Context) {
	connections, err := h.requests.Connections(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]UserResponse, len(connections))
	for i := range connections {
		resp[i] = userToResponse(connections[i])
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *Handler) getReceivedRequests(c *gin.Context) {
	received, err := h.requests.Received(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ReceivedRequestResponse, len(received))
	for i := range received {
		resp[i] = ReceivedRequestResponse{
			ID:        received[i].Request.ID,
			From:      userToResponse(received[i].From),
			Status:    received[i].Request.Status,
			CreatedAt: received[i].Request.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Data fetched successfully",
		"data":    resp,
	})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

// UserResponse is the safe public projection of a user shown to other users.
// Email and credentials never cross this boundary.
type UserResponse struct {
	ID         int64    `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Age        int      `json:"age,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	About      string   `json:"about,omitempty"`
	Skills     []string `json:"skills"`
	ProfilePic string   `json:"profilePic,omitempty"`
}

// ProfileResponse is what a user sees of their own record.
type ProfileResponse struct {
	UserResponse
	Email     string `json:"emailId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type RequestResponse struct {
	ID         int64                `json:"id"`
	FromUserID int64                `json:"fromUserId"`
	ToUserID   int64                `json:"toUserId"`
	Status     domain.RequestStatus `json:"status"`
	CreatedAt  string               `json:"createdAt"`
	UpdatedAt  string               `json:"updatedAt"`
}

type ReceivedRequestResponse struct {
	ID        int64                `json:"id"`
	From      UserResponse         `json:"fromUser"`
	Status    domain.RequestStatus `json:"status"`
	CreatedAt string               `json:"createdAt"`
}

func userToResponse(user domain.User) UserResponse {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Age:        user.Age,
		Gender:     user.Gender,
		About:      user.About,
		Skills:     skills,
		ProfilePic: user.ProfilePic,
	}
}

func profileToResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		UserResponse: userToResponse(*user),
		Email:        user.Email,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}

func requestToResponse(request domain.ConnectionRequest) RequestResponse {
	return RequestResponse{
		ID:         request.ID,
		FromUserID: request.FromUserID,
		ToUserID:   request.ToUserID,
		Status:     request.Status,
		CreatedAt:  request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  request.UpdatedAt.Format(time.RFC3339),
	}
}
