package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/yoom/internal/api/http/converter"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/identity"
	"github.com/immxrtalbeast/yoom/internal/service"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

// APIController serves the JSON endpoints used by the browser call client.
type APIController struct {
	calls   service.CallInteractor
	baseURL string
	apiKey  string
	log     *slog.Logger
	now     func() time.Time
}

func NewAPIController(calls service.CallInteractor, baseURL string, apiKey string, log *slog.Logger) *APIController {
	if log == nil {
		log = slog.Default()
	}
	return &APIController{
		calls:   calls,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		now:     time.Now,
	}
}

func (c *APIController) Token(ctx *gin.Context) {
	const op = "api.http.api.token"

	user := identity.UserFrom(ctx)
	token, expiresAt, err := c.calls.ClientToken(user)
	if err != nil {
		c.log.Error("failed to issue token", slog.String("op", op), sl.Err(err))
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, converter.TokenResponse{
		Token:     token,
		APIKey:    c.apiKey,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	})
}

func (c *APIController) GetCall(ctx *gin.Context) {
	call, err := c.calls.GetMeeting(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"call": converter.CallToApi(call, c.baseURL, c.now())})
}

// AddRecording registers a recording produced outside the platform, such as
// by a self-hosted recorder, for one of the caller's meetings.
func (c *APIController) AddRecording(ctx *gin.Context) {
	const op = "api.http.api.addRecording"

	type AddRecordingRequest struct {
		Filename  string    `json:"filename" binding:"required"`
		URL       string    `json:"url" binding:"required"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	}
	var req AddRecordingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	recording := &domain.Recording{
		CallType:  domain.DefaultCallType,
		CallID:    ctx.Param("id"),
		Filename:  req.Filename,
		URL:       req.URL,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
	}

	err := c.calls.AddRecording(ctx.Request.Context(), identity.UserFrom(ctx), recording)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, gin.H{"recording": converter.RecordingToApi(recording)})
	case errors.Is(err, service.ErrInvalidRecording):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMeetingNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecordingExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRecordingsReadOnly):
		ctx.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	default:
		c.log.Error("failed to add recording", slog.String("op", op), sl.Err(err))
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
	}
}
