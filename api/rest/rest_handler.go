package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labstack/gommon/log"
	"github.com/syncnotes/syncnotes/auth"
	"github.com/syncnotes/syncnotes/service"
)

const userIdKey = "user_id"

type Handler struct {
	Service  *service.Service
	Verifier auth.Verifier
}

func NewHandler(svc *service.Service, verifier auth.Verifier) *Handler {
	return &Handler{Service: svc, Verifier: verifier}
}

type errorBody struct {
	Code    service.Code `json:"code"`
	Message string       `json:"message"`
}

type response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func (h *Handler) Health(ctx *gin.Context) {
	ctx.String(http.StatusOK, "OK")
}

// MustAuthenticate rejects requests without a valid bearer token and stores
// the caller's id on the context.
func (h *Handler) MustAuthenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, err := h.Verifier.Verify(BearerToken(ctx.Request))
		if err != nil {
			h.sendError(ctx, service.ErrUnauthenticated)
			ctx.Abort()
			return
		}
		ctx.Set(userIdKey, userId)
		ctx.Next()
	}
}

func (h *Handler) GetMe(ctx *gin.Context) {
	user, err := h.Service.GetProfile(ctx.Request.Context(), ctx.GetString(userIdKey))
	if err != nil {
		h.sendError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response{Success: true, Data: user})
}

func (h *Handler) sendError(ctx *gin.Context, err error) {
	code := service.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		log.Debugf("rest: %s %s failed: %v", ctx.Request.Method, ctx.FullPath(), err)
	}
	ctx.JSON(status, response{
		Success: false,
		Error:   &errorBody{Code: code, Message: service.MessageOf(err)},
	})
}

func statusFor(code service.Code) int {
	switch code {
	case service.CodeUnauthenticated:
		return http.StatusUnauthorized
	case service.CodeAccessDenied:
		return http.StatusForbidden
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
