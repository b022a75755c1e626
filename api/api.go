package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/syncnotes/syncnotes/api/rest"
	"github.com/syncnotes/syncnotes/api/ws"
	"github.com/syncnotes/syncnotes/auth"
	"github.com/syncnotes/syncnotes/service"
	"github.com/syncnotes/syncnotes/session"
)

// accessTokenParam carries the bearer token on the hub path, where browsers
// cannot set headers.
const accessTokenParam = "access_token"

type SyncNotesAPI struct {
	restHandler *rest.Handler
	wsHandler   *ws.Handler
	shutdownCtx context.Context
}

func NewSyncNotesAPI(
	svc *service.Service,
	sessions *session.Controller,
	verifier auth.Verifier,
	clientOptions ws.ClientOptions,
	shutdownCtx context.Context,
) *SyncNotesAPI {
	return &SyncNotesAPI{
		restHandler: rest.NewHandler(svc, verifier),
		wsHandler:   ws.NewHandler(svc, sessions, clientOptions),
		shutdownCtx: shutdownCtx,
	}
}

func (a *SyncNotesAPI) RegisterRoutes(router *gin.Engine, hubPath string, allowedOrigins []string) {
	router.Use(corsMiddleware(allowedOrigins))

	// Health check endpoint (no auth required)
	router.GET("/health", a.restHandler.Health)

	router.GET("/me", a.restHandler.MustAuthenticate(), a.restHandler.GetMe)

	wsUpgrader := a.wsHandler.NewWsUpgrader(allowedOrigins)
	router.GET(hubPath, func(ctx *gin.Context) {
		a.wsHandler.ServeWS(wsUpgrader, ctx.Writer, ctx.Request, hubToken(ctx.Request), a.shutdownCtx)
	})
}

// hubToken prefers the Authorization header and falls back to the query
// parameter.
func hubToken(r *http.Request) string {
	if token := rest.BearerToken(r); token != "" {
		return token
	}
	return r.URL.Query().Get(accessTokenParam)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")
		if origin != "" && slices.Contains(allowedOrigins, origin) {
			h := ctx.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
			h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			h.Add("Vary", "Origin")
		}
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
