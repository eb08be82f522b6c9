package router

import (
	"soundgate/internal/handler"

	"github.com/gin-gonic/gin"
)

type CreditsRouter struct {
	creditsHandler *handler.CreditsHandler
}

func NewCreditsRouter(creditsHandler *handler.CreditsHandler) *CreditsRouter {
	return &CreditsRouter{creditsHandler: creditsHandler}
}

func (creditsRouter *CreditsRouter) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/api/credits")
	{
		g.GET("", creditsRouter.creditsHandler.GetCredits)
		g.GET("/costs", creditsRouter.creditsHandler.GetCosts)
	}
}
