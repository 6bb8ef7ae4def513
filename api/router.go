package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	_ "github.com/nemopss/pennywise/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route. Everything except /, /register, /login and
// the API docs sits behind AuthMiddleware.
func NewRouter(h *Handler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery())

	r.GET("/", h.Root)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	protected := r.Group("/", h.AuthMiddleware())
	protected.GET("/protected", h.Protected)

	protected.POST("/expenses/", h.CreateExpense)
	protected.GET("/expenses/", h.GetExpenses)
	protected.GET("/expenses/graph", h.GetExpensesGraph)
	protected.DELETE("/expenses/:id", h.DeleteExpense)

	protected.POST("/goals/", h.CreateGoal)
	protected.GET("/goals/", h.GetGoals)
	protected.PATCH("/goals/:id", h.UpdateGoal)
	protected.DELETE("/goals/:id", h.DeleteGoal)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
