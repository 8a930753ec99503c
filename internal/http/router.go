package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// serviceTokenSecret vacio deja los endpoints de escritura sin guardia.
func NewRouter(
	logger *zap.Logger,
	assessH *AssessmentHandler,
	signalH *SignalHandler,
	predH *PredictionHandler,
	profileH *ProfileHandler,
	digestH *DigestHandler,
	serviceTokenSecret string,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	guard := ServiceTokenMiddleware(serviceTokenSecret)

	assessment := r.Group("/assessment")
	assessment.GET("/:subjectID/questions", assessH.GetQuestions)
	assessment.POST("/:subjectID/responses", guard, assessH.SubmitResponses)

	profiles := r.Group("/profiles")
	profiles.GET("/:subjectID", profileH.GetProfile)
	profiles.GET("/:subjectID/similar", profileH.GetSimilar)

	r.POST("/signals", guard, signalH.RecordSignal)
	r.POST("/visits", guard, signalH.StartVisit)
	r.POST("/visits/:visitID/end", guard, signalH.EndVisit)

	r.GET("/predictions/:subjectID/:targetID", predH.GetPrediction)
	r.GET("/targets/:targetID/dashboard", signalH.GetDashboard)
	r.POST("/targets/:targetID/digest", guard, digestH.SendDigest)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
