package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Preparicfes/Preparicfes-Actualizado/internal/auth"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/catalog"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/config"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/handlers"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/quiz"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/repository"
	"github.com/Preparicfes/Preparicfes-Actualizado/internal/services"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Demasiados intentos. Intenta de nuevo más tarde.")
}

// Setup wires repositories, handlers and the middleware chain.
func Setup(log *zap.Logger, db *gorm.DB, cat *catalog.Catalog) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400,
	})
	router.Use(sessions.Sessions("preparicfes_session", store))
	router.Use(CSRFProtection())

	issuer := auth.NewTokenIssuer(
		config.Conf.Auth.JWTSecret,
		time.Duration(config.Conf.Auth.TokenTTLMinutes)*time.Minute,
	)
	router.Use(UserLoaderMiddleware(issuer, log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	router.Static("/static", "./static")
	router.LoadHTMLGlob("templates/*.html")

	// Repositories share the one explicitly constructed DB handle.
	users := repository.NewUserRepo(db)
	questions := repository.NewQuestionRepo(db)
	draws := repository.NewDrawRepo(db)
	results := repository.NewResultRepo(db)
	resets := repository.NewResetRepo(db)
	sampler := quiz.NewSampler(questions, draws)
	email := services.NewEmailService(log)

	authHandler := handlers.NewAuthHandler(log, users, issuer, cat)
	pagesHandler := handlers.NewPagesHandler()
	questionsHandler := handlers.NewQuestionsHandler(log, cat, sampler, results)
	resultsHandler := handlers.NewResultsHandler(log, results)
	chartsHandler := handlers.NewChartsHandler(log, results)
	userHandler := handlers.NewUserHandler(log, users, issuer, cat)
	resetHandler := handlers.NewResetHandler(log, users, resets, email,
		time.Duration(config.Conf.Auth.ResetTTLMinutes)*time.Minute)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	// Public routes
	router.GET("/", authHandler.ShowLoginPage)
	router.GET("/registrate", authHandler.ShowRegisterPage)
	router.POST("/registrar", limiter, authHandler.Register)
	router.POST("/login", limiter, authHandler.Login)
	router.GET("/cerrar-sesion", authHandler.Logout)
	router.GET("/recuperar", resetHandler.ShowRequestForm)
	router.POST("/recuperar", limiter, resetHandler.Request)
	router.GET("/restablecer", resetHandler.ShowResetForm)
	router.POST("/restablecer", limiter, resetHandler.Do)

	// Browser routes behind authentication
	authorized := router.Group("/")
	authorized.Use(AuthRequired(false))
	{
		authorized.GET("/intro", pagesHandler.Intro)
		authorized.GET("/criterio", pagesHandler.Criterio)
		authorized.GET("/competencias", pagesHandler.Competencias)
		authorized.GET("/preguntas/:materia", questionsHandler.Page)
		authorized.GET("/Resul", resultsHandler.ShowResults)
		authorized.GET("/Resul/grafica", chartsHandler.ScoreChart)
		authorized.GET("/usuario", userHandler.ShowProfilePage)
		authorized.POST("/editar-usuario", userHandler.UpdateProfile)
		authorized.POST("/eliminar-usuario", userHandler.DeleteAccount)
	}

	// JSON API behind authentication
	api := router.Group("/api")
	api.Use(AuthRequired(true))
	{
		api.GET("/preguntas/:materia", questionsHandler.List)
		api.POST("/guardar-respuestas", questionsHandler.SaveAnswers)
	}

	return router
}
