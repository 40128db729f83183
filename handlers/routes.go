package handlers

import (
	"jacha_aru_api_go/middleware"
	"jacha_aru_api_go/models"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var consultaRoutes = []struct {
	path string
	kind models.ConsultaKind
}{
	{"rapidas", models.KindRapida},
	{"filtros", models.KindFiltro},
	{"complejas", models.KindCompleja},
}

// NewRouter builds the echo instance with the full middleware stack and
// every route registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.Recover())
	if deps.Config != nil {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: deps.Config.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(WithDependencies(deps))

	RegisterRoutes(e, deps)
	return e
}

// RegisterRoutes attaches the API routes to e
func RegisterRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/health", HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authLimit := 10
	if deps.Config != nil && deps.Config.RateLimitAuth > 0 {
		authLimit = deps.Config.RateLimitAuth
	}
	auth := e.Group("/auth")
	auth.Use(middleware.AuthRateLimiter(authLimit).Middleware())
	auth.Use(middleware.AuditContext())
	{
		auth.POST("/register", RegisterHandler)
		auth.POST("/login", LoginHandler)
	}

	// Everything below requires a bearer token
	guard := []echo.MiddlewareFunc{middleware.RequireAuth(deps.Tokens), middleware.AuditContext()}

	u := e.Group("/usuarios", guard...)
	{
		u.GET("", usuarios.List)
		u.GET("/me", GetMeHandler)
		u.PUT("/me", UpdateMeHandler)
		u.GET("/:id", usuarios.Get)
		u.PUT("/:id", UpdateUsuarioHandler)
		u.DELETE("/:id", usuarios.Delete)
	}

	cat := e.Group("/categorias", guard...)
	{
		cat.GET("", categorias.List)
		cat.POST("", CreateCategoriaHandler)
		cat.GET("/:id", categorias.Get)
		cat.PUT("/:id", UpdateCategoriaHandler)
		cat.DELETE("/:id", categorias.Delete)
		cat.GET("/:id/temas", ListCategoriaTemasHandler)
	}

	tem := e.Group("/temas", guard...)
	{
		tem.GET("", temas.List)
		tem.POST("", CreateTemaHandler)
		tem.GET("/:id", temas.Get)
		tem.PUT("/:id", UpdateTemaHandler)
		tem.DELETE("/:id", temas.Delete)
		tem.GET("/:id/indicadores", ListTemaIndicadoresHandler)
	}

	ind := e.Group("/indicadores", guard...)
	{
		ind.GET("", indicadores.List)
		ind.POST("", CreateIndicadorHandler)
		ind.GET("/:id", indicadores.Get)
		ind.PUT("/:id", UpdateIndicadorHandler)
		ind.DELETE("/:id", indicadores.Delete)
	}

	tipos := e.Group("/tipos-desegregacion", guard...)
	{
		tipos.GET("", tiposDesegregacion.List)
		tipos.POST("", CreateTipoDesegregacionHandler)
		tipos.GET("/:id", tiposDesegregacion.Get)
		tipos.PUT("/:id", UpdateTipoDesegregacionHandler)
		tipos.DELETE("/:id", tiposDesegregacion.Delete)
		tipos.GET("/:id/desegregaciones", ListTipoDesegregacionesHandler)
	}

	des := e.Group("/desegregaciones", guard...)
	{
		des.GET("", desegregaciones.List)
		des.POST("", CreateDesegregacionHandler)
		des.GET("/:id", desegregaciones.Get)
		des.PUT("/:id", UpdateDesegregacionHandler)
		des.DELETE("/:id", desegregaciones.Delete)
	}

	fue := e.Group("/fuentes", guard...)
	{
		fue.GET("", fuentes.List)
		fue.POST("", CreateFuenteHandler)
		fue.GET("/:id", fuentes.Get)
		fue.PUT("/:id", UpdateFuenteHandler)
		fue.DELETE("/:id", fuentes.Delete)
	}

	yrs := e.Group("/years", guard...)
	{
		yrs.GET("", years.List)
		yrs.POST("", CreateYearHandler)
		yrs.GET("/:id", years.Get)
		yrs.PUT("/:id", UpdateYearHandler)
		yrs.DELETE("/:id", years.Delete)
	}

	fic := e.Group("/fichas", guard...)
	{
		fic.GET("", fichas.List)
		fic.POST("", CreateFichaHandler)
		fic.GET("/:id", fichas.Get)
		fic.PUT("/:id", UpdateFichaHandler)
		fic.DELETE("/:id", fichas.Delete)
	}

	fil := e.Group("/filtros", guard...)
	{
		fil.GET("", ListFiltrosHandler)
		fil.POST("", CreateFiltroHandler)
		fil.GET("/export", ExportFiltrosHandler)
		fil.GET("/:id", filtros.Get)
		fil.PUT("/:id", UpdateFiltroHandler)
		fil.DELETE("/:id", filtros.Delete)
	}

	inv := e.Group("/investigadores", guard...)
	{
		inv.GET("", investigadores.List)
		inv.POST("", CreateInvestigadorHandler)
		inv.GET("/:id", investigadores.Get)
		inv.PUT("/:id", UpdateInvestigadorHandler)
		inv.DELETE("/:id", investigadores.Delete)
		inv.GET("/:id/consultas", ListInvestigadorConsultasHandler)
	}

	for _, r := range consultaRoutes {
		g := e.Group("/consultas/"+r.path, guard...)
		g.GET("", ListConsultasHandler(r.kind))
		g.POST("", CreateConsultaHandler(r.kind))
		g.GET("/all", ListAllConsultasHandler(r.kind))
		g.GET("/:id", GetConsultaHandler(r.kind))
		g.PUT("/:id", UpdateConsultaHandler(r.kind))
		g.DELETE("/:id", DeleteConsultaHandler(r.kind))
		g.GET("/:id/respuestas", ListRespuestasHandler(r.kind))
		g.POST("/:id/respuestas", CreateRespuestaHandler(r.kind), echomiddleware.BodyLimit("25M"))

		resp := e.Group("/respuestas/"+r.path, guard...)
		resp.DELETE("/:id", DeleteRespuestaHandler(r.kind))
		resp.GET("/:id/documento", DownloadRespuestaDocumentHandler(r.kind))
	}

	e.GET("/audit/:resource/:id", GetResourceHistoryHandler, guard...)
	e.GET("/security/alerts", ListSecurityAlertsHandler, guard...)
}
