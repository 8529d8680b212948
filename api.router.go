package main

import (
	"net/http"

	_ "github.com/demo-bookstore/bookstore-api/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// SetupRoutes injects book and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupBookRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/swagger/*any", m.public(api.SwaggerHandlerWrapper(httpswagger.WrapHandler)))
	return router
}

// SetupBookRoutes injects book related api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.POST("/api/book", m.public(api.CreateBook))
	router.GET("/api/book", m.public(api.GetAllBooks))
	router.GET("/api/book/:id", m.public(api.GetOneBook))
	router.PUT("/api/book/:bookId", m.public(api.UpdateBook))
	router.DELETE("/api/book/:id", m.public(api.DeleteOneBook))
	return router
}

// SetupOpsRoutes injects internal operations related endpoints.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/ops/configs", m.ops(api.GetConfigs))
	router.GET("/ops/stats", m.ops(api.GetStatistics))
	router.GET("/ops/audit", m.ops(api.GetAuditTrail))
	return router
}

// SwaggerHandlerWrapper converts the swagger http handler
// to the httprouter handle format.
func (api *APIHandler) SwaggerHandlerWrapper(handler http.Handler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handler.ServeHTTP(w, r)
	}
}
