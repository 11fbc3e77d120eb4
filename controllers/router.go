package controllers

import (
	"github.com/gin-gonic/gin"
)

type Router struct {
	HealthController    *HealthController
	InfoController      *InfoController
	CompaniesController *CompaniesController
	SearchController    *SearchController
}

func (r Router) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", r.HealthController.Status)

	router.GET("/", r.InfoController.Index)
	router.GET("/examples", r.InfoController.Examples)
	router.GET("/test", r.InfoController.Test)

	router.GET("/company/:country/:name", r.CompaniesController.GetCompany)
	router.GET("/search/:country/:name", r.SearchController.Search)
}
