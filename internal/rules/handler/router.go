package handler

import (
	"github.com/julienschmidt/httprouter"
)

// CatalogHandler aggregates the pricing-catalog admin endpoints: rules,
// holidays, and suite capacity configs.
type CatalogHandler struct {
	rules        *RuleHandler
	holidays     *HolidayHandler
	suiteConfigs *SuiteConfigHandler
}

func NewCatalogHandler(
	rules *RuleHandler,
	holidays *HolidayHandler,
	suiteConfigs *SuiteConfigHandler,
) *CatalogHandler {
	return &CatalogHandler{
		rules:        rules,
		holidays:     holidays,
		suiteConfigs: suiteConfigs,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rules", h.rules.Create)
	router.GET("/api/v1/rules", h.rules.GetAll)
	router.GET("/api/v1/rules/active", h.rules.GetActive)
	router.GET("/api/v1/rules/id/:id", h.rules.GetByID)
	router.PATCH("/api/v1/rules/id/:id", h.rules.Update)
	router.DELETE("/api/v1/rules/id/:id", h.rules.Delete)

	router.POST("/api/v1/holidays", h.holidays.Create)
	router.GET("/api/v1/holidays", h.holidays.GetAll)
	router.GET("/api/v1/holidays/id/:id", h.holidays.GetByID)
	router.PUT("/api/v1/holidays/id/:id", h.holidays.Update)
	router.DELETE("/api/v1/holidays/id/:id", h.holidays.Delete)

	router.POST("/api/v1/suite-configs", h.suiteConfigs.Create)
	router.GET("/api/v1/suite-configs", h.suiteConfigs.GetAll)
	router.GET("/api/v1/suite-configs/id/:id", h.suiteConfigs.GetByID)
	router.GET("/api/v1/suite-configs/type/:suiteType", h.suiteConfigs.GetBySuiteType)
	router.PUT("/api/v1/suite-configs/id/:id", h.suiteConfigs.Update)
	router.DELETE("/api/v1/suite-configs/id/:id", h.suiteConfigs.Delete)
}
