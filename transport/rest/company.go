package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
)

type CompanyController struct {
	Metrics ritmo.MetricsStore
}

func (c *CompanyController) InstallTo(app *fiber.App) {
	app.Get("/company-metrics", c.serveMetrics)
}

func (c *CompanyController) serveMetrics(ctx *fiber.Ctx) error {
	company, err := c.Metrics.Company(ctx.Context())
	if err != nil {
		return domainError(fmt.Errorf("get company metrics: %w", err))
	}

	type CompanyResponse struct {
		Name            string  `json:"name"`
		LogoUrl         string  `json:"logoUrl"`
		TotalActivities int     `json:"totalActivities"`
		TotalCalories   float64 `json:"totalCalories"`
	}
	return ctx.JSON(CompanyResponse{
		Name:            company.Name,
		LogoUrl:         company.LogoUrl,
		TotalActivities: company.TotalActivities,
		TotalCalories:   company.TotalCalories,
	})
}
