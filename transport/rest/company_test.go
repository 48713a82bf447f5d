package rest

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
	"github.com/ritmofit/ritmo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyControllerMetrics(t *testing.T) {
	assert := assert.New(t)

	controller := CompanyController{
		Metrics: mock.MetricsStore{
			CompanyFn: func(ctx context.Context) (ritmo.CompanyMetrics, error) {
				return ritmo.CompanyMetrics{
					Name:            "Ritmo",
					LogoUrl:         "https://ritmo.test/logo.png",
					TotalActivities: 42,
					TotalCalories:   12345.5,
				}, nil
			},
		},
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(app)

	req := httptest.NewRequest("GET", "/company-metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(`{"name":"Ritmo","logoUrl":"https://ritmo.test/logo.png",`+
		`"totalActivities":42,"totalCalories":12345.5}`, string(body))
}

func TestCompanyControllerMetricsMissing(t *testing.T) {
	assert := assert.New(t)

	controller := CompanyController{
		Metrics: mock.MetricsStore{
			CompanyFn: func(ctx context.Context) (ritmo.CompanyMetrics, error) {
				return ritmo.CompanyMetrics{}, ritmo.ErrCompanyNotFound
			},
		},
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(app)

	req := httptest.NewRequest("GET", "/company-metrics", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(`{"error_message":"company not found"}`, string(body))
}
