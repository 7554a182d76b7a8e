package rest

import (
	"myWellnessCentre/domain"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// ListServices returns the treatments offered at the centre.
func ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.Services))
}
