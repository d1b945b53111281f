package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketec/order-system/internal/core/domain"
)

// CatalogHandler exposes the read-only menu to the interactive surface.
type CatalogHandler struct {
	catalog *domain.Catalog
}

func NewCatalogHandler(catalog *domain.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogResponse struct {
	Dishes         []domain.CatalogItem `json:"dishes"`
	Drinks         []domain.CatalogItem `json:"drinks"`
	PaymentMethods []string             `json:"payment_methods"`
}

// Get returns the menu: dishes, drinks and accepted payment methods.
//
// @Summary      Fetch the menu
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  catalogResponse
// @Router       /catalog [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	resp := catalogResponse{PaymentMethods: h.catalog.PaymentMethods()}
	for _, item := range h.catalog.Items() {
		switch item.Category {
		case domain.CategoryDish:
			resp.Dishes = append(resp.Dishes, item)
		case domain.CategoryDrink:
			resp.Drinks = append(resp.Drinks, item)
		}
	}
	return c.JSON(http.StatusOK, resp)
}
