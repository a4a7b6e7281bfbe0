package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-conteo/internal/application/counting"
)

// ProductHandler consulta el cadastro de materiales.
type ProductHandler struct {
	uc *counting.CountingUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *counting.CountingUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// GetByCode godoc
// @Summary      Buscar produto por código
// @Description  Devuelve descripción, categoría y lotes conocidos
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        code  path  string  true  "Código do produto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.LookupProduct(c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
