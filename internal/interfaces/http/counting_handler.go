package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/application/dto"
)

// CountingHandler expone el libro de conteo del operador autenticado.
type CountingHandler struct {
	uc *counting.CountingUseCase
}

// NewCountingHandler construye el handler.
func NewCountingHandler(uc *counting.CountingUseCase) *CountingHandler {
	return &CountingHandler{uc: uc}
}

// List godoc
// @Summary      Registros contados
// @Tags         counts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CountListResponse
// @Router       /api/counts [get]
func (h *CountingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetOperator(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Lançar quantidade
// @Description  Suma la cantidad al par (código, lote) y devuelve el total acumulado
// @Tags         counts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RecordCountRequest  true  "code, selected_lot|new_lot, quantity"
// @Success      201   {object}  dto.RecordCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/counts [post]
func (h *CountingHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Undo godoc
// @Summary      Corrigir último lançamento
// @Tags         counts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.HistoryEntryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/counts/undo [post]
func (h *CountingHandler) Undo(c *fiber.Ctx) error {
	out, err := h.uc.UndoLast(GetOperator(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Limpar lançamentos
// @Description  Descarta todo el libro del operador. Requiere rol supervisor.
// @Tags         counts
// @Security     BearerAuth
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/counts [delete]
func (h *CountingHandler) Clear(c *fiber.Ctx) error {
	h.uc.Clear(GetOperator(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar planilha
// @Description  Genera el xlsx con todos los registros; rodada y tipo solo nombran el archivo
// @Tags         counts
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        body  body  dto.ExportRequest  true  "round, material_type"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/counts/export [post]
func (h *CountingHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Export(c.UserContext(), GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, res)
}

// Report godoc
// @Summary      Relatório PDF
// @Tags         counts
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        body  body  dto.ExportRequest  true  "round, material_type"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/counts/report [post]
func (h *CountingHandler) Report(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Report(c.UserContext(), GetOperator(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, res)
}

func sendFile(c *fiber.Ctx, res *counting.ExportResult) error {
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.FileName+`"`)
	c.Set("X-Export-Rows", strconv.Itoa(res.Rows))
	return c.Send(res.Data)
}
