package controller

import (
	"errors"

	"clinic-assist-be/internal/dto"
	"clinic-assist-be/internal/pkg/serverutils"
	"clinic-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type appointmentController struct {
	appointmentService service.IAppointmentService
}

func NewAppointmentController(appointmentService service.IAppointmentService) IAppointmentController {
	return &appointmentController{
		appointmentService: appointmentService,
	}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/appointment/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Post("cancel", c.Cancel)
}

func (c *appointmentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.appointmentService.CreateAppointment(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create appointment", res))
}

func (c *appointmentController) List(ctx *fiber.Ctx) error {
	patientName := ctx.Query("patient_name")
	date := ctx.Query("date")

	res, err := c.appointmentService.GetAppointments(ctx.Context(), patientName, date)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list appointments", res))
}

func (c *appointmentController) Cancel(ctx *fiber.Ctx) error {
	var req dto.CancelAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.appointmentService.CancelAppointment(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel appointment", res))
}
