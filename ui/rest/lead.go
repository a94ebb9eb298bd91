package rest

import (
	"github.com/gofiber/fiber/v2"
	domainLead "github.com/sibinaravind/lead-management-back-sub001/domains/lead"
	"github.com/sibinaravind/lead-management-back-sub001/pkg/utils"
)

type Lead struct {
	Service domainLead.ILeadUsecase
}

func InitRestLead(app fiber.Router, service domainLead.ILeadUsecase) Lead {
	rest := Lead{Service: service}
	app.Get("/leads", rest.List)
	app.Get("/leads/:phone", rest.Get)
	app.Put("/leads/status", rest.UpdateStatus)

	return rest
}

func (controller *Lead) List(c *fiber.Ctx) error {
	var request domainLead.ListRequest
	err := c.QueryParser(&request)
	utils.PanicIfNeeded(err)

	response, err := controller.Service.List(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Leads fetched",
		Results: response,
	})
}

func (controller *Lead) Get(c *fiber.Ctx) error {
	lead, err := controller.Service.Get(c.UserContext(), c.Params("phone"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Lead fetched",
		Results: lead,
	})
}

func (controller *Lead) UpdateStatus(c *fiber.Ctx) error {
	var request domainLead.StatusUpdateRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	err = controller.Service.UpdateStatus(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Lead status updated",
		Results: nil,
	})
}
