package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-system/internal/api/metrics"
	"github.com/staffdesk/employee-system/internal/core/domain"
	"github.com/staffdesk/employee-system/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List returns a filtered, paginated page of employees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        perPage  query     int     false  "Page size (default 10, max 100)"
// @Param        search   query     string  false  "Substring filter over name, username, email, department, position"
// @Param        status   query     string  false  "active or inactive"
// @Success      200      {object}  listEmployeesResponse
// @Failure      401      {object}  errorEnvelope
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("perPage"))

	result, err := h.service.List(c.Request().Context(), ports.ListEmployeesInput{
		Search:  c.QueryParam("search"),
		Status:  c.QueryParam("status"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get returns a single employee by id.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  employeeResponse
// @Failure      404  {object}  errorEnvelope
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	emp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeResponse{Data: emp})
}

// Create adds a new employee record. Admin only.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  employeeResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	emp, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, employeeResponse{Data: emp})
}

// Update applies a partial update to an employee. Admin only.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to change"
// @Success      200   {object}  employeeResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	emp, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, employeeResponse{Data: emp})
}

// Delete removes an employee record. Admin only.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorEnvelope
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		metrics.EmployeeMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Employee deleted successfully"})
}

// CheckUsername reports whether a username is free. Admin only.
//
// @Summary      Check username availability
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        username   query     string  true   "Username to check"
// @Param        excludeId  query     string  false  "Record to ignore (when editing)"
// @Success      200        {object}  availabilityResponse
// @Failure      400        {object}  errorEnvelope
// @Router       /api/employees/check/username [get]
func (h *EmployeeHandler) CheckUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	available, err := h.service.UsernameAvailable(c.Request().Context(), username, c.QueryParam("excludeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: available})
}

// CheckEmail reports whether an email is free. Admin only.
//
// @Summary      Check email availability
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        email      query     string  true   "Email to check"
// @Param        excludeId  query     string  false  "Record to ignore (when editing)"
// @Success      200        {object}  availabilityResponse
// @Failure      400        {object}  errorEnvelope
// @Router       /api/employees/check/email [get]
func (h *EmployeeHandler) CheckEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	available, err := h.service.EmailAvailable(c.Request().Context(), email, c.QueryParam("excludeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: available})
}

// Stats returns collection statistics. Admin only.
//
// @Summary      Employee statistics
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /api/employees/stats [get]
func (h *EmployeeHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Total: stats.Total, Active: stats.Active, Inactive: stats.Inactive})
}

func mutationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		return "conflict"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return "not_found"
	default:
		return "error"
	}
}
