package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// EmployeeHandler は従業員コレクションの REST 実装です。
type EmployeeHandler struct {
	svc employee.UseCase
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// Register はルートを /api/employees 配下に登録します。
func (h *EmployeeHandler) Register(r gin.IRouter) {
	group := r.Group("/api/employees")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List は全従業員を返します。
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	data := toEmployeeJSONList(employees)
	c.JSON(http.StatusOK, listResponse{Success: true, Data: data, Count: len(data)})
}

// Get は ID で従業員を返します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse{Success: true, Data: toEmployeeJSON(found)})
}

// Create は従業員を作成します。
func (h *EmployeeHandler) Create(c *gin.Context) {
	var payload employeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "No data provided"})
		return
	}

	created, err := h.svc.CreateEmployee(c.Request.Context(), employee.CreateEmployeeInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Position: payload.Position,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    toEmployeeJSON(created),
	})
}

// Update は従業員情報を更新します。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload employeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "No data provided"})
		return
	}

	updated, err := h.svc.UpdateEmployee(c.Request.Context(), employee.UpdateEmployeeInput{
		ID:       id,
		Name:     payload.Name,
		Email:    payload.Email,
		Position: payload.Position,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    toEmployeeJSON(updated),
	})
}

// Delete は従業員を削除します。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteEmployee(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Employee deleted successfully"})
}

// parseID はパスパラメータの ID を解釈します。整数でないパスは
// リソース不存在として扱います。
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, errorResponse{Success: false, Error: "Employee not found"})
		return 0, false
	}
	return id, true
}
