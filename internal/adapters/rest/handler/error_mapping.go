package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// writeError はドメインエラーを HTTP ステータスとエンベロープに変換します。
// フィールド違反はリスト、重複・不存在は単一メッセージで返します。
func writeError(c *gin.Context, err error) {
	var verr *employee.ValidationError
	if errors.As(err, &verr) {
		fieldErrors := make([]fieldErrorJSON, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			fieldErrors = append(fieldErrors, fieldErrorJSON{Field: v.Field, Message: v.Message})
		}
		c.JSON(http.StatusBadRequest, validationResponse{Success: false, Errors: fieldErrors})
		return
	}

	var nameConflict *employee.NameConflictError
	switch {
	case errors.As(err, &nameConflict):
		c.JSON(http.StatusConflict, errorResponse{Success: false, Error: nameConflict.Error()})
	case errors.Is(err, employee.ErrNameAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Success: false, Error: "Employee with this name already exists"})
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Success: false, Error: "Employee with this email already exists"})
	case errors.Is(err, employee.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Success: false, Error: "Employee not found"})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Success: false, Error: "Internal server error"})
	}
}
