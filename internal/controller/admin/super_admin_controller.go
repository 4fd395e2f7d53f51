package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrick-john02/ATCRS/internal/controller"
	"github.com/patrick-john02/ATCRS/internal/dto"
	"github.com/patrick-john02/ATCRS/internal/service"
)

// SuperAdminController manages administrator accounts. Authentication
// and permission checks are handled upstream of this service.
type SuperAdminController struct {
	adminUserSvc service.AdminUserService
}

func NewSuperAdminController(adminUserSvc service.AdminUserService) *SuperAdminController {
	return &SuperAdminController{adminUserSvc: adminUserSvc}
}

// CreateAdmin godoc
// @Summary Create an admin account
// @Tags superadmin
// @Accept json
// @Produce json
// @Param admin body dto.AdminUserCreateDTO true "Admin account"
// @Success 201 {object} dto.AdminUserDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /superadmin/admins [post]
func (ctrl *SuperAdminController) CreateAdmin(c *gin.Context) {
	var req dto.AdminUserCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.adminUserSvc.CreateAdmin(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateAdmin godoc
// @Summary Update an admin account
// @Tags superadmin
// @Accept json
// @Produce json
// @Param admin_id path string true "Admin UUID"
// @Param admin body dto.AdminUserUpdateDTO true "Fields to update"
// @Success 200 {object} dto.AdminUserDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /superadmin/admins/{admin_id} [put]
func (ctrl *SuperAdminController) UpdateAdmin(c *gin.Context) {
	adminID, ok := parseUUIDParam(c, "admin_id")
	if !ok {
		return
	}

	var req dto.AdminUserUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.adminUserSvc.UpdateAdmin(adminID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeactivateAdmin godoc
// @Summary Deactivate an admin account
// @Tags superadmin
// @Param admin_id path string true "Admin UUID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Router /superadmin/admins/{admin_id} [delete]
func (ctrl *SuperAdminController) DeactivateAdmin(c *gin.Context) {
	adminID, ok := parseUUIDParam(c, "admin_id")
	if !ok {
		return
	}

	if err := ctrl.adminUserSvc.DeactivateAdmin(adminID); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAdmins godoc
// @Summary List admin accounts
// @Tags superadmin
// @Produce json
// @Success 200 {array} dto.AdminUserDTO
// @Router /superadmin/admins [get]
func (ctrl *SuperAdminController) ListAdmins(c *gin.Context) {
	resp, err := ctrl.adminUserSvc.ListAdmins()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
