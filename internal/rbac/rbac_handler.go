package rbac

import (
	"net/http"

	"go-leave-engine/internal/domain"
	"go-leave-engine/internal/shared/apperror"
	"go-leave-engine/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	repo    Repository
	logger  *zap.Logger
}

func NewHandler(service Service, repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, repo: repo, logger: l}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(appErr)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "enforce failed", nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.repo.ListRoles(c.GetString("company_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "list roles failed", nil)
		return
	}

	resp := make([]domain.RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := h.repo.GetPermissionsByRoleID(role.ID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "load permissions failed", nil)
			return
		}
		permLabels := make([]string, len(perms))
		for i, p := range perms {
			permLabels[i] = p.Resource + ":" + p.Action
		}
		resp = append(resp, domain.RoleResponse{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: permLabels,
		})
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "list permissions failed", nil)
		return
	}

	resp := make([]domain.PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
