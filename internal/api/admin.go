package api

import (
	"io"       // Request body
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"hostel_booking/internal/admin"      // Resource descriptors
	"hostel_booking/internal/apperrors"  // Application error type
	"hostel_booking/internal/middleware" // Current user

	"github.com/gin-gonic/gin" // Gin web framework
)

// maxAdminBody bounds create and update payloads
const maxAdminBody = 1 << 20

// AdminHandler dispatches /admin/:resource[/:id] onto the registry's descriptors
type AdminHandler struct {
	registry *admin.Registry
}

func NewAdminHandler(registry *admin.Registry) *AdminHandler {
	return &AdminHandler{registry: registry}
}

// Index lists the resource names
func (h *AdminHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": h.registry.Names()})
}

// resource resolves :resource and checks the caller may perform action on it
func (h *AdminHandler) resource(c *gin.Context, action admin.Action) (*admin.Resource, bool) {
	res, ok := h.registry.Lookup(c.Param("resource"))
	if !ok {
		respondError(c, apperrors.NotFound("Resource"))
		return nil, false
	}
	if !res.Allowed(middleware.CurrentUser(c), action) {
		respondError(c, apperrors.Forbidden("Admin access required"))
		return nil, false
	}
	return res, true
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperrors.Validation("id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAdminBody))
	if err != nil {
		respondError(c, apperrors.Validation("Invalid request body"))
		return nil, false
	}
	return body, true
}

// List returns one page of the resource, ?page= and ?page_size=
func (h *AdminHandler) List(c *gin.Context) {
	res, ok := h.resource(c, admin.ActionList)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))                                          // Invalid values fall back to defaults
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(admin.DefaultPageSize))) // Clamped by the resource
	result, err := res.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) Get(c *gin.Context) {
	res, ok := h.resource(c, admin.ActionRead)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := res.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) Create(c *gin.Context) {
	res, ok := h.resource(c, admin.ActionCreate)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	item, err := res.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *AdminHandler) Update(c *gin.Context) {
	res, ok := h.resource(c, admin.ActionUpdate)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	item, err := res.Update(c.Request.Context(), id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	res, ok := h.resource(c, admin.ActionDelete)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := res.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Name + " deleted"})
}
