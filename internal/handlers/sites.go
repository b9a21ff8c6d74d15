package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/sitebuilder/internal/models"
	"github.com/localnerve/sitebuilder/internal/services"
	"github.com/localnerve/sitebuilder/internal/utils"
)

// SiteHandler handles site routes
type SiteHandler struct {
	Sites *services.SiteService
}

// previewRequest is the body of POST /api/sites/:id/preview
type previewRequest struct {
	URL string `json:"url"`
}

// ListSites handles GET /api/sites
// @Summary List sites
// @Description List the authenticated user's sites, one page at a time
// @Tags Sites
// @Produce json
// @Param page query int false "Page number, from 1"
// @Param limit query int false "Page size, 1 to 100"
// @Param search query string false "Case-insensitive name filter"
// @Param sortBy query string false "name, createdAt, updatedAt or status"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} services.SiteList
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites [get]
func (h *SiteHandler) ListSites(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}

	result, err := h.Sites.ListSites(c.UserContext(), userID, services.ListOptions{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", services.DefaultPageLimit),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	})
	if err != nil {
		return serviceError(c, err, "listSites")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// CreateSite handles POST /api/sites
// @Summary Create a site
// @Description Create a site with default settings
// @Tags Sites
// @Accept json
// @Produce json
// @Param site body services.SiteInput true "Site"
// @Success 201 {object} models.Site
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites [post]
func (h *SiteHandler) CreateSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}

	var input services.SiteInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	site, err := h.Sites.CreateSite(c.UserContext(), userID, input)
	if err != nil {
		return serviceError(c, err, "createSite")
	}

	return c.Status(fiber.StatusCreated).JSON(site)
}

// GetSite handles GET /api/sites/:id
// @Summary Get a site
// @Tags Sites
// @Produce json
// @Param id path int true "Site ID"
// @Success 200 {object} models.Site
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id} [get]
func (h *SiteHandler) GetSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	site, err := h.Sites.GetSite(c.UserContext(), siteID, userID)
	if err != nil {
		return serviceError(c, err, "getSite")
	}

	return c.Status(fiber.StatusOK).JSON(site)
}

// GetFullSite handles GET /api/sites/:id/full
// @Summary Get a site with its components
// @Description Components are returned in position order
// @Tags Sites
// @Produce json
// @Param id path int true "Site ID"
// @Success 200 {object} models.FullSite
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id}/full [get]
func (h *SiteHandler) GetFullSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	site, err := h.Sites.GetFullSite(c.UserContext(), siteID, userID)
	if err != nil {
		return serviceError(c, err, "getFullSite")
	}

	return c.Status(fiber.StatusOK).JSON(models.NewFullSite(site))
}

// UpdateSite handles PUT /api/sites/:id
// @Summary Update a site
// @Description Only the fields present in the body change; settings are replaced wholesale
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path int true "Site ID"
// @Param site body services.SitePatch true "Fields to change"
// @Success 200 {object} models.Site
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id} [put]
func (h *SiteHandler) UpdateSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	var patch services.SitePatch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	site, err := h.Sites.UpdateSite(c.UserContext(), siteID, userID, patch)
	if err != nil {
		return serviceError(c, err, "updateSite")
	}

	return c.Status(fiber.StatusOK).JSON(site)
}

// DeleteSite handles DELETE /api/sites/:id
// @Summary Delete a site
// @Description Deletes the site and all of its components
// @Tags Sites
// @Produce json
// @Param id path int true "Site ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id} [delete]
func (h *SiteHandler) DeleteSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	deleted, err := h.Sites.DeleteSite(c.UserContext(), siteID, userID)
	if err != nil {
		return serviceError(c, err, "deleteSite")
	}
	if !deleted {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	return utils.MutationSuccessResponse(c, 1)
}

// SetPreview handles POST /api/sites/:id/preview
// @Summary Set the preview reference of a site
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path int true "Site ID"
// @Param preview body previewRequest true "Preview URL"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id}/preview [post]
func (h *SiteHandler) SetPreview(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	var req previewRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	url, err := h.Sites.SetPreview(c.UserContext(), siteID, userID, req.URL)
	if err != nil {
		return serviceError(c, err, "setPreview")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":      true,
		"preview": url,
	})
}
