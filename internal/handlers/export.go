package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/sitebuilder/internal/utils"
)

// Export formats
const (
	FormatHTML = "html"
	FormatCSS  = "css"
	FormatJSON = "json"
)

// ExportSite handles GET /api/sites/:id/export
// @Summary Export a site
// @Description Generates the static HTML document and stylesheet of a site. html and css are sent as attachments; json returns both.
// @Tags Export
// @Produce html
// @Produce plain
// @Produce json
// @Param id path int true "Site ID"
// @Param format query string false "html (default), css or json"
// @Success 200 {object} codegen.Export
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id}/export [get]
func (h *SiteHandler) ExportSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	format := strings.ToLower(c.Query("format", FormatHTML))
	switch format {
	case FormatHTML, FormatCSS, FormatJSON:
	default:
		return utils.ValidationErrorResponse(c, "format must be html, css or json")
	}

	export, err := h.Sites.ExportSite(c.UserContext(), siteID, userID, format)
	if err != nil {
		return serviceError(c, err, "exportSite")
	}

	switch format {
	case FormatCSS:
		c.Attachment(export.CSSFilename())
		c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
		return c.Status(fiber.StatusOK).SendString(export.CSS)
	case FormatJSON:
		return c.Status(fiber.StatusOK).JSON(export)
	}

	c.Attachment(export.HTMLFilename())
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(export.HTML)
}

// RenderSite handles GET /api/sites/:id/render
// @Summary Render a site for live preview
// @Tags Export
// @Produce html
// @Param id path int true "Site ID"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{id}/render [get]
func (h *SiteHandler) RenderSite(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	export, err := h.Sites.ExportSite(c.UserContext(), siteID, userID, "render")
	if err != nil {
		return serviceError(c, err, "renderSite")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(export.HTML)
}
