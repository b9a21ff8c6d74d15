// components.go
//
// A site builder data service: ordered site components and static HTML/CSS export
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of sitebuilder.
// sitebuilder is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sitebuilder is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sitebuilder.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/sitebuilder/internal/component"
	"github.com/localnerve/sitebuilder/internal/services"
	"github.com/localnerve/sitebuilder/internal/types"
	"github.com/localnerve/sitebuilder/internal/utils"
)

// ComponentHandler handles component routes
type ComponentHandler struct {
	Components *services.ComponentService
}

// componentRequest is one component in a create body
type componentRequest struct {
	Type  string          `json:"type"`
	Props json.RawMessage `json:"props,omitempty" swaggertype:"object"`
}

// propsRequest is the body of a props update
type propsRequest struct {
	Props json.RawMessage `json:"props" swaggertype:"object"`
}

// orderRequest is the body of a reorder
type orderRequest struct {
	Order json.RawMessage `json:"order" swaggertype:"array,integer"`
}

// ListComponents handles GET /api/sites/:siteId/components
// @Summary List components
// @Description Components of a site in position order
// @Tags Components
// @Produce json
// @Param siteId path int true "Site ID"
// @Success 200 {array} models.Component
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{siteId}/components [get]
func (h *ComponentHandler) ListComponents(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "siteId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	comps, err := h.Components.List(c.UserContext(), siteID, userID)
	if err != nil {
		return serviceError(c, err, "listComponents")
	}

	return c.Status(fiber.StatusOK).JSON(comps)
}

// CreateComponents handles POST /api/sites/:siteId/components
// @Summary Append components
// @Description Appends one component object, or an array of them, at the end of the site
// @Tags Components
// @Accept json
// @Produce json
// @Param siteId path int true "Site ID"
// @Param component body componentRequest true "Component or array of components"
// @Success 201 {object} models.Component
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{siteId}/components [post]
func (h *ComponentHandler) CreateComponents(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "siteId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	body := c.Body()
	var list types.FlexList[componentRequest]
	if err := json.Unmarshal(body, &list); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}
	if len(list) == 0 {
		return utils.ValidationErrorResponse(c, "At least one component is required")
	}

	inputs := make([]services.ComponentInput, len(list))
	for i, req := range list.Slice() {
		t := component.Type(req.Type)
		if !t.Valid() {
			return utils.ValidationErrorResponse(c, "Invalid component type: "+req.Type)
		}
		props, err := decodeProps(req.Props)
		if err != nil {
			return utils.ValidationErrorResponse(c, err.Error())
		}
		inputs[i] = services.ComponentInput{Type: t, Props: props}
	}

	comps, err := h.Components.AppendMany(c.UserContext(), siteID, userID, inputs)
	if err != nil {
		return serviceError(c, err, "createComponents")
	}

	if jsonArray(body) {
		return c.Status(fiber.StatusCreated).JSON(comps)
	}
	return c.Status(fiber.StatusCreated).JSON(comps[0])
}

// UpdateComponent handles PUT /api/sites/:siteId/components/:componentId
// @Summary Replace component props
// @Description The props object replaces the stored props wholesale
// @Tags Components
// @Accept json
// @Produce json
// @Param siteId path int true "Site ID"
// @Param componentId path int true "Component ID"
// @Param props body propsRequest true "New props"
// @Success 200 {object} models.Component
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{siteId}/components/{componentId} [put]
func (h *ComponentHandler) UpdateComponent(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "siteId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}
	componentID, err := parseID(c, "componentId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	var req propsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}
	if !jsonObject(req.Props) {
		return utils.ValidationErrorResponse(c, "props must be an object")
	}
	props, err := decodeProps(req.Props)
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	comp, err := h.Components.UpdateProps(c.UserContext(), componentID, siteID, userID, props)
	if err != nil {
		return serviceError(c, err, "updateComponent")
	}

	return c.Status(fiber.StatusOK).JSON(comp)
}

// DeleteComponent handles DELETE /api/sites/:siteId/components/:componentId
// @Summary Delete a component
// @Description Deletes the component and renumbers the remaining ones
// @Tags Components
// @Produce json
// @Param siteId path int true "Site ID"
// @Param componentId path int true "Component ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{siteId}/components/{componentId} [delete]
func (h *ComponentHandler) DeleteComponent(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "siteId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}
	componentID, err := parseID(c, "componentId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	deleted, err := h.Components.Delete(c.UserContext(), componentID, siteID, userID)
	if err != nil {
		return serviceError(c, err, "deleteComponent")
	}
	if !deleted {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	return utils.MutationSuccessResponse(c, 1)
}

// ReorderComponents handles PUT /api/sites/:siteId/components-order
// @Summary Reorder components
// @Description Sets each listed component's position to its index in the list. Ids may be numbers or numeric strings.
// @Tags Components
// @Accept json
// @Produce json
// @Param siteId path int true "Site ID"
// @Param order body orderRequest true "Component ids in their new order"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /sites/{siteId}/components-order [put]
func (h *ComponentHandler) ReorderComponents(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
	}
	siteID, err := parseID(c, "siteId")
	if err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	var req orderRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}
	if !jsonArray(req.Order) {
		return utils.ValidationErrorResponse(c, "order must be an array")
	}
	var ids []types.FlexUint64
	if err := json.Unmarshal(req.Order, &ids); err != nil {
		return utils.ValidationErrorResponse(c, "order must contain component ids")
	}

	updated, err := h.Components.Reorder(c.UserContext(), siteID, userID, types.Uint64s(ids))
	if err != nil {
		return serviceError(c, err, "reorderComponents")
	}

	return utils.MutationSuccessResponse(c, updated)
}

// ComponentDefaults handles GET /api/components/defaults
// @Summary Editor defaults per component type
// @Description Seed props for a new component of each type, and the style properties each type supports
// @Tags Components
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /components/defaults [get]
func ComponentDefaults(c *fiber.Ctx) error {
	result := make(map[string]any, len(component.Types))
	for _, t := range component.Types {
		result[string(t)] = fiber.Map{
			"props": component.DefaultProps(t),
			"style": component.StyleProperties(t),
		}
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
