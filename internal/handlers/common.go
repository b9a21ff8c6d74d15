// common.go
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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/sitebuilder/internal/middleware"
	"github.com/localnerve/sitebuilder/internal/services"
	"github.com/localnerve/sitebuilder/internal/types"
	"github.com/localnerve/sitebuilder/internal/utils"
)

func getUserID(c *fiber.Ctx) (string, error) {
	return middleware.UserID(c)
}

// parseID reads an unsigned integer path parameter
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := types.ParseFlexUint64(c.Params(name))
	if err != nil {
		return 0, fmt.Errorf("%s must be an unsigned integer", name)
	}
	return id.Uint64(), nil
}

// serviceError maps a service error onto the response envelope.
// Not-found bodies never say whether the resource exists for someone else.
func serviceError(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, services.ErrValidation):
		return utils.ValidationErrorResponse(c, err.Error())
	}

	log.Printf("%s failed: %v", errorType, err)
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// jsonObject reports whether raw holds a JSON object
func jsonObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// jsonArray reports whether raw holds a JSON array
func jsonArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// decodeProps decodes an optional props object. Absent or null props decode to nil.
func decodeProps(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if !jsonObject(trimmed) {
		return nil, fmt.Errorf("props must be an object")
	}
	var props map[string]any
	if err := json.Unmarshal(trimmed, &props); err != nil {
		return nil, fmt.Errorf("invalid props: %v", err)
	}
	return props, nil
}

// ErrorHandler renders errors that escape handlers and middleware
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var custom *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFound is the catch-all route handler
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   "[404] Resource Not Found",
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
