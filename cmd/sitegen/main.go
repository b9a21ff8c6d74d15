// main.go
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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/localnerve/sitebuilder/internal/codegen"
	"github.com/localnerve/sitebuilder/internal/config"
	"github.com/localnerve/sitebuilder/internal/database"
	"github.com/localnerve/sitebuilder/internal/services"
)

var CLI struct {
	Output string `short:"o" help:"Output directory for the generated files" default:"."`

	Export struct {
		Site  uint64 `short:"s" required:"" help:"Site ID"`
		Owner string `short:"u" required:"" help:"Owner user ID"`
	} `cmd:"" help:"Generate a stored site's HTML and CSS (database settings come from the environment)"`

	Render struct {
		Input string `arg:"" type:"existingfile" help:"Site document (YAML or JSON, as returned by /api/sites/{id}/full)"`
	} `cmd:"" help:"Generate HTML and CSS from a site document on disk"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("sitegen"),
		kong.Description("Static HTML/CSS export for sitebuilder sites"),
	)

	var (
		export codegen.Export
		err    error
	)

	switch kctx.Command() {
	case "export":
		export, err = exportStored(CLI.Export.Site, CLI.Export.Owner)
	case "render <input>":
		export, err = renderFile(CLI.Render.Input)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		log.Fatalf("sitegen: %v", err)
	}

	htmlPath, cssPath, err := writeExport(CLI.Output, export)
	if err != nil {
		log.Fatalf("sitegen: %v", err)
	}
	log.Printf("Wrote %s and %s", htmlPath, cssPath)
}

func exportStored(siteID uint64, ownerID string) (codegen.Export, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return codegen.Export{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return codegen.Export{}, err
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return services.NewSiteService(db, nil).ExportSite(ctx, siteID, ownerID, "cli")
}

func renderFile(path string) (codegen.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return codegen.Export{}, err
	}
	site, err := parseSiteDocument(data)
	if err != nil {
		return codegen.Export{}, fmt.Errorf("%s: %w", path, err)
	}
	return codegen.Generate(site), nil
}

// writeExport writes <base>.html and <base>.css into dir
func writeExport(dir string, export codegen.Export) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	htmlPath := filepath.Join(dir, export.HTMLFilename())
	if err := os.WriteFile(htmlPath, []byte(export.HTML), 0o644); err != nil {
		return "", "", err
	}
	cssPath := filepath.Join(dir, export.CSSFilename())
	if err := os.WriteFile(cssPath, []byte(export.CSS), 0o644); err != nil {
		return "", "", err
	}
	return htmlPath, cssPath, nil
}
