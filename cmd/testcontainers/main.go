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
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/localnerve/sitebuilder/tests/helpers"
)

var cli struct {
	EnvFile string `short:"f" name:"env-file" type:"existingfile" help:"Path to the .env file."`
	Debug   bool   `help:"Run the sitebuilder container under dlv on port 2345."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("testcontainers"),
		kong.Description("Run the sitebuilder stack (database, Authorizer, sitebuilder) in testcontainers until interrupted."),
		kong.UsageOnError(),
	)

	if cli.EnvFile != "" {
		log.Printf("Loading environment variables from %s\n", cli.EnvFile)
		if err := godotenv.Load(cli.EnvFile); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}
	if cli.Debug {
		os.Setenv("DEBUG_CONTAINER", "true")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var testContainers *helpers.TestContainers
	go func() {
		var err error
		testContainers, err = helpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		log.Printf("Test containers are running, press Ctrl+C to terminate\n")
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	if testContainers != nil {
		testContainers.Terminate(nil)
	}
}
