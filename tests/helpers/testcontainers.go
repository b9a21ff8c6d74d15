// Helpers for running the full stack (database, Authorizer, sitebuilder) in testcontainers.
// Used by the e2e tests and by the standalone cmd/testcontainers executable.
// Expects environment variables to be loaded from .env files.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/localnerve/sitebuilder/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ImageName is the sitebuilder runtime image reused across runs
const ImageName = "sitebuilder-test:latest"

// AuthorizerAlias is the Authorizer host name inside the test network
const AuthorizerAlias = "authorizer"

type TestContainers struct {
	Network                     *testcontainers.DockerNetwork
	DBContainer                 testcontainers.Container
	AuthorizerContainer         testcontainers.Container
	SitebuilderContainer        testcontainers.Container
	SitebuilderBuilderContainer testcontainers.Container
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	terminate := func(c testcontainers.Container, name string) {
		if c == nil {
			return
		}
		if err := c.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate %s: %v", name, err)
		}
	}

	terminate(tc.SitebuilderContainer, "sitebuilder")
	terminate(tc.SitebuilderBuilderContainer, "sitebuilder builder")
	terminate(tc.AuthorizerContainer, "Authorizer")
	terminate(tc.DBContainer, "database")

	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// fail terminates everything started so far and exits
func (tc *TestContainers) fail(t *testing.T, err error, msg string) {
	tc.Terminate(t)
	exitWithError(t, err, msg)
}

// BaseURL is the host address of the sitebuilder container
func (tc *TestContainers) BaseURL(ctx context.Context) (string, error) {
	port, err := nat.NewPort("tcp", os.Getenv("PORT"))
	if err != nil {
		return "", err
	}
	host, err := tc.SitebuilderContainer.Host(ctx)
	if err != nil {
		return "", err
	}
	mapped, err := tc.SitebuilderContainer.MappedPort(ctx, port)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%s", host, mapped.Port()), nil
}

// AuthorizerURL is the host address of the Authorizer container
func (tc *TestContainers) AuthorizerURL(ctx context.Context) (string, error) {
	port, err := nat.NewPort("tcp", os.Getenv("AUTHZ_PORT"))
	if err != nil {
		return "", err
	}
	host, err := tc.AuthorizerContainer.Host(ctx)
	if err != nil {
		return "", err
	}
	mapped, err := tc.AuthorizerContainer.MappedPort(ctx, port)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%s", host, mapped.Port()), nil
}

func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	debugContainer := os.Getenv("DEBUG_CONTAINER") == "true"

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	tc.Network = nw
	networkName := nw.Name

	// Database
	dbType := os.Getenv("DB_TYPE")
	dbAlias := os.Getenv("DB_HOST")
	tcpDBPort, err := nat.NewPort("tcp", os.Getenv("DB_PORT"))
	if err != nil {
		tc.fail(t, err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          os.Getenv("DB_IMAGE"),
			ExposedPorts:   []string{string(tcpDBPort)},
			Env:            map[string]string{"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD")},
			WaitingFor:     wait.ForListeningPort(tcpDBPort).WithStartupTimeout(60 * time.Second),
			Networks:       []string{networkName},
			NetworkAliases: map[string][]string{networkName: {dbAlias}},
		},
		Started: true,
	})
	if err != nil {
		tc.fail(t, err, "Failed to start database")
	}
	tc.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDBPort)
	switch dbType {
	case "mysql", "mariadb":
		if err := initMySQL(dbHost, dbPort); err != nil {
			tc.fail(t, err, "Failed to initialize databases")
		}
	default:
		tc.fail(t, fmt.Errorf("unsupported DB_TYPE %q", dbType), "The Authorizer needs a MariaDB or MySQL database")
	}

	// Authorizer
	tcpAuthzPort, err := nat.NewPort("tcp", os.Getenv("AUTHZ_PORT"))
	if err != nil {
		tc.fail(t, err, "Failed to create Authorizer port")
	}
	authzDBConnection := fmt.Sprintf("root:%s@tcp(%s:%s)/%s",
		os.Getenv("DB_ROOT_PASSWORD"), dbAlias, os.Getenv("DB_PORT"), os.Getenv("AUTHZ_DATABASE"))
	authzLogLevel := "info"
	if debugContainer {
		authzLogLevel = "debug"
	}
	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("AUTHZ_IMAGE"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     os.Getenv("AUTHZ_CLIENT_ID"),
				"PORT":          os.Getenv("AUTHZ_PORT"),
				"DATABASE_TYPE": dbType,
				"DATABASE_NAME": os.Getenv("AUTHZ_DATABASE"),
				"DATABASE_URL":  authzDBConnection,
				"ADMIN_SECRET":  os.Getenv("AUTHZ_ADMIN_SECRET"),
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     authzLogLevel,
			},
			WaitingFor:     wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(10 * time.Second),
			Networks:       []string{networkName},
			NetworkAliases: map[string][]string{networkName: {AuthorizerAlias}},
		},
		Started: true,
	})
	if err != nil {
		tc.fail(t, err, "Failed to start Authorizer")
	}
	tc.AuthorizerContainer = authorizerContainer

	if authzURL, err := tc.AuthorizerURL(ctx); err == nil {
		logMessage(t, "AUTHZ_URL=%s", authzURL)
	}

	// Sitebuilder
	exists, err := imageExists(ctx, ImageName)
	if err != nil {
		tc.fail(t, err, "Failed to check if image exists")
	}

	portNumber := os.Getenv("PORT")
	tcpPort, err := nat.NewPort("tcp", portNumber)
	if err != nil {
		tc.fail(t, err, "Failed to create sitebuilder port")
	}

	exposedPorts := []string{string(tcpPort)}
	if debugContainer {
		exposedPorts = append(exposedPorts, "2345/tcp")
	}

	var waitStrategy wait.Strategy = wait.ForHTTP("/healthz").WithPort(tcpPort).WithStartupTimeout(30 * time.Second)
	if debugContainer {
		waitStrategy = wait.ForLog("API server listening at: [::]:2345").WithStartupTimeout(5 * time.Minute)
	}

	request := testcontainers.ContainerRequest{
		ExposedPorts: exposedPorts,
		Env: map[string]string{
			"DB_TYPE":             dbType,
			"DB_HOST":             dbAlias,
			"DB_PORT":             os.Getenv("DB_PORT"),
			"DB_DATABASE":         os.Getenv("DB_DATABASE"),
			"DB_USER":             os.Getenv("DB_USER"),
			"DB_PASSWORD":         os.Getenv("DB_PASSWORD"),
			"DB_CONNECTION_LIMIT": os.Getenv("DB_CONNECTION_LIMIT"),
			"REORDER_MODE":        os.Getenv("REORDER_MODE"),
			"AUTHZ_URL":           fmt.Sprintf("http://%s:%s", AuthorizerAlias, os.Getenv("AUTHZ_PORT")),
			"AUTHZ_CLIENT_ID":     os.Getenv("AUTHZ_CLIENT_ID"),
			"PORT":                portNumber,
		},
		HostConfigModifier: func(hostConfig *container.HostConfig) {
			if debugContainer {
				hostConfig.PortBindings = nat.PortMap{
					"2345/tcp": []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "2345"}},
				}
				hostConfig.CapAdd = []string{"SYS_PTRACE"}
				hostConfig.SecurityOpt = []string{"apparmor:unconfined"}
			}
		},
		WaitingFor: waitStrategy,
		Networks:   []string{networkName},
	}

	if debugContainer {
		request.Entrypoint = []string{
			"/usr/local/bin/dlv",
			"--listen=:2345",
			"--headless=true",
			"--api-version=2",
			"--accept-multiclient",
			"exec",
			"./sitebuilder",
		}
	}

	if !exists {
		sessionID := uuid.New().String()
		buildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &sessionID,
		}
		if debugContainer {
			debug := "true"
			buildArgs["DEBUG"] = &debug
		}

		buildContext := os.Getenv("TESTCONTAINERS_BUILD_CONTEXT")
		if buildContext == "" {
			buildContext = "../.."
		}

		logMessage(t, "Image %s does not exist, building...", ImageName)
		builder, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    buildContext,
					Dockerfile: "Dockerfile",
					Repo:       "sitebuilder-test-builder",
					Tag:        "latest",
					BuildArgs:  buildArgs,
					BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
						opts.Target = "builder"
					},
					PrintBuildLog: true,
				},
			},
			Started: false,
		})
		if err != nil {
			tc.fail(t, err, "Failed to build sitebuilder-test-builder")
		}
		tc.SitebuilderBuilderContainer = builder

		repo, tag, _ := strings.Cut(ImageName, ":")
		request.FromDockerfile = testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       repo,
			Tag:        tag,
			KeepImage:  true,
			BuildArgs:  buildArgs,
			BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
				opts.Target = "runtime"
			},
			PrintBuildLog: true,
		}
	} else {
		logMessage(t, "Image %s exists, reusing...", ImageName)
		request.Image = ImageName
	}

	sitebuilderContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: request,
		Started:          true,
	})
	if err != nil {
		tc.fail(t, err, "Failed to start sitebuilder")
	}
	tc.SitebuilderContainer = sitebuilderContainer

	if baseURL, err := tc.BaseURL(ctx); err == nil {
		logMessage(t, "BASE_URL=%s", baseURL)
	}

	logMessage(t, "sitebuilder testcontainers started successfully")
	return tc, nil
}

// initMySQL creates the sitebuilder and Authorizer databases, the service
// user and the sitebuilder tables
func initMySQL(host string, port nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/",
		os.Getenv("DB_ROOT_PASSWORD"), host, port.Port()))
	if err != nil {
		return fmt.Errorf("failed to connect for setup: %w", err)
	}
	defer db.Close()

	// Wait for the server to accept connections
	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}

	authzDatabase := os.Getenv("AUTHZ_DATABASE")
	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", authzDatabase),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.authorizer_users (id CHAR(36) NOT NULL PRIMARY KEY)", authzDatabase),
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, stmt)
		}
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := executeSQL(db, data.InitdbMariaDBPrivileges); err != nil {
		return fmt.Errorf("failed to grant privileges: %w", err)
	}
	return nil
}

// executeSQL runs a script of semicolon terminated statements, after
// removing -- comments outside of quoted strings
func executeSQL(db *sql.DB, script string) error {
	var lines []string
	for _, l := range strings.Split(script, "\n") {
		lines = append(lines, excludeComment(l))
	}

	queries := strings.Split(strings.Join(lines, "\n"), ";")
	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, q)
		}
	}
	return nil
}

func excludeComment(line string) string {
	var out strings.Builder
	var quote rune

	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '-' && strings.HasPrefix(line[i:], "--"):
			return out.String()
		}
		out.WriteRune(r)
	}
	return out.String()
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
