// Package data embeds the database initialization scripts used by the
// container test harness.
package data

import (
	_ "embed"
)

// InitdbMariaDBTables creates the sitebuilder schema
//
//go:embed initdb/mariadb/002-ddl-tables.sql
var InitdbMariaDBTables string

// InitdbMariaDBPrivileges grants the service user access to the schema
//
//go:embed initdb/mariadb/003-ddl-privileges.sql
var InitdbMariaDBPrivileges string
