package main

import (
	"github.com/guillermoBallester/cyphercheck/internal/config"
	"github.com/spf13/pflag"
)

// cliFlags mirrors config.Overrides as plain values; only flags the user
// actually set are turned into overrides.
type cliFlags struct {
	uri                    string
	user                   string
	password               string
	database               string
	dir                    string
	paramsFile             string
	strictProperties       bool
	checkMultiLabeledNodes bool
	logLevel               string
	logFormat              string
	otel                   bool
	format                 string
	auditLog               string
}

func (f *cliFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.uri, "uri", "", "Neo4j URI (overrides NEO4J_URI)")
	fs.StringVar(&f.user, "user", "", "Neo4j username (overrides NEO4J_USER)")
	fs.StringVar(&f.password, "password", "", "Neo4j password (overrides NEO4J_PASSWORD)")
	fs.StringVar(&f.database, "database", "", "Neo4j database name (overrides NEO4J_DATABASE, default \"neo4j\")")
	fs.StringVar(&f.dir, "dir", "", "directory of .cypher templates (overrides CYPHER_DIR)")
	fs.StringVar(&f.paramsFile, "params-file", "", "YAML file of parameter fixtures (overrides PARAMS_FILE)")
	fs.BoolVar(&f.strictProperties, "strict-properties", false, "record strict property checking (overrides CYVER_STRICT_PROPERTIES)")
	fs.BoolVar(&f.checkMultiLabeledNodes, "check-multilabeled-nodes", false, "record multi-label node checking (overrides CYVER_CHECK_MULTILABELED_NODES)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")
	fs.BoolVar(&f.otel, "otel", false, "enable OpenTelemetry tracing and metrics")
	fs.StringVar(&f.format, "format", "", "report format: console or json")
	fs.StringVar(&f.auditLog, "audit-log", "", "path to NDJSON audit log file")
}

func (f *cliFlags) overrides(fs *pflag.FlagSet) config.Overrides {
	o := config.Overrides{
		OTelEnabled: f.otel,
		Format:      f.format,
		AuditLog:    f.auditLog,
	}
	if fs.Changed("uri") {
		o.URI = &f.uri
	}
	if fs.Changed("user") {
		o.User = &f.user
	}
	if fs.Changed("password") {
		o.Password = &f.password
	}
	if fs.Changed("database") {
		o.Database = &f.database
	}
	if fs.Changed("dir") {
		o.QueryDir = &f.dir
	}
	if fs.Changed("params-file") {
		o.ParamsFile = &f.paramsFile
	}
	if fs.Changed("strict-properties") {
		o.StrictProperties = &f.strictProperties
	}
	if fs.Changed("check-multilabeled-nodes") {
		o.CheckMultiLabeledNodes = &f.checkMultiLabeledNodes
	}
	if fs.Changed("log-level") {
		o.LogLevel = &f.logLevel
	}
	if fs.Changed("log-format") {
		o.LogFormat = &f.logFormat
	}
	return o
}
