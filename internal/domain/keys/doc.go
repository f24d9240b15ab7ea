// Package keys defines key metadata, the queries over it and the services
// that manage key files on behalf of the CLI and the REST API.
package keys
