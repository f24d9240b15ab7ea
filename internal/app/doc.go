// Package app wires the RSA processor, the key file store and the key
// metadata repository into the services used by the CLI and the REST API.
package app
