// Package crypt encrypts secret material at rest.
//
// Secrets are sealed with AES-256-GCM under a master key derived from a
// configured passphrase. The envelope is a printable string so it stores
// in a text column without extra encoding.
package crypt
