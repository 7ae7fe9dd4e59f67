// Package main provides the entry point for the settings administration service.
// It runs a web server using the Fiber framework that lets an administrator
// edit database-backed runtime settings profiles (debug mode, secret key,
// time zone, trailing-slash behavior, allowed hostnames). The active profile
// is rendered into a generated configuration overlay file and a restart
// signal is issued so the host process manager picks up the new values. The
// application uses gorm for data persistence.
package main
