// Package repositories provides the SQLite persistence used by the command line.
//
// [SessionRepository] implements session.Store over the session_store table created by the shared
// migrations, so a login in one invocation is visible to the next.
package repositories
