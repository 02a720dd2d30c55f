// Package cmd implements the command-line interface for tasknotes.
//
// This package provides the following commands:
//   - login: Sign in to Google Tasks with an OAuth authorization code
//   - logout: Sign out and discard the saved tokens
//   - lists: Show the task lists of the signed-in account
//   - render: Render the task blocks of a markdown note once
//   - watch: Re-render the task blocks of a note on an interval
//   - version: Display version information
package cmd
