// Package session implements the interactive login and menu loop.
//
// A Controller authenticates a user against the credential store, creates a
// Session for them and dispatches menu codes to the task and report
// operations. Regular users get a, va, vm and e; the admin user additionally
// gets r, vc, del, gr and ds. Codes outside the session's role are reported
// as invalid options.
package session
