// Package cli is the terminal rendition of the Online Project Manager login
// form.
//
// The App wires configuration, the HTTP auth client and a form.Controller,
// and runs a REPL with two views:
//
//	login      email, password, toggle, login, forgot, show, help, exit
//	dashboard  whoami, status, logout, help, exit
//
// The password is read without echo while it is masked; toggling visibility
// makes the prompt echo input and `show` print it in clear text. A spinner
// is drawn while a login request is in flight. On success a toast is printed
// and the REPL navigates to the dashboard view.
package cli
