// Package forge provides abstraction over different git forges (GitHub, Forgejo, etc.).
package forge

// CreatePROptions holds the fields for creating a pull request.
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
}
