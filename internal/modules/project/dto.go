package project

type CreateProjectRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=website_build order"`
	Name        string `json:"name" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
}

// InviteResponse is what the booking page sees when it resolves a token:
// just enough to render the form, never the token owner's internals.
type InviteResponse struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	ClientName  string `json:"client_name"`
	Status      string `json:"status"`
	HasShowcase bool   `json:"has_showcase"`
}
