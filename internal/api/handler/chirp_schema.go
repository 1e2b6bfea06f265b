package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationErrorsResponse carries field-keyed validation errors, e.g.
// {"errors": {"message": ["le message est obligatoire"]}}.
type validationErrorsResponse struct {
	Errors map[string][]string `json:"errors"`
}

// chirpRequest is the body of create and update requests. Both JSON and form
// encodings are accepted.
type chirpRequest struct {
	Message string `json:"message" form:"message"`
}

// chirpResponse is the canonical JSON view of a chirp.
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.
type chirpResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listChirpsResponse struct {
	Data []chirpResponse `json:"data"`
}
