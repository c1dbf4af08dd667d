package handlers

// ErrorResponse is the JSON body of a failed JSON endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	API    string `json:"api"`
}

// ShareEvent is sent in the HX-Trigger header so the page can copy the link.
type ShareEvent struct {
	CopyLink string `json:"copyLink"`
}
