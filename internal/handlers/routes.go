package handlers

import "net/http"

// Register mounts the maze routes on mux. Routes that change a session need
// that session's token.
func (h *MazeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /maze", h.Create)
	mux.HandleFunc("GET /maze/{id}", h.Fetch)
	mux.HandleFunc("GET /maze/{id}/text", h.Text)
	mux.HandleFunc("POST /maze/{id}/step", h.Owner(h.Step))
	mux.HandleFunc("POST /maze/{id}/generate", h.Owner(h.Generate))
	mux.HandleFunc("POST /maze/{id}/restart", h.Owner(h.Restart))
	mux.HandleFunc("POST /maze/{id}/endpoints", h.Owner(h.Endpoints))
	mux.HandleFunc("POST /maze/{id}/solve/step", h.Owner(h.SolveStep))
	mux.HandleFunc("POST /maze/{id}/solve", h.Owner(h.Solve))
	mux.HandleFunc("POST /maze/{id}/token", h.Owner(h.Token))
	mux.HandleFunc("DELETE /maze/{id}", h.Owner(h.Delete))
	mux.HandleFunc("GET /maze/{id}/connect", h.Owner(h.Connect))
	mux.HandleFunc("GET /runs", h.Runs)
}
