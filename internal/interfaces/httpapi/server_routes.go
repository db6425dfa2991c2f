package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerViewRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/views/{view}", handler.GetView)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/pipeline", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPipelineJob)))
}
