package api

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/JaimeStill/stipend/pkg/handlers"
	"github.com/JaimeStill/stipend/pkg/middleware"
	"github.com/JaimeStill/stipend/pkg/module"
	"github.com/JaimeStill/stipend/pkg/routes"
	"github.com/JaimeStill/stipend/pkg/storage"
)

type filesHandler struct {
	store  storage.System
	logger *slog.Logger
}

// NewFilesModule creates a module that serves stored blobs by key. Only the
// local driver addresses blobs through this surface; the Azure driver returns
// blob URLs directly.
func NewFilesModule(store storage.System, logger *slog.Logger) *module.Module {
	h := &filesHandler{
		store:  store,
		logger: logger.With("handler", "files"),
	}

	mux := http.NewServeMux()
	routes.Register(mux, h.routes())

	m := module.New("/files", mux)
	m.Use(middleware.Logger(logger))
	return m
}

func (h *filesHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

func (h *filesHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			storage.MapHTTPStatus(err), err,
		)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("inline; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
