// Package server exposes the file store and substitution engine over HTTP.
package server

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/operation"
	"github.com/walteh/replacer/pkg/report"
	"github.com/walteh/replacer/pkg/store"
	"github.com/walteh/replacer/pkg/text"
)

// fileExt is appended to every document name taken from a path parameter
const fileExt = ".txt"

// Handler holds the server dependencies and registers routes.
type Handler struct {
	opts       operation.Options
	runner     *operation.OperationRunner
	reportPath string
	mux        *http.ServeMux
}

// New creates a Handler and wires up all routes.
func New(st store.Store, reportPath string, logger *zerolog.Logger) *Handler {
	h := &Handler{
		opts:       operation.Options{Store: st, Replacer: text.NewSimpleTextReplacer()},
		runner:     operation.NewRunner(logger),
		reportPath: reportPath,
		mux:        http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /health", h.health)

	h.mux.HandleFunc("GET /files", h.listFiles)
	h.mux.HandleFunc("GET /files/{name}", h.readFile)
	h.mux.HandleFunc("POST /files/add/{name}", h.addFile)
	h.mux.HandleFunc("PUT /files/replace/{oldFile}/{newFile}", h.replaceFile)

	h.mux.HandleFunc("GET /report", h.report)
}

// ---------- helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}

// fail maps a store error kind onto a status code and an error envelope
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch store.KindOf(err) {
	case store.KindNotFound:
		status = http.StatusNotFound
	case store.KindValidation:
		status = http.StatusBadRequest
	}

	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeError(w, status, err.Error())
}

// readJSON decodes the request body; malformed bodies are validation errors
func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return store.Invalid("decode", errors.New("request body is required"))
		}
		return store.Invalid("decode", errors.Errorf("malformed JSON body: %w", err))
	}
	return nil
}

func required(field string) error {
	return store.Invalid("decode", errors.Errorf("%s is required", field))
}

func documentName(param string) string {
	return param + fileExt
}

func (h *Handler) redirectToFiles(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/files", http.StatusSeeOther)
}

// ---------- status ----------

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------- files ----------

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	op := operation.NewListOperation(h.opts, r.URL.Query().Get("match"))
	if err := h.runner.Run(r.Context(), op); err != nil {
		fail(w, r, err)
		return
	}

	names := op.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "files": names})
}

func (h *Handler) readFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	content, err := h.opts.Store.Read(r.Context(), name)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "name": name, "text": content})
}

type addRequest struct {
	Text *string `json:"text"`
}

func (h *Handler) addFile(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := readJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.Text == nil {
		fail(w, r, required("text"))
		return
	}

	op := operation.NewWriteOperation(h.opts, documentName(r.PathValue("name")), *req.Text)
	if err := h.runner.Run(r.Context(), op); err != nil {
		fail(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Str("file", op.Outcome().Destination).
		Bool("created", op.Outcome().Created).
		Msg("file added")
	h.redirectToFiles(w, r)
}

type replaceRequest struct {
	ToReplace *string `json:"toReplace"`
	WithThis  *string `json:"withThis"`
}

func (h *Handler) replaceFile(w http.ResponseWriter, r *http.Request) {
	oldFile := r.PathValue("oldFile")
	newFile := r.PathValue("newFile")

	var req replaceRequest
	if err := readJSON(r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if req.ToReplace == nil {
		fail(w, r, required("toReplace"))
		return
	}
	if req.WithThis == nil {
		fail(w, r, required("withThis"))
		return
	}

	rule := text.ReplacementRule{FromText: *req.ToReplace, ToText: *req.WithThis}
	op := operation.NewReplaceOperation(h.opts, documentName(oldFile), documentName(newFile), rule)
	if err := h.runner.Run(r.Context(), op); err != nil {
		// only a missing source gets the dedicated not-found envelope
		if store.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"status":  "404",
				"message": "no file named " + oldFile,
			})
			return
		}
		fail(w, r, err)
		return
	}

	out := op.Outcome()
	zerolog.Ctx(r.Context()).Info().
		Str("source", out.Source).
		Str("destination", out.Destination).
		Int("replacements", out.Replacements).
		Msg("file replaced")
	h.redirectToFiles(w, r)
}

// ---------- report ----------

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	fields, err := report.Load(r.Context(), h.reportPath)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", h.reportPath).Msg("loading report")
		writeError(w, status, err.Error())
		return
	}

	// report fields are laid over the envelope, so a report "status" wins
	body := make(map[string]any, len(fields)+1)
	body["status"] = "ok"
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}
