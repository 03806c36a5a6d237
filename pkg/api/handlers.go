package api

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jobmate/reportgen/pkg/errors"
	"github.com/jobmate/reportgen/pkg/report"
	"github.com/jobmate/reportgen/pkg/session"
	"github.com/jobmate/reportgen/pkg/store"
)

// Handlers binds the HTTP endpoints to the session store and event hub.
type Handlers struct {
	store      *store.Store
	hub        *Hub
	reportsDir string
	fontsDir   string
	version    string
}

// NewHandlers creates the handler set. reportsDir receives generated PDFs
// so they can be downloaded later; it is created on first use.
func NewHandlers(st *store.Store, hub *Hub, reportsDir, fontsDir, version string) *Handlers {
	return &Handlers{
		store:      st,
		hub:        hub,
		reportsDir: reportsDir,
		fontsDir:   fontsDir,
		version:    version,
	}
}

// RegisterRoutes attaches all endpoints to the router.
func (h *Handlers) RegisterRoutes(r *Router) {
	r.GET("/api/health", h.HandleHealth)

	r.POST("/api/sessions", h.HandleCreateSession)
	r.GET("/api/sessions", h.HandleListSessions)
	r.GET("/api/sessions/{sessionID}", h.HandleGetSession)
	r.DELETE("/api/sessions/{sessionID}", h.HandleDeleteSession)
	r.GET("/api/sessions/{sessionID}/statistics", h.HandleSessionStatistics)

	r.POST("/api/reports", h.HandleGenerateReport)
	r.GET("/api/reports/{sessionID}/download", h.HandleDownloadReport)

	r.GET("/ws", NewWebSocketHandler(h.hub).HandleFunc())
}

// HandleHealth returns service status.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  h.version,
		"sessions": h.store.Count(),
	})
}

// HandleCreateSession ingests a finished interview session.
func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var sess session.Session
	if err := ReadJSON(r, &sess); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid session JSON: "+err.Error())
		return
	}

	if err := h.store.Save(&sess); err != nil {
		log.Printf("[api] save session: %v", err)
		WriteError(w, http.StatusInternalServerError, "storage_error", "Failed to persist session")
		return
	}

	h.hub.BroadcastSessionEvent(EventSessionCreated, &SessionEventData{
		SessionID: sess.ID,
		Title:     sess.Title(),
	})

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"sessionId": sess.ID,
		"title":     sess.Title(),
		"answered":  len(sess.Feedback),
	})
}

// HandleListSessions returns summaries of all stored sessions.
func (h *Handlers) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": h.store.List(),
		"count":    h.store.Count(),
	})
}

// HandleGetSession returns one full session.
func (h *Handlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "sessionID")
	sess, err := h.store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, sess)
}

// HandleDeleteSession removes a session and its file.
func (h *Handlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "sessionID")
	if err := h.store.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	h.hub.BroadcastSessionEvent(EventSessionDeleted, &SessionEventData{SessionID: id})
	WriteJSON(w, http.StatusOK, map[string]string{"sessionId": id})
}

// HandleSessionStatistics computes score statistics for a session.
func (h *Handlers) HandleSessionStatistics(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "sessionID")
	sess, err := h.store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, session.ComputeStatistics(sess))
}

// generateRequest is the POST /api/reports body. Either a stored session is
// referenced by id or a full session payload is passed inline.
type generateRequest struct {
	SessionID string           `json:"sessionId"`
	Session   *session.Session `json:"session"`
	Options   json.RawMessage  `json:"options"`
}

// HandleGenerateReport builds a PDF report synchronously. Progress is
// streamed to WebSocket subscribers while the request is in flight; the
// response carries the document inline as base64 plus the file written
// under the reports directory.
func (h *Handlers) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request JSON: "+err.Error())
		return
	}

	sess := req.Session
	if sess == nil {
		if req.SessionID == "" {
			WriteError(w, http.StatusBadRequest, "invalid_request", "Either sessionId or session is required")
			return
		}
		stored, err := h.store.Get(req.SessionID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		sess = stored
	} else if sess.ID == "" && req.SessionID != "" {
		sess.ID = req.SessionID
	}

	opts, err := report.ParseOptions(req.Options)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_options", errors.UserMessage(err))
		return
	}
	if opts.ChartFontsDir == "" {
		opts.ChartFontsDir = h.fontsDir
	}

	h.hub.BroadcastReportEvent(EventReportStarted, &ReportEventData{SessionID: sess.ID})

	b := report.NewBuilder(opts)
	b.Progress = func(stage string, done, total int) {
		h.hub.BroadcastReportEvent(EventReportProgress, &ReportEventData{
			SessionID: sess.ID,
			Stage:     stage,
			Done:      done,
			Total:     total,
		})
	}

	res, err := b.BuildReport(sess)
	if err != nil {
		log.Printf("[api] report for %s failed: %v", sess.ID, err)
		h.hub.BroadcastReportEvent(EventReportFailed, &ReportEventData{
			SessionID: sess.ID,
			Error:     errors.UserMessage(err),
		})
		WriteError(w, http.StatusInternalServerError, "report_failed", errors.UserMessage(err))
		return
	}

	filename := reportFilename(sess.ID)
	if err := h.writeReportFile(filename, res.PDF); err != nil {
		log.Printf("[api] store report %s: %v", filename, err)
	}

	h.hub.BroadcastReportEvent(EventReportCompleted, &ReportEventData{
		SessionID: sess.ID,
		Filename:  filename,
		Pages:     res.Pages,
	})

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"filename": filename,
		"size":     len(res.PDF),
		"pages":    res.Pages,
		"stats": map[string]int{
			"chartSections":   res.ChartSections,
			"questionBlocks":  res.QuestionBlocks,
			"skippedSections": res.SkippedSections,
		},
		"content": base64.StdEncoding.EncodeToString(res.PDF),
	})
}

// HandleDownloadReport streams a previously generated PDF.
func (h *Handlers) HandleDownloadReport(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "sessionID")
	filename := reportFilename(id)
	path := filepath.Join(h.reportsDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			WriteError(w, http.StatusNotFound, "report_not_found",
				"No generated report for this session; POST /api/reports first")
			return
		}
		log.Printf("[api] read report %s: %v", path, err)
		WriteError(w, http.StatusInternalServerError, "storage_error", "Failed to read report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handlers) writeReportFile(filename string, data []byte) error {
	if err := os.MkdirAll(h.reportsDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(h.reportsDir, filename), data, 0644)
}

func reportFilename(sessionID string) string {
	if sessionID == "" {
		sessionID = "session"
	}
	return "report_" + sessionID + ".pdf"
}

// writeStoreError maps store errors onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.IsCode(err, errors.ErrSessionNotFound) {
		WriteError(w, http.StatusNotFound, "session_not_found", "Session not found")
		return
	}
	WriteError(w, http.StatusInternalServerError, "storage_error", errors.UserMessage(err))
}
