// Package httpapi is the HTTP surface §6 describes: upload, status
// polling, report generation, and a health check, wired onto a
// job.Manager. No router framework appears anywhere in this codebase's
// dependency stack, so this mirrors the teacher's own net.Listener-level
// approach and stays on net/http's ServeMux.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ChristianF88/atmsettle/aggregator"
	"github.com/ChristianF88/atmsettle/channel"
	"github.com/ChristianF88/atmsettle/job"
	"github.com/ChristianF88/atmsettle/money"
	"github.com/ChristianF88/atmsettle/report"
)

// Server wires the HTTP surface onto a job.Manager.
type Server struct {
	Manager        *job.Manager
	MaxUploadBytes int64
}

// NewServer returns a Server with the given resource limit.
func NewServer(m *job.Manager, maxUploadBytes int64) *Server {
	return &Server{Manager: m, MaxUploadBytes: maxUploadBytes}
}

// Handler builds the ServeMux routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload-file", s.handleUpload)
	mux.HandleFunc("/api/processing-status/", s.handleStatus)
	mux.HandleFunc("/api/generate-report", s.handleGenerateReport)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleUpload implements POST /api/upload-file: multipart file +
// payment_mode + area, returning {processing_id} or a 400 ValidationError.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("request too large or malformed: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	paymentMode := r.FormValue("payment_mode")
	channelID, ok := channel.CanonicalizeID(paymentMode)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown payment_mode %q", paymentMode))
		return
	}

	area := r.FormValue("area")
	if _, ok := job.ValidAreaTag(area); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid area %q", area))
		return
	}

	j, err := s.Manager.Submit(fileBytes, channelID, area)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"processing_id": j.ID})
}

// handleStatus implements GET /api/processing-status/<id>.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := r.URL.Path[len("/api/processing-status/"):]
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing job id")
		return
	}

	state, progress, errMsg, err := s.Manager.Status(id)
	if err == job.ErrNotFound {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	resp := map[string]any{
		"status":   string(state),
		"progress": progress,
	}
	if errMsg != "" {
		resp["error"] = errMsg
	}

	if state == job.Completed {
		groups, _ := s.Manager.FetchResult(id)

		processedData := make([]groupWire, 0, len(groups))
		rawContents := make(map[string][]string, len(groups))
		for _, g := range groups {
			processedData = append(processedData, groupWire{
				ReferenceKey: g.ReferenceKey,
				ChannelID:    string(g.ChannelID),
				Count:        g.Count,
				Total:        int64(g.Total),
				Dates:        g.Dates(),
			})
			rawContents[g.ReferenceKey] = g.RawLines
		}

		resp["processed_data"] = processedData
		resp["raw_contents"] = rawContents
		resp["summary"] = string(report.Summary(groups))
	}

	writeJSON(w, http.StatusOK, resp)
}

// groupWire is the JSON shape of one group as it round-trips through the
// client between the status endpoint and generate-report: the client
// holds onto whatever processed_data/raw_contents it was last handed and
// POSTs it back rather than the server re-fetching by job id, matching
// the stateless report step §6 describes.
type groupWire struct {
	ReferenceKey string   `json:"reference_key"`
	ChannelID    string   `json:"channel_id"`
	Count        uint32   `json:"count"`
	Total        int64    `json:"total_cents"`
	Dates        []string `json:"dates"`
}

// generateReportRequest is the JSON body POST /api/generate-report accepts.
type generateReportRequest struct {
	ProcessedData    []groupWire         `json:"processed_data"`
	RawContents      map[string][]string `json:"raw_contents"`
	OriginalFilename string              `json:"original_filename"`
	Area             string              `json:"area"`
}

// handleGenerateReport implements POST /api/generate-report, rebuilding
// groups from the client-supplied processed_data/raw_contents and
// streaming back a ZIP archive.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if _, ok := job.ValidAreaTag(req.Area); !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid area %q", req.Area))
		return
	}

	groups := make([]*aggregator.Group, 0, len(req.ProcessedData))
	for _, gw := range req.ProcessedData {
		groups = append(groups, aggregator.NewGroup(
			gw.ReferenceKey,
			channel.ID(gw.ChannelID),
			gw.Count,
			money.Cents(gw.Total),
			req.RawContents[gw.ReferenceKey],
			gw.Dates,
		))
	}

	archiveBytes, err := report.BuildArchive(groups, req.Area)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	base := req.OriginalFilename
	if base == "" {
		base = "settlement"
	}
	filename := report.ArchiveName(base, req.Area)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archiveBytes); err != nil {
		log.Printf("httpapi: writing archive response: %v", err)
	}
}

// handleHealth implements GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
