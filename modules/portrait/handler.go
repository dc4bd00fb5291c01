package portrait

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"historical-portrait-server/modules/common/config"
	"historical-portrait-server/modules/common/utils"
)

// Generator - the external image-generation call, injected so tests can fake
// the upstream service
type Generator interface {
	GeneratePortrait(ctx context.Context, imageData []byte, prompt string) (string, error)
}

// Notifier - optional live-gallery feed
type Notifier interface {
	PortraitCreated(portraitID int, artStyle string, createdAt string)
}

type PortraitHandler struct {
	store     *MemStore
	generator Generator
	notifier  Notifier
}

// NewPortraitHandler - store and generator are constructed once at startup
// and passed in here; notifier may be nil
func NewPortraitHandler(store *MemStore, generator Generator, notifier Notifier) *PortraitHandler {
	return &PortraitHandler{
		store:     store,
		generator: generator,
		notifier:  notifier,
	}
}

// RegisterRoutes - wire portrait endpoints
func (h *PortraitHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate-portrait", h.GeneratePortrait).Methods("POST", "OPTIONS")
	r.HandleFunc("/portraits/{id}", h.GetPortrait).Methods("GET", "OPTIONS")
	log.Println("✅ Portrait routes registered: /generate-portrait, /portraits/{id}")
}

// GeneratePortrait - run one request through the whole pipeline:
// validate → prepare image → build prompt → generate → store → respond.
// No step is retried; any failure ends the request.
func (h *PortraitHandler) GeneratePortrait(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	requestID := uuid.New().String()
	cfg := config.GetConfig()
	maxBytes := cfg.MaxUploadBytes()

	// Hard cap on the whole body; headroom for the multipart framing and
	// text fields around the image part
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<19)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		log.Printf("❌ [%s] Failed to parse multipart form: %v", requestID, err)
		writeError(w, http.StatusBadRequest, "Invalid upload form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided", nil)
		return
	}
	defer file.Close()

	req := GenerationRequest{
		YearWar:      r.FormValue("yearWar"),
		Side:         r.FormValue("side"),
		Rank:         r.FormValue("rank"),
		Branch:       r.FormValue("branch"),
		ExtraDetails: r.FormValue("extraDetails"),
		ArtStyle:     r.FormValue("artStyle"),
	}

	if details := req.Validate(); len(details) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid request data", details)
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ [%s] Failed to read upload: %v", requestID, err)
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded image", nil)
		return
	}

	log.Printf("🎖️  [%s] Portrait generation request:", requestID)
	log.Printf("  - Era: %s | Side: %s | Rank: %s | Branch: %s", req.YearWar, req.Side, req.Rank, req.Branch)
	log.Printf("  - Style: %s | Image: %s (%d bytes)", req.ArtStyle, header.Header.Get("Content-Type"), len(imageData))

	prepared, err := PrepareImage(imageData, header.Header.Get("Content-Type"), maxBytes)
	if err != nil {
		h.respondError(w, requestID, err)
		return
	}

	prompt, err := BuildPrompt(&req)
	if err != nil {
		h.respondError(w, requestID, err)
		return
	}

	generatedURL, err := h.generator.GeneratePortrait(r.Context(), prepared, prompt)
	if err != nil {
		h.respondError(w, requestID, err)
		return
	}

	stored := h.store.CreatePortrait(InsertPortrait{
		OriginalImageURL:  "data:image/jpeg;base64," + utils.ConvertImageToBase64(prepared),
		GeneratedImageURL: generatedURL,
		YearWar:           req.YearWar,
		Side:              req.Side,
		Rank:              req.Rank,
		Branch:            req.Branch,
		ExtraDetails:      req.ExtraDetails,
		ArtStyle:          req.ArtStyle,
	})

	log.Printf("✅ [%s] Portrait stored: id=%d", requestID, stored.ID)

	if h.notifier != nil {
		h.notifier.PortraitCreated(stored.ID, stored.ArtStyle, stored.CreatedAt)
	}

	json.NewEncoder(w).Encode(GenerateResponse{
		Success:    true,
		PortraitID: stored.ID,
		ImageURL:   generatedURL,
	})
}

// GetPortrait - look up a stored portrait by id
func (h *PortraitHandler) GetPortrait(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid portrait ID", nil)
		return
	}

	record, err := h.store.GetPortrait(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Portrait not found", nil)
		return
	}

	json.NewEncoder(w).Encode(record)
}

// respondError - map a pipeline error to its HTTP status. Clients get the
// user-safe message; the raw cause goes to the log and, for upstream
// failures, into the details field for debugging.
func (h *PortraitHandler) respondError(w http.ResponseWriter, requestID string, err error) {
	log.Printf("❌ [%s] %v", requestID, err)

	var perr *Error
	if !errors.As(err, &perr) {
		writeError(w, http.StatusInternalServerError,
			"Internal server error occurred during portrait generation", nil)
		return
	}

	switch perr.Kind {
	case KindInvalidInput, KindUnprocessableImage:
		writeError(w, http.StatusBadRequest, perr.Message, nil)
	case KindNotFound:
		writeError(w, http.StatusNotFound, perr.Message, nil)
	case KindUpstreamFailure:
		var details interface{}
		if perr.Err != nil {
			details = perr.Err.Error()
		}
		writeError(w, http.StatusInternalServerError, perr.Message, details)
	default:
		writeError(w, http.StatusInternalServerError,
			"Internal server error occurred during portrait generation", nil)
	}
}

func writeError(w http.ResponseWriter, status int, message string, details interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Details: details})
}
