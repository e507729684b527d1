package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nsharda/newscheck/internal/auth"
	"github.com/nsharda/newscheck/internal/store"
	"github.com/nsharda/newscheck/internal/textnorm"
)

// maxUploadBytes caps image uploads handed to the OCR engine.
const maxUploadBytes = 10 << 20

// Classifier scores cleaned text. Satisfied by *classifier.Model.
type Classifier interface {
	Classify(cleaned string) (label string, confidence float64)
}

// TextExtractor pulls text out of an image file. Satisfied by *ocr.Engine.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

type PredictHandler struct {
	classifier Classifier
	ocr        TextExtractor
	history    *store.HistoryStore
	logger     *slog.Logger
}

func NewPredictHandler(c Classifier, o TextExtractor, hs *store.HistoryStore, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{classifier: c, ocr: o, history: hs, logger: logger}
}

type resultView struct {
	Prediction string
	Confidence float64
	Original   string
	Cleaned    string
	Timestamp  string
}

func (h *PredictHandler) renderResult(w http.ResponseWriter, prediction string, confidence float64, original, cleaned string, ts time.Time) {
	render(w, h.logger, "result.html", resultView{
		Prediction: prediction,
		Confidence: confidence,
		Original:   original,
		Cleaned:    cleaned,
		Timestamp:  ts.Format("2006-01-02 15:04:05"),
	})
}

// append persists one prediction record. The record is written on every
// request, placeholders included; a storage failure is logged but does not
// fail the response.
func (h *PredictHandler) append(r *http.Request, original, cleaned, prediction string, confidence float64, ts time.Time) {
	var userID *int64
	if ac, ok := auth.FromContext(r.Context()); ok {
		userID = &ac.UserID
	}
	if err := h.history.Append(original, cleaned, prediction, confidence, ts, userID); err != nil {
		h.logger.Error("append history", "error", err)
	}
}

func (h *PredictHandler) PredictText(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("news_text")
	now := time.Now()

	// Empty submissions still leave a history record, with the classifier
	// untouched.
	if strings.TrimSpace(text) == "" {
		h.append(r, "", "", "No text", 0, now)
		h.renderResult(w, "No text", 0, "", "", now)
		return
	}

	cleaned := textnorm.Clean(text)
	label, confidence := h.classifier.Classify(cleaned)

	h.append(r, text, cleaned, label, confidence, now)
	h.renderResult(w, label, confidence, text, cleaned, now)
}

func (h *PredictHandler) PredictImage(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("news_image")
	if err != nil {
		h.append(r, "", "", "No image", 0, now)
		h.renderResult(w, "No image", 0, "", "", now)
		return
	}
	defer file.Close()

	text := h.extractUpload(r, file)

	// OCR failure or an unreadable image degrades to empty text and flows
	// through the normal classify path.
	cleaned := textnorm.Clean(text)
	label, confidence := h.classifier.Classify(cleaned)

	h.append(r, text, cleaned, label, confidence, now)
	h.renderResult(w, label, confidence, text, cleaned, now)
}

// extractUpload spools the upload to a scratch file for the OCR binary and
// returns whatever text it recognized, empty on any failure.
func (h *PredictHandler) extractUpload(r *http.Request, file io.Reader) string {
	scratch := filepath.Join(os.TempDir(), "newscheck-"+uuid.NewString()+".png")

	out, err := os.Create(scratch)
	if err != nil {
		h.logger.Error("create scratch file", "error", err)
		return ""
	}
	defer os.Remove(scratch)

	_, copyErr := io.Copy(out, file)
	if err := out.Close(); err != nil && copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		h.logger.Error("write scratch file", "error", copyErr)
		return ""
	}

	text, err := h.ocr.ExtractText(r.Context(), scratch)
	if err != nil {
		h.logger.Warn("ocr extract", "error", err)
		return ""
	}
	return text
}

// ChartData serves the dashboard aggregates: totals per label and a
// 12-month histogram.
func (h *PredictHandler) ChartData(w http.ResponseWriter, r *http.Request) {
	counts, err := h.history.CountByLabel()
	if err != nil {
		h.logger.Error("count by label", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	var fake, real int
	for label, count := range counts {
		if label == "FAKE" {
			fake += count
		} else {
			real += count
		}
	}

	monthly, err := h.history.CountByMonth()
	if err != nil {
		h.logger.Error("count by month", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"fake":    fake,
		"real":    real,
		"monthly": monthly,
	})
}

func (h *PredictHandler) History(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	records, err := h.history.ListForUser(ac.UserID)
	if err != nil {
		h.logger.Error("list history", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	render(w, h.logger, "history.html", map[string]any{
		"UserName": ac.Name,
		"Records":  records,
	})
}
