package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"drugmatch-service/internal/config"
	"drugmatch-service/internal/drugmatch/model"
	"drugmatch-service/internal/drugmatch/service"
	"drugmatch-service/internal/imageprep"
	"drugmatch-service/internal/ocr"
	"drugmatch-service/internal/utils"
)

// Deps are shared by every handler. OCR is nil when image matching is off.
type Deps struct {
	Cfg     config.Config
	Matcher *service.Matcher
	OCR     *ocr.Reader
}

// MatchText splits free text into lines and matches each one.
func MatchText(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := model.MatchTextRequest{TopK: d.Cfg.DefaultTopK, MinScore: d.Cfg.DefaultMinScore}
		if !decodeBody(w, r, &req) || !validLimits(w, req.TopK, req.MinScore) {
			return
		}
		lines := splitLines(req.Text)
		writeJSON(w, http.StatusOK, model.MatchLinesResponse{
			Lines:  lines,
			Result: d.Matcher.MatchManyLines(lines, req.TopK, req.MinScore),
		})
	}
}

func MatchLines(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := model.MatchLinesRequest{TopK: d.Cfg.DefaultTopK, MinScore: d.Cfg.DefaultMinScore}
		if !decodeBody(w, r, &req) || !validLimits(w, req.TopK, req.MinScore) {
			return
		}
		writeJSON(w, http.StatusOK, model.MatchLinesResponse{
			Result: d.Matcher.MatchManyLines(req.Lines, req.TopK, req.MinScore),
		})
	}
}

func MatchQuery(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := model.MatchTextRequest{TopK: d.Cfg.DefaultTopK, MinScore: d.Cfg.DefaultMinScore}
		if !decodeBody(w, r, &req) || !validLimits(w, req.TopK, req.MinScore) {
			return
		}
		writeJSON(w, http.StatusOK, model.MatchQueryResponse{
			Query:      req.Text,
			Normalized: service.NormalizeName(req.Text),
			Result:     d.Matcher.MatchSingleQuery(req.Text, req.TopK, req.MinScore),
		})
	}
}

// MatchDocument treats the lines as one document: it extracts candidates and
// aggregates their matches into a single ranking.
func MatchDocument(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := model.MatchDocumentRequest{TopK: d.Cfg.DefaultTopK}
		if !decodeBody(w, r, &req) || !validLimits(w, req.TopK, 0) {
			return
		}
		cands := service.ExtractCandidates(req.Lines)
		writeJSON(w, http.StatusOK, model.MatchDocumentResponse{
			Candidates: cands,
			Result:     d.Matcher.MatchDocument(cands, req.TopK),
		})
	}
}

// MatchImage runs OCR on the multipart "image" field, then does what
// MatchDocument does with the recognized lines.
func MatchImage(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.OCR == nil {
			writeError(w, http.StatusServiceUnavailable, "ocr is disabled")
			return
		}
		log := zerolog.Ctx(r.Context())
		start := time.Now()

		if err := r.ParseMultipartForm(d.Cfg.MaxUploadBytes()); err != nil {
			writeBodyError(w, err, "bad multipart form")
			return
		}
		file, hdr, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing image: "+err.Error())
			return
		}
		defer file.Close()

		topK := utils.IntOr(r.FormValue("top_k"), d.Cfg.DefaultTopK)
		if !validLimits(w, topK, 0) {
			return
		}

		img, err := imageprep.Decode(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "cannot decode image: "+err.Error())
			return
		}
		lines, err := d.OCR.ReadLines(r.Context(), img)
		if err != nil {
			if r.Context().Err() != nil {
				log.Debug().Err(err).Msg("client gone during ocr")
				return
			}
			log.Error().Err(err).Str("file", hdr.Filename).Msg("ocr failed")
			writeError(w, http.StatusInternalServerError, "ocr failed")
			return
		}

		cands := service.ExtractCandidates(lines)
		res := d.Matcher.MatchDocument(cands, topK)
		log.Info().
			Str("file", hdr.Filename).
			Str("engine", d.OCR.Engine()).
			Int("lines", len(lines)).
			Int("candidates", len(cands)).
			Int("hits", len(res)).
			Dur("elapsed", time.Since(start)).
			Msg("image matched")

		writeJSON(w, http.StatusOK, model.MatchDocumentResponse{
			Lines:      lines,
			Candidates: cands,
			Result:     res,
		})
	}
}

func splitLines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
