package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"drugmatch-service/internal/config"
	dmHnd "drugmatch-service/internal/drugmatch/handler"
	"drugmatch-service/internal/drugmatch/service"
	"drugmatch-service/internal/middleware"
	"drugmatch-service/internal/ocr"
	"drugmatch-service/server/http/handlers"
)

// NewRouter wires the API. reader may be nil, in which case /match_image
// answers 503.
func NewRouter(cfg config.Config, logger zerolog.Logger, matcher *service.Matcher, reader *ocr.Reader) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(cfg.MaxUploadBytes()))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	health := handlers.Health(matcher, reader != nil)
	r.Get("/", health)
	r.Get("/health", health)

	d := dmHnd.Deps{Cfg: cfg, Matcher: matcher, OCR: reader}
	r.Post("/match_text", dmHnd.MatchText(d))
	r.Post("/match_lines", dmHnd.MatchLines(d))
	r.Post("/match_query", dmHnd.MatchQuery(d))
	r.Post("/match_document", dmHnd.MatchDocument(d))
	r.Post("/match_image", dmHnd.MatchImage(d))

	return r
}
