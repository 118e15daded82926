package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/fingerprint"
	"twinpersona/internal/infra/i18n"
	"twinpersona/internal/infra/logging"
	red "twinpersona/internal/infra/redis"
	"twinpersona/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RateLimiter is the slice of the store-backed limiter the server needs.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Deps carries everything the HTTP layer is wired with.
type Deps struct {
	Quiz     *usecase.QuizUseCase
	Campaign *usecase.CampaignUseCase
	Coupons  *usecase.CouponUseCase
	Payments *usecase.PaymentUseCase
	Advice   *usecase.AdviceUseCase
	Images   *usecase.ImageUseCase

	Limiter         RateLimiter
	Logger          *zerolog.Logger
	CORSAllowOrigin string
	RateLimitPerMin int
}

type Server struct {
	deps        Deps
	translators map[string]*i18n.Translator
	httpServer  *http.Server
}

func NewServer(port int, deps Deps) (*Server, error) {
	translators := make(map[string]*i18n.Translator, 2)
	for _, lang := range []string{"ja", "en"} {
		tr, err := i18n.NewTranslator(i18n.LocalesFS, lang)
		if err != nil {
			return nil, fmt.Errorf("load %s locale: %w", lang, err)
		}
		translators[lang] = tr
	}

	s := &Server{deps: deps, translators: translators}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestContext)
	r.Use(s.cors)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/quiz/questions", s.handleQuizQuestions)
		r.Post("/quiz/score", s.handleQuizScore)

		r.Get("/campaign/status", s.handleCampaignStatus)
		r.With(s.rateLimit("redeem")).Post("/campaign/redeem", s.handleCampaignRedeem)
		r.With(s.rateLimit("coupon")).Post("/coupon/validate", s.handleCouponValidate)

		r.Post("/payment/intent", s.handlePaymentIntent)
		r.Post("/payment/webhook", s.handlePaymentWebhook)
		r.With(s.rateLimit("refund")).Post("/payment/refund", s.handlePaymentRefund)

		r.Post("/premium/claim", s.handlePremiumClaim)
		r.Post("/premium/verify", s.handlePremiumVerify)

		r.With(s.rateLimit("ai")).Post("/ai/advice", s.handleAdvice)
		r.With(s.rateLimit("ai")).Post("/ai/image", s.handleImage)
	})

	return r
}

func (s *Server) Start() error {
	s.deps.Logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestContext stamps the request id and client fingerprint into the
// context so every downstream log line carries both.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = logging.WithRequestID(ctx, reqID)
		}
		ctx = logging.WithFingerprint(ctx, fingerprint.FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.deps.CORSAllowOrigin
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit damps per-fingerprint abuse of the mutating endpoints. A store
// failure fails open: blocking every user beats nothing, but not here.
func (s *Server) rateLimit(endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.deps.Limiter == nil || s.deps.RateLimitPerMin <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			key := red.FingerprintKey(endpoint, fingerprint.FromRequest(r))
			ok, err := s.deps.Limiter.Allow(r.Context(), key, s.deps.RateLimitPerMin, time.Minute)
			if err != nil {
				logging.With(r.Context(), s.deps.Logger).Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				s.writeError(w, r, domain.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// translator picks a locale from Accept-Language; Japanese is the default.
func (s *Server) translator(r *http.Request) *i18n.Translator {
	lang := strings.ToLower(r.Header.Get("Accept-Language"))
	if strings.HasPrefix(lang, "en") {
		return s.translators["en"]
	}
	return s.translators["ja"]
}
