package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/model"
	"twinpersona/internal/fingerprint"
	"twinpersona/internal/infra/logging"
	"twinpersona/internal/usecase"
)

const maxBodyBytes = 64 * 1024

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorCode maps a domain error to its HTTP status and stable API code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrAlreadyUsed):
		return http.StatusConflict, "ALREADY_USED"
	case errors.Is(err, domain.ErrCampaignEnded):
		return http.StatusGone, "CAMPAIGN_ENDED"
	case errors.Is(err, domain.ErrCouponNotFound):
		return http.StatusNotFound, "COUPON_NOT_FOUND"
	case errors.Is(err, domain.ErrCouponUsed):
		return http.StatusConflict, "COUPON_ALREADY_USED"
	case errors.Is(err, domain.ErrCouponExpired):
		return http.StatusGone, "COUPON_EXPIRED"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, domain.ErrPaymentNotCompleted):
		return http.StatusPaymentRequired, "NOT_COMPLETED"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "TOKEN_INVALID"
	case errors.Is(err, domain.ErrConfigMissing):
		return http.StatusInternalServerError, "CONFIG_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorCode(err)
	if status >= http.StatusInternalServerError {
		logging.With(r.Context(), s.deps.Logger).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    code,
		Message: s.translator(r).T(code),
	}})
}

func decodeJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return domain.ErrInvalidArgument
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type questionDTO struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
}

func (s *Server) handleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	kind := model.QuizKind(r.URL.Query().Get("kind"))
	qs, err := s.deps.Quiz.Questions(kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]questionDTO, 0, len(qs))
	for _, q := range qs {
		out = append(out, questionDTO{ID: q.ID, Text: q.Text, OptionA: q.OptionA, OptionB: q.OptionB})
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": out})
}

type scoreRequest struct {
	MBTIAnswers      []model.Answer `json:"mbti_answers"`
	CharacterAnswers []model.Answer `json:"character_answers"`
}

func (s *Server) handleQuizScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.deps.Quiz.Score(r.Context(), req.MBTIAnswers, req.CharacterAnswers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCampaignStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.deps.Campaign.Status(r.Context(), fingerprint.FromRequest(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type redeemRequest struct {
	Action   string `json:"action"`
	Rating   int    `json:"rating,omitempty"`
	Comment  string `json:"comment,omitempty"`
	Platform string `json:"platform,omitempty"`
}

type redeemResponse struct {
	CouponCode string `json:"coupon_code"`
	ExpiresIn  int64  `json:"expires_in_seconds"`
}

func (s *Server) handleCampaignRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	action := model.Action(req.Action)
	var payload any
	switch action {
	case model.ActionFeedback:
		payload = model.FeedbackPayload{Rating: req.Rating, Comment: req.Comment}
	case model.ActionShare:
		payload = model.SharePayload{Platform: req.Platform}
	}

	coupon, err := s.deps.Campaign.Redeem(r.Context(), fingerprint.FromRequest(r), action, payload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redeemResponse{
		CouponCode: coupon.Code,
		ExpiresIn:  int64(model.CouponTTL.Seconds()),
	})
}

type couponValidateRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleCouponValidate(w http.ResponseWriter, r *http.Request) {
	var req couponValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	coupon, err := s.deps.Coupons.Validate(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"code":  coupon.Code,
	})
}

type paymentIntentRequest struct {
	Email string `json:"email,omitempty"`
}

func (s *Server) handlePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	intent, err := s.deps.Payments.CreateIntent(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
		"amount":            intent.Amount,
		"currency":          intent.Currency,
	})
}

func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	if err := s.deps.Payments.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		// The provider retries on non-2xx; reject only what it should resend.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "INVALID_INPUT",
			Message: s.translator(r).T("INVALID_INPUT"),
		}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

type refundRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

func (s *Server) handlePaymentRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.deps.Payments.Refund(r.Context(), fingerprint.FromRequest(r), req.PaymentIntentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"refund_id": result.ID,
		"amount":    result.Amount,
	})
}

type claimRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

func (s *Server) handlePremiumClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	signed, err := s.deps.Payments.ClaimToken(r.Context(), req.PaymentIntentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": signed})
}

type verifyRequest struct {
	Token string `json:"token"`
}

func (s *Server) handlePremiumVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	token := req.Token
	if token == "" {
		token = bearerToken(r)
	}
	at, err := s.deps.Payments.VerifyToken(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":      true,
		"expires_at": at.ExpiresAt,
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, _ := strings.CutPrefix(auth, "Bearer ")
	return token
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req usecase.AdviceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.deps.Advice.Advise(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	var req usecase.ImageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.deps.Images.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
