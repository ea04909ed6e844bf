package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"
	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/services"
	apperrors "portfolio/pkg/errors"
)

const maxBodyBytes = 1 << 20

// Caller-facing outcome messages
const (
	MessageSaved      = "Message saved successfully"
	MessageSent       = "Message sent successfully!"
	MessageServerErr  = "Server error"
	MessageSendFailed = "Failed to send message"
)

// ContactHandler serves the contact form submission endpoint. It holds no
// per-request state.
type ContactHandler struct {
	svc *services.ContactService
	log *zap.Logger
}

// NewContactHandler creates the submission endpoint over svc
func NewContactHandler(svc *services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.Named("http")}
}

type submitBody struct {
	Name    *string `json:"name" xml:"name" form:"name"`
	Email   *string `json:"email" xml:"email" form:"email"`
	Message *string `json:"message" xml:"message" form:"message"`
}

func (b *submitBody) submission() domain.Submission {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return domain.Submission{Name: deref(b.Name), Email: deref(b.Email), Message: deref(b.Message)}
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		appErr := apperrors.New(apperrors.ErrCodeMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method))
		h.log.Info("method not allowed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
		)
		w.Header().Set("Allow", http.MethodPost)
		writeMessage(w, r, h.log, http.StatusMethodNotAllowed, false, appErr.Message)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var body submitBody
	if err := goahttp.RequestDecoder(r).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Info("submission body too large",
				zap.String("path", r.URL.Path),
				zap.Int64("limit_bytes", tooLarge.Limit),
			)
			writeMessage(w, r, h.log, http.StatusBadRequest, false, services.ReasonAllFieldsRequired)
			return
		}
		if err == io.EOF {
			err = goa.MissingPayloadError()
		} else {
			err = goa.DecodePayloadError(err.Error())
		}
		h.log.Info("undecodable submission", zap.String("path", r.URL.Path), zap.Error(err))
		writeMessage(w, r, h.log, http.StatusBadRequest, false, services.ReasonAllFieldsRequired)
		return
	}

	kind := h.svc.Backend().Kind()
	_, err := h.svc.Submit(r.Context(), body.submission())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeBadRequest) {
			writeMessage(w, r, h.log, http.StatusBadRequest, false, services.ReasonAllFieldsRequired)
			return
		}
		if kind == domain.KindPersistence {
			writeMessage(w, r, h.log, http.StatusInternalServerError, false, MessageServerErr)
			return
		}
		writeMessage(w, r, h.log, http.StatusInternalServerError, false, MessageSendFailed)
		return
	}

	if kind == domain.KindPersistence {
		writeMessage(w, r, h.log, http.StatusCreated, true, MessageSaved)
		return
	}
	writeMessage(w, r, h.log, http.StatusOK, true, MessageSent)
}
