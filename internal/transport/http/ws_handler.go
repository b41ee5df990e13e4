package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"planty-quiz-service/internal/app"
	"planty-quiz-service/internal/domain"
)

// WSHandler drives one quiz session per websocket connection. The client
// walks the setup -> question -> feedback -> results loop by sending start,
// answer, next and restart messages; the handler never decides correctness
// itself, it only relays selections into the quiz service.
type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode       string   `json:"mode"`
	Categories []string `json:"categories"`
	// Count mirrors the setup form: a number in string form, "all", or
	// "allPlanties" for one question per plant.
	Count string `json:"count"`
}

type answerPayload struct {
	OptionID string `json:"optionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	var sessionID string
	defer func() {
		if sessionID != "" {
			// Drop abandoned sessions when the client disconnects mid-quiz.
			h.service.Abandon(ctx, sessionID)
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "start":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, "invalid start payload")
				continue
			}
			if sessionID != "" {
				// A re-start over the same connection discards the previous session.
				h.service.Abandon(ctx, sessionID)
				sessionID = ""
			}
			session, err := h.service.StartSession(ctx, domain.Mode(payload.Mode), parseCategories(payload.Categories), parseCount(payload.Count))
			if err != nil && session == nil {
				h.writeError(conn, err.Error())
				continue
			}
			if err != nil {
				// Catalog failure is non-fatal: warn and continue with the empty session.
				h.writeError(conn, err.Error())
			}
			sessionID = session.ID()
			if session.State() == app.StateFinished {
				summary, _ := session.Summary()
				h.write(conn, "results", summary)
				continue
			}
			view, err := session.Question()
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			h.write(conn, "question", view)

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, "invalid answer payload")
				continue
			}
			feedback, err := h.service.Answer(ctx, sessionID, payload.OptionID)
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			h.write(conn, "feedback", feedback)

		case "next":
			view, summary, err := h.service.Advance(ctx, sessionID)
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			if summary != nil {
				h.write(conn, "results", *summary)
				continue
			}
			h.write(conn, "question", *view)

		case "restart":
			if err := h.service.Restart(ctx, sessionID); err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			sessionID = ""
			h.write(conn, "setup", struct{}{})

		default:
			h.writeError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) write(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		h.log.Warn("ws write failed", zap.String("type", msgType), zap.Error(err))
	}
}

func (h *WSHandler) writeError(conn *websocket.Conn, message string) {
	h.write(conn, "error", errorPayload{Message: message})
}

func parseCategories(raw []string) []domain.Category {
	categories := make([]domain.Category, 0, len(raw))
	for _, c := range raw {
		categories = append(categories, domain.Category(c))
	}
	return categories
}

// parseCount maps the setup form's count value onto the session sentinels.
// Anything unparseable falls back to all built questions.
func parseCount(raw string) domain.QuestionCount {
	switch raw {
	case "", "all":
		return domain.CountAllQuestions
	case "allPlanties", "allPlants":
		return domain.CountAllPlants
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return domain.CountAllQuestions
	}
	return domain.QuestionCount(n)
}
