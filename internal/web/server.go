package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"ai-chat-history/internal/chat"
)

const credentialsHint = "Please check your OPENAI_API_KEY in the .env file"

// Server exposes the chat UI and its JSON API on a single port.
type Server struct {
	svc         *chat.Service
	server      *http.Server
	port        int
	model       string
	temperature float32
	startTime   time.Time
}

type messageJSON struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type stateJSON struct {
	Current  string        `json:"current"`
	Sessions []string      `json:"sessions"`
	Messages []messageJSON `json:"messages"`
	Welcome  bool          `json:"welcome"`
}

func NewServer(svc *chat.Service, port int, model string, temperature float32) *Server {
	return &Server{
		svc:         svc,
		port:        port,
		model:       model,
		temperature: temperature,
		startTime:   time.Now(),
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/static/", s.handleStatic)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/sessions/new", s.handleNewChat)
	mux.HandleFunc("/api/sessions/switch", s.handleSwitch)
	mux.HandleFunc("/api/sessions/clear", s.handleClear)
	mux.HandleFunc("/", s.handleRoot)

	// No WriteTimeout: a turn blocks on the model provider for as long as
	// the provider takes.
	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Printf("Starting chat web server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl := template.Must(template.New("chat").Parse(getHTMLTemplate()))
	data := struct {
		Model       string
		Temperature float32
	}{Model: s.model, Temperature: s.temperature}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/static/")

	switch path {
	case "style.css":
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte(getCSS()))
	case "script.js":
		w.Header().Set("Content-Type", "application/javascript")
		w.Write([]byte(getJS()))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]interface{}{
		"status": "ok",
		"model":  s.model,
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeState(w)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	turn, err := s.svc.Send(r.Context(), req.Message)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error": err.Error(),
			"hint":  credentialsHint,
		})
		return
	}

	writeJSON(w, map[string]string{
		"session": turn.Session,
		"reply":   turn.Reply.Content,
	})
}

func (s *Server) handleNewChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.svc.NewChat()
	s.writeState(w)
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON request: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.svc.Switch(req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeState(w)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.svc.Clear()
	s.writeState(w)
}

func (s *Server) writeState(w http.ResponseWriter) {
	st := s.svc.State()

	out := stateJSON{
		Current:  st.Current,
		Sessions: st.Sessions,
		Messages: make([]messageJSON, 0, len(st.Messages)),
		Welcome:  st.Welcome,
	}
	for _, m := range st.Messages {
		out.Messages = append(out.Messages, messageJSON{Role: m.Role, Content: m.Content})
	}

	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
