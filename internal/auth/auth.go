package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Auth struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewAuth(db *sql.DB, log zerolog.Logger) *Auth {
	return &Auth{DB: db, log: log}
}

type registerRequest struct {
	Nickname string `json:"nickname"`
}

type registerResponse struct {
	PilotID  string `json:"pilot_id"`
	Nickname string `json:"nickname"`
	Tag      int    `json:"tag"`
}

type loginRequest struct {
	Nickname string `json:"nickname"`
	Tag      int    `json:"tag"`
}

// RegisterHandler creates a pilot with a nickname and an auto-generated tag.
func (a *Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	nick := strings.TrimSpace(req.Nickname)
	if nick == "" {
		http.Error(w, "empty nickname", http.StatusBadRequest)
		return
	}

	tag, pilotID, err := a.insertPilotWithTag(nick)
	if err != nil {
		a.log.Error().Err(err).Msg("register")
		http.Error(w, "failed to create pilot", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "pilot_id",
		Value:    pilotID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	resp := registerResponse{
		PilotID:  pilotID,
		Nickname: nick,
		Tag:      tag,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// LoginHandler sets the cookie for an existing nickname+tag combo.
func (a *Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	nick := strings.TrimSpace(req.Nickname)
	if nick == "" || req.Tag <= 0 {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}

	var pilotID string
	err := a.DB.QueryRow(`SELECT id FROM pilots WHERE nickname = $1 AND tag = $2`, nick, req.Tag).Scan(&pilotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "pilot not found", http.StatusNotFound)
			return
		}
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "pilot_id",
		Value:    pilotID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	resp := registerResponse{
		PilotID:  pilotID,
		Nickname: nick,
		Tag:      req.Tag,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// insertPilotWithTag retries random tag generation and inserts the pilot atomically.
func (a *Auth) insertPilotWithTag(nickname string) (int, string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < 20; i++ {
		tag := rng.Intn(9999) + 1 // 1..9999
		pilotID := "p_" + uuid.NewString()

		var insertedID string
		err := a.DB.QueryRow(`
			INSERT INTO pilots (id, nickname, tag, shards)
			VALUES ($1, $2, $3, 0)
			ON CONFLICT (nickname, tag) DO NOTHING
			RETURNING id
		`, pilotID, nickname, tag).Scan(&insertedID)

		if errors.Is(err, sql.ErrNoRows) {
			continue // Tag collision, retry
		}
		if err != nil {
			return 0, "", err
		}

		return tag, insertedID, nil
	}

	return 0, "", fmt.Errorf("failed to generate unique tag for %s", nickname)
}

// ReadPilotID extracts the pilot_id cookie.
func ReadPilotID(r *http.Request) (string, error) {
	c, err := r.Cookie("pilot_id")
	if err != nil || c.Value == "" {
		return "", errors.New("missing pilot id cookie")
	}
	return c.Value, nil
}
