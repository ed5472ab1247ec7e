package models

import "time"

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreatePollRequest struct {
	Title  string    `json:"title"`
	Expiry time.Time `json:"expiry"`
}

type UpdatePollRequest struct {
	Title  string    `json:"title"`
	Expiry time.Time `json:"expiry"`
}

type CreateQuestionRequest struct {
	Text string `json:"text"`
	Poll int64  `json:"poll"`
}

type UpdateQuestionRequest struct {
	Text string `json:"text"`
}

type CreateChoiceRequest struct {
	Text     string `json:"text"`
	Question int64  `json:"question"`
}

type UpdateChoiceRequest struct {
	Text string `json:"text"`
}

type VoteRequest struct {
	Choice int64 `json:"choice"`
}

// Response types

type RegisterResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type VoteResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx rejection with a user-facing reason.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse is the body of not-found and permission failures.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsActive     bool      `json:"is_active"`
	DateJoined   time.Time `json:"date_joined"`
}

type Poll struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      string     `json:"user"` // owner username
	Expiry    time.Time  `json:"expiry"`
	ExpiresIn string     `json:"expires_in,omitempty"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID      int64    `json:"id"`
	Text    string   `json:"text"`
	Poll    int64    `json:"poll"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Question int64  `json:"question"`
}

type Vote struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user,omitempty"`
	ChoiceID   int64     `json:"choice"`
	QuestionID int64     `json:"question"`
	IPAddress  *string   `json:"-"` // Never expose in JSON
	SessionKey *string   `json:"-"` // Never expose in JSON
	VotedAt    time.Time `json:"voted_at"`
}

// Tally types

type ChoiceCount struct {
	Choice string `json:"choice"`
	Votes  int    `json:"votes"`
}

type QuestionResult struct {
	Question string        `json:"question"`
	Choices  []ChoiceCount `json:"choices"`
	Winner   *ChoiceCount  `json:"winner"`
}

type PollResults struct {
	Poll    string           `json:"poll"`
	Results []QuestionResult `json:"results"`
}
