package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DayLayout is the wire and storage format of VideoDocument.Day.
const DayLayout = "2006-01-02"

// VideoDocument is a booked video slot as stored in the "videos" collection.
type VideoDocument struct {
	ID            bson.ObjectID    `bson:"_id,omitempty"`
	UserID        string           `bson:"user_id"`
	Creator       string           `bson:"creator"`
	Title         string           `bson:"title"`
	Day           string           `bson:"day"`
	From          string           `bson:"from"`
	Till          string           `bson:"till"`
	Ratings       []RatingDocument `bson:"ratings,omitempty"`
	AverageRating int              `bson:"average_rating"`
	Version       int64            `bson:"version"`
	CreatedAt     time.Time        `bson:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at"`
}

type RatingDocument struct {
	Voter string `bson:"voter"`
	Score int    `bson:"score"`
	Text  string `bson:"text,omitempty"`
}

// VideoRequest is the body of POST /api/video. UserID is the optional owner
// override; everything identifying the caller comes from the token.
type VideoRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Day    string `json:"day"`
	From   string `json:"from"`
	Till   string `json:"till"`
}

// ScoreRequest is the body of POST /api/video/{videoId}.
type ScoreRequest struct {
	Score int    `json:"score"`
	Text  string `json:"text"`
}

type RatingResponse struct {
	Voter string `json:"voter"`
	Score int    `json:"score"`
	Text  string `json:"text,omitempty"`
}

type VideoResponse struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Creator       string           `json:"creator"`
	Title         string           `json:"title"`
	Day           string           `json:"day"`
	From          string           `json:"from"`
	Till          string           `json:"till"`
	Ratings       []RatingResponse `json:"ratings,omitempty"`
	AverageRating int              `json:"averageRating"`
}

// NewVideoDocument maps a create request onto a new document. The store
// assigns the ID, so it is left zero.
func NewVideoDocument(req VideoRequest, creatorID string) *VideoDocument {
	return &VideoDocument{
		UserID:  req.UserID,
		Creator: creatorID,
		Title:   req.Title,
		Day:     req.Day,
		From:    req.From,
		Till:    req.Till,
	}
}

func NewRatingDocument(voterID string, req ScoreRequest) RatingDocument {
	return RatingDocument{
		Voter: voterID,
		Score: req.Score,
		Text:  req.Text,
	}
}

func (v *VideoDocument) ToResponse() VideoResponse {
	resp := VideoResponse{
		ID:            v.ID.Hex(),
		UserID:        v.UserID,
		Creator:       v.Creator,
		Title:         v.Title,
		Day:           v.Day,
		From:          v.From,
		Till:          v.Till,
		AverageRating: v.AverageRating,
	}
	if len(v.Ratings) > 0 {
		resp.Ratings = make([]RatingResponse, len(v.Ratings))
		for i, r := range v.Ratings {
			resp.Ratings[i] = RatingResponse{Voter: r.Voter, Score: r.Score, Text: r.Text}
		}
	}
	return resp
}

func ToResponses(videos []VideoDocument) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, videos[i].ToResponse())
	}
	return out
}

// HasVoted reports whether voterID already appears in the ratings.
func (v *VideoDocument) HasVoted(voterID string) bool {
	for _, r := range v.Ratings {
		if r.Voter == voterID {
			return true
		}
	}
	return false
}

// AddRating appends the rating and recomputes the truncated average.
func (v *VideoDocument) AddRating(r RatingDocument) {
	v.Ratings = append(v.Ratings, r)

	sum := 0
	for _, existing := range v.Ratings {
		sum += existing.Score
	}
	v.AverageRating = sum / len(v.Ratings)
}
