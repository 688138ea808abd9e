package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pscheid92/namepulse/internal/domain"
)

type boardMessage struct {
	Leaderboard []leaderboardItem `json:"leaderboard"`
	Cloud       []domain.CloudTag `json:"cloud"`
	EvaluatedAt time.Time         `json:"evaluatedAt"`
}

type leaderboardItem struct {
	Rank  int          `json:"rank"`
	ID    uuid.UUID    `json:"id"`
	Text  string       `json:"text"`
	Votes int          `json:"votes"`
	Trend domain.Trend `json:"trend"`
}

func encodeBoard(board domain.Board) ([]byte, error) {
	msg := boardMessage{
		Leaderboard: make([]leaderboardItem, len(board.Leaderboard)),
		Cloud:       board.Cloud,
		EvaluatedAt: board.EvaluatedAt.UTC(),
	}
	if msg.Cloud == nil {
		msg.Cloud = []domain.CloudTag{}
	}
	for i, e := range board.Leaderboard {
		msg.Leaderboard[i] = leaderboardItem{
			Rank:  e.Rank,
			ID:    e.Name.ID,
			Text:  e.Name.Text,
			Votes: e.Name.Votes,
			Trend: e.Trend,
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return data, nil
}
