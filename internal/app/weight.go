package app

import (
	"github.com/google/uuid"
	"github.com/pscheid92/namepulse/internal/domain"
)

const (
	DefaultCloudMinSize = 24.0
	DefaultCloudMaxSize = 72.0

	hueStep = 60
)

// CloudWeightMapper turns vote counts into font size and hue for the cloud.
type CloudWeightMapper struct {
	MinSize float64
	MaxSize float64
}

func NewCloudWeightMapper(minSize, maxSize float64) CloudWeightMapper {
	return CloudWeightMapper{MinSize: minSize, MaxSize: maxSize}
}

// Weight scales votes linearly against maxVotes into [MinSize, MaxSize].
// With maxVotes == 0 every name gets MinSize.
func (m CloudWeightMapper) Weight(votes, maxVotes int) domain.RenderWeight {
	size := m.MinSize
	if maxVotes > 0 {
		size = m.MinSize + float64(votes)/float64(maxVotes)*(m.MaxSize-m.MinSize)
	}
	return domain.RenderWeight{
		Size: clamp(size, m.MinSize, m.MaxSize),
		Hue:  (votes * hueStep) % 360,
	}
}

// Tags computes a cloud tag for every name against the current distribution.
func (m CloudWeightMapper) Tags(names []domain.Name, trends map[uuid.UUID]domain.Trend) []domain.CloudTag {
	maxVotes := 0
	for _, name := range names {
		maxVotes = max(maxVotes, name.Votes)
	}

	tags := make([]domain.CloudTag, 0, len(names))
	for _, name := range names {
		w := m.Weight(name.Votes, maxVotes)
		tags = append(tags, domain.CloudTag{
			ID:    name.ID,
			Text:  name.Text,
			Votes: name.Votes,
			Size:  w.Size,
			Hue:   w.Hue,
			Trend: trendOf(trends, name.ID),
		})
	}
	return tags
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
