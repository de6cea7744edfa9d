package validation

import (
	"encoding/json"
	"strings"

	"tournament/models"
)

// Consent decodes the agreed-to-terms flag. true, 1, "true" and "1" mean
// agreement; every other value decodes to false instead of failing.
type Consent bool

func (c *Consent) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*c = false
		return nil
	}
	switch v := raw.(type) {
	case bool:
		*c = Consent(v)
	case float64:
		*c = v == 1
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		*c = s == "true" || s == "1"
	default:
		*c = false
	}
	return nil
}

// Registration is the public team registration payload.
type Registration struct {
	GameType          string  `json:"gameType" validate:"required,oneof=pubg freefire"`
	TeamName          string  `json:"teamName" validate:"required,min=3,max=50"`
	LeaderName        string  `json:"leaderName" validate:"required,min=2,max=100"`
	LeaderWhatsapp    string  `json:"leaderWhatsapp" validate:"required,whatsapp"`
	LeaderPlayerID    string  `json:"leaderPlayerId" validate:"required,min=3,max=50"`
	Player2Name       string  `json:"player2Name" validate:"required,min=2,max=100"`
	Player2PlayerID   string  `json:"player2PlayerId" validate:"required,min=3,max=50"`
	Player3Name       string  `json:"player3Name" validate:"required,min=2,max=100"`
	Player3PlayerID   string  `json:"player3PlayerId" validate:"required,min=3,max=50"`
	Player4Name       string  `json:"player4Name" validate:"required,min=2,max=100"`
	Player4PlayerID   string  `json:"player4PlayerId" validate:"required,min=3,max=50"`
	YoutubeVote       string  `json:"youtubeVote" validate:"required,oneof=yes no"`
	TransactionID     string  `json:"transactionId" validate:"required,min=5,max=100"`
	PaymentScreenshot string  `json:"paymentScreenshot" validate:"required"`
	AgreedToTerms     Consent `json:"agreedToTerms" validate:"eq=true"`
}

func (r *Registration) normalize() {
	for _, s := range []*string{
		&r.GameType, &r.TeamName, &r.LeaderName, &r.LeaderWhatsapp, &r.LeaderPlayerID,
		&r.Player2Name, &r.Player2PlayerID, &r.Player3Name, &r.Player3PlayerID,
		&r.Player4Name, &r.Player4PlayerID, &r.YoutubeVote, &r.TransactionID,
		&r.PaymentScreenshot,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// Registration checks a payload and returns the team it describes. The team
// has no id, status or timestamps yet.
func (v *Validator) Registration(r *Registration) (models.Team, error) {
	r.normalize()
	if err := v.Struct(r); err != nil {
		return models.Team{}, err
	}

	return models.Team{
		GameType:          models.GameType(r.GameType),
		TeamName:          r.TeamName,
		LeaderName:        r.LeaderName,
		LeaderWhatsapp:    r.LeaderWhatsapp,
		LeaderPlayerID:    r.LeaderPlayerID,
		Player2Name:       r.Player2Name,
		Player2PlayerID:   r.Player2PlayerID,
		Player3Name:       r.Player3Name,
		Player3PlayerID:   r.Player3PlayerID,
		Player4Name:       r.Player4Name,
		Player4PlayerID:   r.Player4PlayerID,
		YoutubeVote:       r.YoutubeVote,
		TransactionID:     r.TransactionID,
		PaymentScreenshot: r.PaymentScreenshot,
		AgreedToTerms:     1,
	}, nil
}
