package conversation

import (
	"strings"
	"time"
)

// DefaultInteractionCap bounds the per-user interaction ring.
const DefaultInteractionCap = 20

// UserDetails is the transport-level snapshot stored alongside a record. It
// is refreshed on every interaction.
type UserDetails struct {
	ChatID       int64  `json:"chatId"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"languageCode,omitempty"`
	IsBot        bool   `json:"isBot,omitempty"`
}

// EntityContext captures what the pipeline extracted from one message. The
// store derives preferences from it.
type EntityContext struct {
	Route    string   `json:"route,omitempty"`
	Pincode  string   `json:"pincode,omitempty"`
	Brands   []string `json:"brands,omitempty"`
	PriceMin int      `json:"priceMin,omitempty"`
	PriceMax int      `json:"priceMax,omitempty"`
}

// Interaction is one user message and the reply it produced.
type Interaction struct {
	MessageID   int           `json:"messageId"`
	ChatID      int64         `json:"chatId"`
	UnixDate    int64         `json:"unixDate"`
	UserMessage string        `json:"userMessage"`
	BotMessage  string        `json:"botMessage"`
	Context     EntityContext `json:"context,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Preferences accumulates what a user has shown interest in. Fields are
// derived opportunistically from extracted entities, never asked for.
type Preferences struct {
	PreferredPincode string   `json:"preferredPincode,omitempty"`
	PreferredBrands  []string `json:"preferredBrands,omitempty"`
	PriceMin         int      `json:"priceMin,omitempty"`
	PriceMax         int      `json:"priceMax,omitempty"`
}

func (p *Preferences) absorb(ec EntityContext) {
	if ec.Pincode != "" {
		p.PreferredPincode = ec.Pincode
	}
	for _, b := range ec.Brands {
		if b == "" || p.hasBrand(b) {
			continue
		}
		p.PreferredBrands = append(p.PreferredBrands, b)
	}
	if ec.PriceMax > 0 {
		p.PriceMin = ec.PriceMin
		p.PriceMax = ec.PriceMax
	}
}

func (p *Preferences) hasBrand(brand string) bool {
	for _, b := range p.PreferredBrands {
		if strings.EqualFold(b, brand) {
			return true
		}
	}
	return false
}

// Record is the persisted conversation state for one user.
type Record struct {
	UserID       int64         `json:"userId"`
	Details      UserDetails   `json:"details"`
	Interactions []Interaction `json:"interactions"`
	Preferences  Preferences   `json:"preferences"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Append adds one interaction, trims the ring to cap and folds the extracted
// entities into the preferences.
func (r *Record) Append(in Interaction, cap int) {
	if cap <= 0 {
		cap = DefaultInteractionCap
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}
	r.Interactions = append(r.Interactions, in)
	if len(r.Interactions) > cap {
		r.Interactions = r.Interactions[len(r.Interactions)-cap:]
	}
	r.Preferences.absorb(in.Context)
	r.UpdatedAt = in.Timestamp
}

// FeedbackRecord is one thumbs-up/down press on a bot reply.
type FeedbackRecord struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	MessageID int       `json:"messageId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
