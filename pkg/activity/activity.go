// Package activity models the rich presence payload sent to Discord. Every
// field is optional; unset fields are omitted from the serialized form.
// Builders return updated copies, so an Activity can be assembled as one
// chained expression.
package activity

// Type is the kind of activity being reported. Serializes as an integer.
type Type int

const (
	Playing Type = iota
	Streaming
	Listening
	Watching
	Custom
	Competing
)

// StatusDisplay selects which activity field Discord shows in the member
// list. Serializes as an integer.
type StatusDisplay int

const (
	DisplayName StatusDisplay = iota
	DisplayState
	DisplayDetails
)

// Activity is one user presence.
type Activity struct {
	Details           string         `json:"details,omitempty"`
	State             string         `json:"state,omitempty"`
	Assets            *Assets        `json:"assets,omitempty"`
	Timestamps        *Timestamps    `json:"timestamps,omitempty"`
	Party             *Party         `json:"party,omitempty"`
	Secrets           *Secrets       `json:"secrets,omitempty"`
	Buttons           []Button       `json:"buttons,omitempty"`
	Type              *Type          `json:"type,omitempty"`
	StatusDisplayType *StatusDisplay `json:"status_display_type,omitempty"`
}

// Assets are the image slots shown with an activity.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	LargeURL   string `json:"large_url,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
	SmallURL   string `json:"small_url,omitempty"`
}

// Timestamps bound the activity in time, as unix seconds.
type Timestamps struct {
	Start uint64 `json:"start,omitempty"`
	End   uint64 `json:"end,omitempty"`
}

// Party describes the group the user is in. Size is [current, max].
type Party struct {
	ID   string   `json:"id,omitempty"`
	Size []uint32 `json:"size,omitempty"`
}

// Secrets carry the join/spectate tokens for party events.
type Secrets struct {
	Join     string `json:"join,omitempty"`
	Spectate string `json:"spectate,omitempty"`
	Match    string `json:"match,omitempty"`
	Instance *bool  `json:"instance,omitempty"`
}

// Button is one clickable link under the activity. Discord accepts at most
// two.
type Button struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`
}

func New() Activity {
	return Activity{}
}

func (a Activity) SetDetails(details string) Activity {
	a.Details = details
	return a
}

func (a Activity) SetState(state string) Activity {
	a.State = state
	return a
}

func (a Activity) SetAssets(assets Assets) Activity {
	a.Assets = &assets
	return a
}

func (a Activity) SetTimestamps(ts Timestamps) Activity {
	a.Timestamps = &ts
	return a
}

func (a Activity) SetParty(party Party) Activity {
	a.Party = &party
	return a
}

func (a Activity) SetSecrets(secrets Secrets) Activity {
	a.Secrets = &secrets
	return a
}

func (a Activity) SetButtons(buttons ...Button) Activity {
	a.Buttons = buttons
	return a
}

func (a Activity) SetType(t Type) Activity {
	a.Type = &t
	return a
}

func (a Activity) SetStatusDisplay(d StatusDisplay) Activity {
	a.StatusDisplayType = &d
	return a
}

// NewParty sizes a party as current members out of max.
func NewParty(id string, current, max uint32) Party {
	return Party{ID: id, Size: []uint32{current, max}}
}
