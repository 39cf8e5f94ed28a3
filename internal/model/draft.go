package model

// Extra participant tiers offered as add-ons.
const (
    ExtraParticipantsNone   = 0
    ExtraParticipantsSmall  = 10000
    ExtraParticipantsMedium = 50000
    ExtraParticipantsLarge  = 100000
)

type PrizeKind string

const (
    PrizeDiscountCode PrizeKind = "discount_code"
    PrizeFile         PrizeKind = "file"
)

// Prize carries either a discount code or an uploaded file reference, never both.
type Prize struct {
    Kind         PrizeKind `json:"kind" validate:"required,oneof=discount_code file"`
    DiscountCode string    `json:"discount_code,omitempty" validate:"required_if=Kind discount_code,excluded_if=Kind file"`
    FileRef      string    `json:"file_ref,omitempty" validate:"required_if=Kind file,excluded_if=Kind discount_code"`
}

type AddOns struct {
    ExtraParticipants int  `json:"extra_participants"`
    VisibilityBoost   bool `json:"visibility_boost"`
    PushNotification  bool `json:"push_notification"`
}

// HasAny reports whether any paid add-on is selected.
func (a AddOns) HasAny() bool {
    return a.ExtraParticipants > 0 || a.VisibilityBoost || a.PushNotification
}

type FAQ struct {
    Question string `json:"question"`
    Answer   string `json:"answer"`
}

type BonusLevel struct {
    RequiredPlays int   `json:"required_plays"`
    Prize         Prize `json:"prize"`
}

type SpecialReward struct {
    RequiredPlays int    `json:"required_plays"`
    Description   string `json:"description"`
    Prize         Prize  `json:"prize"`
}

type RankPrize struct {
    Position int   `json:"position"`
    Prize    Prize `json:"prize"`
}

type TopRanking struct {
    RequiredPlays int         `json:"required_plays"`
    TopPositions  int         `json:"top_positions"`
    Prizes        []RankPrize `json:"prizes"`
}

// CampaignDraft is assembled across the nine wizard steps. The reward blocks
// stay nil until explicitly enabled.
type CampaignDraft struct {
    Title         string         `json:"title"`
    Author        string         `json:"author"`
    Description   string         `json:"description"`
    StartDate     string         `json:"start_date"`
    EndDate       string         `json:"end_date"`
    MiniGameID    string         `json:"mini_game_id"`
    AddOns        AddOns         `json:"add_ons"`
    FAQs          []FAQ          `json:"faqs"`
    Terms         string         `json:"terms"`
    BonusLevel    *BonusLevel    `json:"bonus_level"`
    SpecialReward *SpecialReward `json:"special_reward"`
    TopRanking    *TopRanking    `json:"top_ranking"`
    VideoEmbed    string         `json:"video_embed"`
}

// Clone returns a deep copy so a handed-off draft cannot be mutated through
// the controller that built it.
func (d CampaignDraft) Clone() CampaignDraft {
    out := d
    if d.FAQs != nil {
        out.FAQs = append([]FAQ(nil), d.FAQs...)
    }
    if d.BonusLevel != nil {
        b := *d.BonusLevel
        out.BonusLevel = &b
    }
    if d.SpecialReward != nil {
        s := *d.SpecialReward
        out.SpecialReward = &s
    }
    if d.TopRanking != nil {
        t := *d.TopRanking
        t.Prizes = append([]RankPrize(nil), d.TopRanking.Prizes...)
        out.TopRanking = &t
    }
    return out
}
