package domain

import "strings"

// PlantRecord is one entry of the plant-care catalog. The three care fields
// and Donts are free text and may contain embedded line breaks.
type PlantRecord struct {
	ID         string `json:"id"`
	CommonName string `json:"common_name"`
	LatinName  string `json:"latin_name,omitempty"`
	Type       string `json:"type,omitempty"`
	Soil       string `json:"soil,omitempty"`
	Light      string `json:"light,omitempty"`
	Water      string `json:"water,omitempty"`
	Donts      string `json:"donts,omitempty"`
	Image      string `json:"image,omitempty"`
}

// Category names one of the care fields a question can ask about.
type Category string

const (
	CategorySoil  Category = "soil"
	CategoryLight Category = "light"
	CategoryWater Category = "water"
	CategoryDonts Category = "donts"
)

// CareCategories are the categories selectable for recommend-mode quizzes.
var CareCategories = []Category{CategorySoil, CategoryLight, CategoryWater}

// CareText returns the plant's text for a category. Explicit per-field
// dispatch rather than reflection keeps the field set closed.
func (p PlantRecord) CareText(c Category) string {
	switch c {
	case CategorySoil:
		return p.Soil
	case CategoryLight:
		return p.Light
	case CategoryWater:
		return p.Water
	case CategoryDonts:
		return p.Donts
	}
	return ""
}

// FirstDontLine returns the text before the first line break of Donts,
// the canonical "avoid" statement.
func (p PlantRecord) FirstDontLine() string {
	line, _, _ := strings.Cut(p.Donts, "\n")
	return line
}

// Mode selects the kind of quiz being played.
type Mode string

const (
	// ModeIdentify shows the plant's image and asks for its name.
	ModeIdentify Mode = "identify"
	// ModeRecommend asks for a care recommendation (soil, light or water).
	ModeRecommend Mode = "recommend"
	// ModeAvoid asks what should be avoided for the plant.
	ModeAvoid Mode = "avoid"
)

// QuestionSpec is one planned question: a plant plus what is being asked.
// Category is only meaningful for recommend and avoid kinds.
type QuestionSpec struct {
	Plant    PlantRecord `json:"plant"`
	Kind     Mode        `json:"kind"`
	Category Category    `json:"category,omitempty"`
}

// Option is one multiple-choice answer shown to the player. For identify
// questions ID is the plant ID; for care questions it is a per-question slot.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Latin   string `json:"latin,omitempty"`
	Correct bool   `json:"-"`
}

// QuestionCount is a requested number of questions. Two sentinels mirror the
// setup form: all built questions, or one question per catalog plant.
type QuestionCount int

const (
	CountAllQuestions QuestionCount = -1
	CountAllPlants    QuestionCount = -2
)

// QuestionView is what the rendering layer needs to draw the current
// question. PlantName and LatinName are empty for identify questions, where
// only the image may be shown.
type QuestionView struct {
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Kind      Mode     `json:"kind"`
	Category  Category `json:"category,omitempty"`
	Prompt    string   `json:"prompt"`
	Image     string   `json:"image,omitempty"`
	PlantName string   `json:"plantName,omitempty"`
	LatinName string   `json:"latinName,omitempty"`
	Options   []Option `json:"options"`
}

// Feedback reports the outcome of answering the current question.
// CorrectOptionIDs lists every option slot to highlight: the authoritative
// correct slot plus any option whose normalized text equals it.
type Feedback struct {
	Correct          bool     `json:"correct"`
	CorrectOptionIDs []string `json:"correctOptionIds"`
	Score            int      `json:"score"`
	Answered         int      `json:"answered"`
}

// Rating is the qualitative band for a final score.
type Rating string

const (
	RatingExcellent        Rating = "excellent"
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs improvement"
)

// Summary is the end-of-quiz result. Rating is empty when Total is zero,
// since no percentage can be computed.
type Summary struct {
	Score  int    `json:"score"`
	Total  int    `json:"total"`
	Rating Rating `json:"rating,omitempty"`
}
