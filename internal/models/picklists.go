// Package models provides data model definitions for the journaling backend.
package models

// Mood is the per-entry mood rating. The empty string means unset.
type Mood string

const (
	MoodGreat     Mood = "great"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodLow       Mood = "low"
	MoodDifficult Mood = "difficult"
)

// Moods lists the selectable moods in display order.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodLow, MoodDifficult}

// Valid reports whether the mood is one of the fixed picklist values.
// The empty string is valid (mood not set).
func (m Mood) Valid() bool {
	if m == "" {
		return true
	}
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// GoalCategory is the fixed goal category picklist.
type GoalCategory string

const (
	CategoryHealth   GoalCategory = "health"
	CategoryLearning GoalCategory = "learning"
	CategoryPersonal GoalCategory = "personal"
	CategoryWork     GoalCategory = "work"
	CategoryFinance  GoalCategory = "finance"
)

// GoalCategories lists the selectable categories in display order.
var GoalCategories = []GoalCategory{
	CategoryHealth, CategoryLearning, CategoryPersonal, CategoryWork, CategoryFinance,
}

// Valid reports whether the category is a known picklist value.
func (c GoalCategory) Valid() bool {
	for _, known := range GoalCategories {
		if c == known {
			return true
		}
	}
	return false
}

// GoalStatus tracks goal completion. Status is derived from progress:
// exactly 100 means completed, anything below means active.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// JournalIcon is the symbolic icon name picklist for journals.
type JournalIcon string

// JournalIcons lists the selectable journal icons.
var JournalIcons = []JournalIcon{
	"BookOpen", "Briefcase", "Heart", "Plane",
	"Dumbbell", "Palette", "Music", "Code",
}

// Valid reports whether the icon name is a known picklist value.
func (i JournalIcon) Valid() bool {
	for _, known := range JournalIcons {
		if i == known {
			return true
		}
	}
	return false
}

// SubscriptionPlan gates feature limits such as photos per entry and
// AI analysis availability.
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanPremium SubscriptionPlan = "premium"
)

// FreePlanMediaLimit is the maximum number of media attachments per entry
// on the free plan. Premium has no limit.
const FreePlanMediaLimit = 5

// EntrySource records how an entry reached the system.
type EntrySource string

const (
	SourceWeb   EntrySource = "web"
	SourceEmail EntrySource = "email"
)

// MediaType distinguishes attachment kinds.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Valid reports whether the media type is one of the known kinds.
func (m MediaType) Valid() bool {
	return m == MediaImage || m == MediaVideo
}
