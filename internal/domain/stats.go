package domain

import "time"

// StudyStats summarizes progress over a set of cards and their study log.
type StudyStats struct {
	TotalCards    int        `json:"total_cards"`
	MasteredCards int        `json:"mastered_cards"`
	LearningCards int        `json:"learning_cards"`
	NewCards      int        `json:"new_cards"`
	DueCards      int        `json:"due_cards"`
	TotalReviews  int        `json:"total_reviews"`
	Retention     int        `json:"retention"` // percentage, 0-100
	Streak        int        `json:"streak"`    // consecutive active days ending today
	LastStudied   *time.Time `json:"last_studied,omitempty"`
}

// RetentionPoint is the retention for one calendar day.
type RetentionPoint struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// ActivityDay is the number of reviews recorded on one calendar day, with an
// intensity bucket from 0 (no reviews) to 5 relative to the busiest day.
type ActivityDay struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"`
}
