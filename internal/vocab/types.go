package vocab

// StudyItem is a single vocabulary entry served by a content store.
// The session engine never mutates it.
type StudyItem struct {
	ID            string `json:"id"`
	TopicID       string `json:"topic_id,omitempty"`
	PrimaryText   string `json:"primary_text"`
	SecondaryText string `json:"secondary_text"`
	Meaning       string `json:"meaning"`
	Type          string `json:"type,omitempty"`
}

// DisplayContent is the canonical view of a StudyItem used by every study mode.
type DisplayContent struct {
	Term    string
	Reading string
	English string
}

// Topic groups study items. Topics form a flat list; courses and lessons
// are represented by topic ids.
type Topic struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}
