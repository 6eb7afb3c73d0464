package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableTopics       = "topics"
	tableItems        = "items"
	tableSessions     = "sessions"
	tableAnswers      = "answers"
	tableReviewStates = "review_states"
)

var (
	topicsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeInt64},
	}
	topicsTable = &schema.Table{
		Name:       tableTopics,
		Columns:    topicsColumns,
		PrimaryKey: []*schema.Column{topicsColumns[0]},
	}

	itemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "topic_id", Type: field.TypeString},
		{Name: "primary_text", Type: field.TypeString},
		{Name: "secondary_text", Type: field.TypeString, Default: ""},
		{Name: "meaning", Type: field.TypeString, Default: ""},
		{Name: "type", Type: field.TypeString, Default: ""},
		{Name: "position", Type: field.TypeInt, Default: 0},
	}
	itemsTable = &schema.Table{
		Name:       tableItems,
		Columns:    itemsColumns,
		PrimaryKey: []*schema.Column{itemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "items_topics_items",
				Columns:    []*schema.Column{itemsColumns[1]},
				RefColumns: []*schema.Column{topicsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "item_topic_id_position", Columns: []*schema.Column{itemsColumns[1], itemsColumns[6]}},
		},
	}

	sessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "user_id", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
		{Name: "topic_id", Type: field.TypeString, Default: ""},
		{Name: "mode", Type: field.TypeString},
		{Name: "item_count", Type: field.TypeInt},
		{Name: "time_limit", Type: field.TypeInt, Default: 0},
		{Name: "correct", Type: field.TypeInt, Default: 0},
		{Name: "incorrect", Type: field.TypeInt, Default: 0},
		{Name: "duration_seconds", Type: field.TypeInt, Default: 0},
		{Name: "time_up", Type: field.TypeBool, Default: false},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "ended_at", Type: field.TypeInt64, Nullable: true},
	}
	sessionsTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionsColumns,
		PrimaryKey: []*schema.Column{sessionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "session_user_id_started_at", Columns: []*schema.Column{sessionsColumns[2], sessionsColumns[12]}},
		},
	}

	answersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "answered_at", Type: field.TypeInt64},
	}
	answersTable = &schema.Table{
		Name:       tableAnswers,
		Columns:    answersColumns,
		PrimaryKey: []*schema.Column{answersColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "answers_sessions_answers",
				Columns:    []*schema.Column{answersColumns[2]},
				RefColumns: []*schema.Column{sessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "answer_session_id", Columns: []*schema.Column{answersColumns[2]}},
		},
	}

	reviewStatesColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "stage", Type: field.TypeInt},
		{Name: "consecutive_hits", Type: field.TypeInt},
		{Name: "graduated", Type: field.TypeBool},
		{Name: "next_review_at", Type: field.TypeInt64},
		{Name: "last_review_at", Type: field.TypeInt64},
	}
	reviewStatesTable = &schema.Table{
		Name:       tableReviewStates,
		Columns:    reviewStatesColumns,
		PrimaryKey: []*schema.Column{reviewStatesColumns[0], reviewStatesColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "review_states_items_reviews",
				Columns:    []*schema.Column{reviewStatesColumns[1]},
				RefColumns: []*schema.Column{itemsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "reviewstate_user_id_next_review_at", Columns: []*schema.Column{reviewStatesColumns[0], reviewStatesColumns[5]}},
		},
	}

	// tables lists every table managed by the migrator.
	tables = []*schema.Table{
		topicsTable,
		itemsTable,
		sessionsTable,
		answersTable,
		reviewStatesTable,
	}
)

func init() {
	itemsTable.ForeignKeys[0].RefTable = topicsTable
	answersTable.ForeignKeys[0].RefTable = sessionsTable
	reviewStatesTable.ForeignKeys[0].RefTable = itemsTable
}
