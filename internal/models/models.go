package models

// SubmissionType tags what kind of content a submission carries.
type SubmissionType string

const (
	TypeDrawing SubmissionType = "drawing"
	TypeText    SubmissionType = "text"
)

// Submission is a single user expression plus the AI's take on it.
// ID is supplied by the client and is not guaranteed unique.
type Submission struct {
	ID          int64          `json:"id"`
	Type        SubmissionType `json:"type"`
	UserContent string         `json:"user_content"`
	AIResponse  string         `json:"ai_response"`
	Votes       int            `json:"votes"`
}

// SubmissionRow is the gorm representation of a Submission. Seq is the
// insertion order; SubmissionID is not unique.
type SubmissionRow struct {
	Seq          uint           `gorm:"primarykey"`
	SubmissionID int64          `gorm:"not null;index"`
	Type         SubmissionType `gorm:"not null"`
	UserContent  string         `gorm:"not null"`
	AIResponse   string         `gorm:"not null"`
	Votes        int            `gorm:"not null;default:0"`
}

func (SubmissionRow) TableName() string { return "submissions" }

// Submission converts the row back to its API shape.
func (r SubmissionRow) Submission() Submission {
	return Submission{
		ID:          r.SubmissionID,
		Type:        r.Type,
		UserContent: r.UserContent,
		AIResponse:  r.AIResponse,
		Votes:       r.Votes,
	}
}

// RowFromSubmission builds an unsaved row for s.
func RowFromSubmission(s Submission) SubmissionRow {
	return SubmissionRow{
		SubmissionID: s.ID,
		Type:         s.Type,
		UserContent:  s.UserContent,
		AIResponse:   s.AIResponse,
		Votes:        s.Votes,
	}
}

// Stats summarizes the voting activity over all submissions.
type Stats struct {
	TotalSubmissions int `json:"total_submissions"`
	TotalVotes       int `json:"total_votes"`
	VotedSubmissions int `json:"voted_submissions"`
}
