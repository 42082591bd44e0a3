package domain

import (
	"context"
	"time"
)

type RecruitStatus string

const (
	RecruitStatusRecruiting RecruitStatus = "RECRUITING"
	RecruitStatusClosed     RecruitStatus = "CLOSED"
)

// Toggle flips RECRUITING <-> CLOSED.
func (s RecruitStatus) Toggle() RecruitStatus {
	if s == RecruitStatusRecruiting {
		return RecruitStatusClosed
	}
	return RecruitStatusRecruiting
}

// EnumOption is the shape served by the enum catalog endpoints so the
// frontend can render select options without hardcoding them.
type EnumOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

func options(names []string, labels []string) []EnumOption {
	opts := make([]EnumOption, 0, len(names))
	for i, n := range names {
		opts = append(opts, EnumOption{Value: i + 1, Label: labels[i], Name: n})
	}
	return opts
}

var (
	recruitPositionNames  = []string{"BACKEND", "FRONTEND", "FULLSTACK", "MOBILE", "DESIGNER", "PLANNER", "DEVOPS", "DATA"}
	recruitPositionLabels = []string{"Backend", "Frontend", "Fullstack", "Mobile", "Designer", "Planner", "DevOps", "Data"}

	recruitTypeNames  = []string{"PROJECT", "STUDY"}
	recruitTypeLabels = []string{"Project", "Study"}

	progressTypeNames  = []string{"ONLINE", "OFFLINE", "HYBRID"}
	progressTypeLabels = []string{"Online", "Offline", "Hybrid"}

	techStackNames = []string{
		"GO", "JAVA", "KOTLIN", "JAVASCRIPT", "TYPESCRIPT", "PYTHON",
		"REACT", "VUE", "NEXTJS", "SPRING", "NODEJS", "DJANGO",
		"FLUTTER", "SWIFT", "AWS", "DOCKER", "KUBERNETES", "MYSQL", "POSTGRESQL", "REDIS",
	}
	techStackLabels = []string{
		"Go", "Java", "Kotlin", "JavaScript", "TypeScript", "Python",
		"React", "Vue", "Next.js", "Spring", "Node.js", "Django",
		"Flutter", "Swift", "AWS", "Docker", "Kubernetes", "MySQL", "PostgreSQL", "Redis",
	}

	contactMethodNames  = []string{"EMAIL", "KAKAO_OPEN_CHAT", "GOOGLE_FORM", "DISCORD", "SLACK"}
	contactMethodLabels = []string{"Email", "KakaoTalk open chat", "Google Form", "Discord", "Slack"}

	durationNames  = []string{"ONE_MONTH", "TWO_MONTHS", "THREE_MONTHS", "SIX_MONTHS", "LONG_TERM", "UNDECIDED"}
	durationLabels = []string{"1 month", "2 months", "3 months", "6 months", "Long term", "Undecided"}

	memberCountNames  = []string{"ONE", "TWO", "THREE", "FOUR", "FIVE_OR_MORE", "UNDECIDED"}
	memberCountLabels = []string{"1", "2", "3", "4", "5+", "Undecided"}
)

func RecruitPositionOptions() []EnumOption { return options(recruitPositionNames, recruitPositionLabels) }
func RecruitTypeOptions() []EnumOption     { return options(recruitTypeNames, recruitTypeLabels) }
func ProgressTypeOptions() []EnumOption    { return options(progressTypeNames, progressTypeLabels) }
func TechStackOptions() []EnumOption       { return options(techStackNames, techStackLabels) }
func ContactMethodOptions() []EnumOption   { return options(contactMethodNames, contactMethodLabels) }
func DurationOptions() []EnumOption        { return options(durationNames, durationLabels) }
func MemberCountOptions() []EnumOption     { return options(memberCountNames, memberCountLabels) }

type Recruit struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	RecruitType   string        `json:"recruit_type"`
	ProgressType  string        `json:"progress_type"`
	Positions     []string      `json:"positions"`
	TechStacks    []string      `json:"tech_stacks"`
	MemberCount   string        `json:"member_count"`
	Duration      string        `json:"duration"`
	ContactMethod string        `json:"contact_method"`
	ContactLink   string        `json:"contact_link"`
	Status        RecruitStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	DeletedAt     *time.Time    `json:"-"`

	// View-dependent fields, populated by the usecase layer.
	Author     *UserSummary `json:"author,omitempty"`
	Bookmarked bool         `json:"bookmarked"`
}

type RecruitRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=100"`
	Content       string   `json:"content" validate:"required,max=5000"`
	RecruitType   string   `json:"recruit_type" validate:"required,oneof=PROJECT STUDY"`
	ProgressType  string   `json:"progress_type" validate:"required,oneof=ONLINE OFFLINE HYBRID"`
	Positions     []string `json:"positions" validate:"required,min=1,dive,oneof=BACKEND FRONTEND FULLSTACK MOBILE DESIGNER PLANNER DEVOPS DATA"`
	TechStacks    []string `json:"tech_stacks" validate:"omitempty,dive,oneof=GO JAVA KOTLIN JAVASCRIPT TYPESCRIPT PYTHON REACT VUE NEXTJS SPRING NODEJS DJANGO FLUTTER SWIFT AWS DOCKER KUBERNETES MYSQL POSTGRESQL REDIS"`
	MemberCount   string   `json:"member_count" validate:"required,oneof=ONE TWO THREE FOUR FIVE_OR_MORE UNDECIDED"`
	Duration      string   `json:"duration" validate:"required,oneof=ONE_MONTH TWO_MONTHS THREE_MONTHS SIX_MONTHS LONG_TERM UNDECIDED"`
	ContactMethod string   `json:"contact_method" validate:"required,oneof=EMAIL KAKAO_OPEN_CHAT GOOGLE_FORM DISCORD SLACK"`
	ContactLink   string   `json:"contact_link" validate:"omitempty,max=500"`
}

type RecruitRepository interface {
	Create(ctx context.Context, recruit *Recruit) error
	// GetByID returns (nil, nil) when the posting is absent or soft-deleted.
	GetByID(ctx context.Context, id int64) (*Recruit, error)
	List(ctx context.Context) ([]Recruit, error)
	Update(ctx context.Context, recruit *Recruit) error
	UpdateStatus(ctx context.Context, id int64, status RecruitStatus) error
	SoftDelete(ctx context.Context, id int64) error
	IsBookmarked(ctx context.Context, userID, recruitID int64) (bool, error)
	AddBookmark(ctx context.Context, userID, recruitID int64) error
	RemoveBookmark(ctx context.Context, userID, recruitID int64) error
	// ListBookmarkedIDs returns the recruit ids the user bookmarked, for
	// flagging list views.
	ListBookmarkedIDs(ctx context.Context, userID int64) (map[int64]bool, error)
}

type RecruitUsecase interface {
	Create(ctx context.Context, userID int64, req *RecruitRequest) (*Recruit, error)
	FindAll(ctx context.Context, viewerID int64) ([]Recruit, error)
	FindByID(ctx context.Context, id, viewerID int64) (*Recruit, error)
	Update(ctx context.Context, userID, id int64, req *RecruitRequest) (*Recruit, error)
	Delete(ctx context.Context, userID, id int64) error
	ToggleStatus(ctx context.Context, userID, id int64) (RecruitStatus, error)
	ToggleBookmark(ctx context.Context, userID, id int64) (bool, error)
}
