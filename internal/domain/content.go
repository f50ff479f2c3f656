package domain

import "time"

// CommitEvent describes one commit fed into the commit pipeline.
// Ephemeral: sourced per invocation, never persisted.
type CommitEvent struct {
	Message     string
	Diff        string
	AuthorLogin string
}

// WorthinessEvaluation is the structured verdict returned by the scorer.
type WorthinessEvaluation struct {
	Score        int    `json:"score"`
	Reasoning    string `json:"reasoning"`
	TopicSummary string `json:"topic_summary"`
}

// FaqItem is a generated question/answer pair inside a post.
type FaqItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedPost is the structured article produced by the generator.
// Ownership transfers to the publishing client, which augments it with
// media references before persisting remotely.
type GeneratedPost struct {
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	SEOTitle          string    `json:"seoTitle"`
	MetaDescription   string    `json:"metaDescription"`
	FocusKeyword      string    `json:"focusKeyword"`
	SecondaryKeywords []string  `json:"secondaryKeywords"`
	Excerpt           string    `json:"excerpt"`
	HTMLContent       string    `json:"htmlContent"`
	Categories        []string  `json:"categories"`
	Tags              []string  `json:"tags"`
	AnswerFirstBlock  string    `json:"answerFirstBlock"`
	FaqItems          []FaqItem `json:"faqItems"`
	BlogPostingSchema string    `json:"blogPostingSchema"`
	FaqPageSchema     string    `json:"faqPageSchema"`
}

// PublishedPost is what the content backend reports after creating a draft.
type PublishedPost struct {
	ID     int
	Link   string
	Status string
}

// Image is acquired media ready for upload: raw bytes plus upload metadata.
// Attribution is non-empty only for stock photos that require credit HTML.
type Image struct {
	Bytes       []byte
	Filename    string
	MimeType    string
	SourceURL   string
	Attribution string
}

// CommitRef is a single commit as listed by the source-hosting API.
type CommitRef struct {
	SHA     string
	Message string
	Date    time.Time
	Author  string
}

// ProjectInfo aggregates repository intelligence gathered before scoring.
type ProjectInfo struct {
	Name            string
	FullName        string
	Description     string
	URL             string
	Homepage        string
	Topics          []string
	DefaultBranch   string
	CreatedAt       time.Time
	PushedAt        time.Time
	Stars           int
	Languages       map[string]int
	Readme          string
	RootFiles       []string
	RecentCommits   []CommitRef
	CommitsSampled  int
	ReadmeImages    []string
	RepoScreenshots []string
}

// RepoPollState is the persisted per-repository cursor record.
// A repository transitions from absent to having a showcase record exactly
// once; afterwards only LastProgressSHA/LastProgressDate mutate.
type RepoPollState struct {
	ShowcasePostID   int    `json:"showcasePostId"`
	ShowcaseDate     string `json:"showcaseDate"`
	LastProgressSHA  string `json:"lastProgressSHA"`
	LastProgressDate string `json:"lastProgressDate,omitempty"`
}

// PublishRecord is one row of the optional publish audit log.
type PublishRecord struct {
	PostID    int
	Title     string
	Link      string
	Kind      string
	RepoName  string
	Score     int
	Status    string
	CreatedAt time.Time
}

// Post kinds recorded in the publish log.
const (
	KindCommit   = "commit"
	KindWeekly   = "thought-leadership"
	KindShowcase = "showcase"
	KindProgress = "progress"
)
