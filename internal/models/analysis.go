package models

// Section tags checked by the completeness heuristic, in feedback order.
var SectionTags = []string{"experience", "education", "skills", "projects", "certification", "summary"}

// SectionPresence maps each section tag to whether it appears in the resume.
type SectionPresence map[string]bool

// Count returns how many section tags are present.
func (s SectionPresence) Count() int {
	n := 0
	for _, present := range s {
		if present {
			n++
		}
	}
	return n
}

type ATSResult struct {
	KeywordCoverage float64         `json:"keyword_coverage"`
	SectionScore    float64         `json:"section_score"`
	SectionsPresent SectionPresence `json:"sections_present"`
	MatchedKeywords int             `json:"matched_keywords"`
	TotalKeywords   int             `json:"total_keywords"`
}

type AnalysisResult struct {
	ATS                 ATSResult `json:"ats"`
	ResumeKeywords      []string  `json:"resume_keywords"`
	JDKeywords          []string  `json:"jd_keywords"`
	MissingSkills       []string  `json:"missing_skills"`
	SkillMatchPct       float64   `json:"skill_match_pct"`
	Feedback            []string  `json:"feedback"`
	EmbeddingSimilarity *float64  `json:"embedding_similarity,omitempty"`
}
