package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const analysisKeywordTopN = 20

var actionVerbs = []string{
	"Led", "Managed", "Developed", "Designed", "Implemented", "Optimized", "Improved", "Reduced", "Increased",
	"Built", "Created", "Automated", "Analyzed", "Coordinated", "Launched", "Delivered", "Produced",
}

var actionVerbSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(actionVerbs))
	for _, verb := range actionVerbs {
		set[strings.ToLower(verb)] = struct{}{}
	}
	return set
}()

var (
	actionVerbPatterns = mustWholeWordPatterns(actionVerbs)
	sectionPatterns    = mustWholeWordPatterns(models.SectionTags)
)

// minActionVerbs is the number of distinct action verbs below which feedback
// asks for more.
const minActionVerbs = 3

type AnalyzerService interface {
	Analyze(ctx context.Context, resumeText string, jdText *string, useGPT bool) (*models.AnalysisResult, error)
	AnalyzeDocuments(ctx context.Context, resume models.Document, jd *models.Document, useGPT bool) (*models.AnalysisResult, error)
	GetKeywords(ctx context.Context, text string, topN int) []string
	ComputeATSScore(ctx context.Context, resumeText string, jdText *string) models.ATSResult
	TextSimilarity(ctx context.Context, a, b string) (float64, error)
}

type analyzerService struct {
	models      *Models
	extractor   TextExtractor
	keywordTopN int
}

func NewAnalyzerService(m *Models, extractor TextExtractor, keywordTopN int) AnalyzerService {
	if keywordTopN <= 0 {
		keywordTopN = analysisKeywordTopN
	}
	return &analyzerService{
		models:      m,
		extractor:   extractor,
		keywordTopN: keywordTopN,
	}
}

// AnalyzeDocuments extracts text from the uploaded documents and analyzes it.
func (a *analyzerService) AnalyzeDocuments(ctx context.Context, resume models.Document, jd *models.Document, useGPT bool) (*models.AnalysisResult, error) {
	log.Printf("📄 Extracting text from %s", resume.Filename)
	resumeText, err := a.extractor.ExtractText(resume.Filename, resume.Data)
	if err != nil {
		return nil, &AnalysisError{Stage: StageExtraction, Cause: err}
	}

	var jdText *string
	if jd != nil {
		log.Printf("📄 Extracting text from %s", jd.Filename)
		text, err := a.extractor.ExtractText(jd.Filename, jd.Data)
		if err != nil {
			return nil, &AnalysisError{Stage: StageExtraction, Cause: err}
		}
		jdText = &text
	}

	return a.Analyze(ctx, resumeText, jdText, useGPT)
}

// Analyze scores resumeText against the optional job description. An empty
// job description is treated as absent. useGPT is accepted for compatibility
// and has no effect.
func (a *analyzerService) Analyze(ctx context.Context, resumeText string, jdText *string, useGPT bool) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &AnalysisError{Stage: StageScoring, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if useGPT {
		log.Println("ℹ️  Rewrite suggestions are not available, ignoring use_gpt")
	}

	hasJD := jdText != nil && *jdText != ""

	log.Println("🔍 Extracting keywords...")
	resumeKeywords := a.GetKeywords(ctx, resumeText, a.keywordTopN)
	jdKeywords := []string{}
	if hasJD {
		jdKeywords = a.GetKeywords(ctx, *jdText, a.keywordTopN)
	}

	ats := a.atsScore(resumeText, jdKeywords)

	missingSkills := []string{}
	for _, keyword := range jdKeywords {
		if !containsWholeWord(resumeText, keyword) {
			missingSkills = append(missingSkills, keyword)
		}
	}

	skillMatchPct := 100.0
	if len(jdKeywords) > 0 {
		skillMatchPct = 100 - (float64(len(missingSkills)) / float64(len(jdKeywords)) * 100)
	}

	result = &models.AnalysisResult{
		ATS:            ats,
		ResumeKeywords: resumeKeywords,
		JDKeywords:     jdKeywords,
		MissingSkills:  missingSkills,
		SkillMatchPct:  round2(skillMatchPct),
		Feedback:       buildFeedback(resumeText, missingSkills, ats.SectionsPresent),
	}

	if hasJD {
		similarity, err := a.TextSimilarity(ctx, resumeText, *jdText)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to compute embedding similarity: %v", err)
		} else {
			similarity = round2(similarity)
			result.EmbeddingSimilarity = &similarity
		}
	}

	log.Printf("✅ Analysis complete: coverage %.2f%%, sections %.2f%%, skill match %.2f%%",
		ats.KeywordCoverage, ats.SectionScore, result.SkillMatchPct)

	return result, nil
}

// GetKeywords returns at most topN ranked 1-2 word phrases. It never fails.
func (a *analyzerService) GetKeywords(ctx context.Context, text string, topN int) []string {
	return a.models.Keywords.Keywords(ctx, text, topN)
}

func (a *analyzerService) ComputeATSScore(ctx context.Context, resumeText string, jdText *string) models.ATSResult {
	jdKeywords := []string{}
	if jdText != nil && *jdText != "" {
		jdKeywords = a.GetKeywords(ctx, *jdText, a.keywordTopN)
	}
	return a.atsScore(resumeText, jdKeywords)
}

// TextSimilarity is the cosine similarity of the two texts' embeddings. Long
// texts are embedded chunk by chunk and averaged; all chunks go in one batch.
func (a *analyzerService) TextSimilarity(ctx context.Context, first, second string) (float64, error) {
	firstChunks := a.documentChunks(first)
	secondChunks := a.documentChunks(second)

	inputs := make([]string, 0, len(firstChunks)+len(secondChunks))
	inputs = append(inputs, firstChunks...)
	inputs = append(inputs, secondChunks...)

	vectors, err := a.models.Embedder.EmbedTexts(ctx, inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(vectors) != len(inputs) {
		return 0, ErrNoEmbeddings
	}

	return CosineSimilarity(
		meanVector(vectors[:len(firstChunks)]),
		meanVector(vectors[len(firstChunks):]),
	), nil
}

func (a *analyzerService) documentChunks(text string) []string {
	if a.models.Chunker == nil {
		return []string{text}
	}
	chunks := a.models.Chunker.ChunkText(text, keywordChunkSize, 0)
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

func (a *analyzerService) atsScore(resumeText string, jdKeywords []string) models.ATSResult {
	matched := 0
	for _, keyword := range jdKeywords {
		if containsWholeWord(resumeText, keyword) {
			matched++
		}
	}

	coverage := 0.0
	if len(jdKeywords) > 0 {
		coverage = float64(matched) / float64(len(jdKeywords))
	}

	present := make(models.SectionPresence, len(models.SectionTags))
	for i, section := range models.SectionTags {
		present[section] = sectionPatterns[i].MatchString(resumeText)
	}
	sectionScore := float64(present.Count()) / float64(len(models.SectionTags))

	return models.ATSResult{
		KeywordCoverage: round2(coverage * 100),
		SectionScore:    round2(sectionScore * 100),
		SectionsPresent: present,
		MatchedKeywords: matched,
		TotalKeywords:   len(jdKeywords),
	}
}

func buildFeedback(resumeText string, missingSkills []string, present models.SectionPresence) []string {
	feedback := []string{}

	if len(missingSkills) > 0 {
		feedback = append(feedback, fmt.Sprintf("Consider adding these skills or keywords: %s.", strings.Join(missingSkills, ", ")))
	}

	if countActionVerbs(resumeText) < minActionVerbs {
		feedback = append(feedback, "Try to use more action verbs to strengthen your achievements.")
	}

	for _, section := range models.SectionTags {
		if !present[section] {
			feedback = append(feedback, fmt.Sprintf("Add a section for %s to improve completeness.", titleCase(section)))
		}
	}

	return feedback
}

func countActionVerbs(text string) int {
	count := 0
	for _, pattern := range actionVerbPatterns {
		if pattern.MatchString(text) {
			count++
		}
	}
	return count
}

// containsWholeWord reports a case-insensitive match of phrase that is not
// glued to a neighbouring letter, digit or underscore.
func containsWholeWord(text, phrase string) bool {
	pattern, err := wholeWordPattern(phrase)
	if err != nil {
		return false
	}
	return pattern.MatchString(text)
}

// wordBoundaryGuard stands in for \b, which is ASCII-only in Go regexps.
const wordBoundaryGuard = `[^\p{L}\p{N}_]`

// wholeWordPattern builds a case-insensitive pattern for phrase. An edge of
// the phrase that is a word rune must not touch another word rune; an edge
// such as the "+" of "c++" is left unguarded.
func wholeWordPattern(phrase string) (*regexp.Regexp, error) {
	if phrase == "" {
		return nil, errors.New("empty phrase")
	}

	var b strings.Builder
	b.WriteString("(?i)")

	first, _ := utf8.DecodeRuneInString(phrase)
	if isWordRune(first) {
		b.WriteString("(?:^|" + wordBoundaryGuard + ")")
	}

	b.WriteString(regexp.QuoteMeta(phrase))

	last, _ := utf8.DecodeLastRuneInString(phrase)
	if isWordRune(last) {
		b.WriteString("(?:$|" + wordBoundaryGuard + ")")
	}

	return regexp.Compile(b.String())
}

func mustWholeWordPatterns(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		pattern, err := wholeWordPattern(phrase)
		if err != nil {
			panic(fmt.Sprintf("invalid phrase %q: %v", phrase, err))
		}
		patterns[i] = pattern
	}
	return patterns
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
