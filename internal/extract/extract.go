package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Candidate holds whatever metadata could be pulled out of a resume's
// text. Every field is best effort; an empty value means "not found".
type Candidate struct {
	Name            string
	Email           string
	Phone           string
	CurrentRole     string
	CurrentCompany  string
	YearsExperience float64
	Domain          string
	Skills          []string
}

// Parse runs all extractors over normalized resume text.
func Parse(text string) Candidate {
	c := Candidate{
		Name:   Name(text),
		Email:  Email(text),
		Phone:  Phone(text),
		Skills: Skills(text),
	}
	c.CurrentRole, c.CurrentCompany = currentPosition(text)
	c.YearsExperience = YearsExperience(text)
	c.Domain = Domain(text, c.Skills)
	return c
}

var nonNameWords = []string{"resume", "cv", "curriculum", "experience", "skills", "education", "phone", "email", "@", "http"}

// Name guesses the candidate name from the top of the document: a short
// line in the first ten that doesn't look like a heading or contact line.
func Name(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(strings.Fields(line)) > 4 {
			continue
		}
		lower := strings.ToLower(line)
		skip := false
		for _, w := range nonNameWords {
			if strings.Contains(lower, w) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if letterRe.MatchString(line) {
			return line
		}
	}
	return ""
}

var letterRe = regexp.MustCompile(`[a-zA-Z]`)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

func Email(text string) string {
	return emailRe.FindString(text)
}

// phoneRes are tried in order; international forms go first so a bare
// digit-run pattern cannot strip the country code.
var phoneRes = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{8,}`),
	regexp.MustCompile(`(\+91[-.\s]?)?[6-9]\d{9}`),
	regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
}

func Phone(text string) string {
	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// skillTerms is the dictionary scanned for skill mentions. Multi-word
// terms match as substrings, single-word terms on word boundaries so
// "go" never matches "google".
var skillTerms = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "rust", "c++", "c#",
	"react", "angular", "vue", "node.js", "express", "django", "flask", "fastapi", "spring",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins",
	"ci/cd", "git", "linux", "microservices", "rest api", "grpc", "graphql",
	"machine learning", "deep learning", "data science", "nlp", "pandas", "spark",
	"project management", "agile", "scrum", "devops",
}

// skillWordRes holds the word-boundary matchers for single-word terms.
var skillWordRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(skillTerms))
	for _, term := range skillTerms {
		if !strings.ContainsAny(term, " ./+#") {
			res[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		}
	}
	return res
}()

func Skills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	seen := map[string]bool{}
	for _, term := range skillTerms {
		var hit bool
		if re, ok := skillWordRes[term]; ok {
			hit = re.MatchString(lower)
		} else {
			hit = strings.Contains(lower, term)
		}
		if !hit {
			continue
		}
		canonical := canonicalSkill(term)
		if !seen[canonical] {
			seen[canonical] = true
			found = append(found, canonical)
		}
	}
	return found
}

var canonicalNames = map[string]string{
	"golang": "Go", "nlp": "NLP", "sql": "SQL", "mysql": "MySQL", "aws": "AWS",
	"gcp": "GCP", "ci/cd": "CI/CD", "grpc": "gRPC", "graphql": "GraphQL",
	"postgresql": "PostgreSQL", "mongodb": "MongoDB", "javascript": "JavaScript",
	"typescript": "TypeScript", "node.js": "Node.js", "fastapi": "FastAPI",
	"rest api": "REST API", "devops": "DevOps", "c++": "C++", "c#": "C#",
}

func canonicalSkill(term string) string {
	if name, ok := canonicalNames[term]; ok {
		return name
	}
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var rangeRe = regexp.MustCompile(`(?i)(\d{4})\s*[-–]\s*(\d{4}|present|current)`)

// YearsExperience sums distinct employment date ranges found in the text.
func YearsExperience(text string) float64 {
	now := time.Now().Year()
	total := 0.0
	for _, m := range rangeRe.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil || start < 1950 || start > now {
			continue
		}
		end := now
		if y, err := strconv.Atoi(m[2]); err == nil {
			end = y
		}
		if end >= start && end <= now {
			total += float64(end - start)
		}
	}
	return total
}

var positionRe = regexp.MustCompile(`(?im)^(.{3,60})\s+(?:at|@)\s+(.{2,60})$`)

func currentPosition(text string) (role, company string) {
	if m := positionRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", ""
}

// domainTerms lists domain labels with their signal words. Order is
// fixed so a hit-count tie always resolves the same way.
var domainTerms = []struct {
	label string
	terms []string
}{
	{"fintech", []string{"fintech", "banking", "payments", "trading", "financial services", "insurance"}},
	{"healthcare", []string{"healthcare", "medical", "clinical", "pharma", "hospital"}},
	{"ecommerce", []string{"ecommerce", "e-commerce", "retail", "marketplace"}},
	{"edtech", []string{"edtech", "education", "learning platform"}},
	{"gaming", []string{"gaming", "game development", "unity", "unreal"}},
}

// Domain classifies a resume into a coarse industry bucket, defaulting
// to empty when nothing matches.
func Domain(text string, skills []string) string {
	lower := strings.ToLower(text + " " + strings.Join(skills, " "))
	best, bestHits := "", 0
	for _, d := range domainTerms {
		hits := 0
		for _, t := range d.terms {
			if strings.Contains(lower, t) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = d.label, hits
		}
	}
	return best
}
