package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nchouhan/ogni-scan/internal/models"
)

func TestNormalizeTaggedDialect(t *testing.T) {
	raw := `Here are the matches.

### CANDIDATE: Jane Doe
- **Role**: Senior Engineer
- **Company**: Initech
- **Skills**: Python, Django
- **Relevance**: High
### JUSTIFICATION: Led the backend migration this query asks about.
### SUMMARY: One strong match.`

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 1)

	c := res.Candidates[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "Senior Engineer", c.Role)
	assert.Equal(t, "Initech", c.Company)
	assert.Equal(t, []string{"Python", "Django"}, c.Skills)
	assert.Equal(t, models.RelevanceHigh, c.Relevance)
	assert.Equal(t, "Led the backend migration this query asks about.", c.Justification)

	// preamble survives as a text block
	require.NotEmpty(t, res.Blocks)
	assert.Equal(t, BlockText, res.Blocks[0].Kind)
	assert.Equal(t, "Here are the matches.", res.Blocks[0].Text)
}

func TestNormalizeTaggedJustificationBackfillsCandidateBlock(t *testing.T) {
	raw := "### CANDIDATE: Ana Ruiz\n- Role: SRE\n### JUSTIFICATION: Runs the on-call rotation."

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Runs the on-call rotation.", res.Candidates[0].Justification)

	for _, block := range res.Blocks {
		if block.Kind == BlockCandidate {
			assert.Equal(t, "Runs the on-call rotation.", block.Candidate.Justification)
		}
	}
}

func TestNormalizeTaggedInfoNoMatch(t *testing.T) {
	res := Normalize("### INFO: No candidates matched the query.")

	require.True(t, res.Structured)
	assert.Empty(t, res.Candidates)
	require.Len(t, res.Blocks, 1)
	assert.Equal(t, BlockInfo, res.Blocks[0].Kind)
	assert.Equal(t, "No candidates matched the query.", res.Blocks[0].Text)
}

func TestNormalizeTableDialect(t *testing.T) {
	raw := `| Name | Role | Skills | Relevance |
|------|------|--------|-----------|
| John Smith | Data Engineer | Spark, Airflow | High |
| Priya Patel | ML Engineer | Python & PyTorch | medium |`

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 2)

	assert.Equal(t, "John Smith", res.Candidates[0].Name)
	assert.Equal(t, "Data Engineer", res.Candidates[0].Role)
	assert.Equal(t, []string{"Spark", "Airflow"}, res.Candidates[0].Skills)
	assert.Equal(t, models.RelevanceHigh, res.Candidates[0].Relevance)

	assert.Equal(t, "Priya Patel", res.Candidates[1].Name)
	assert.Equal(t, []string{"Python", "PyTorch"}, res.Candidates[1].Skills)
	assert.Equal(t, models.RelevanceMedium, res.Candidates[1].Relevance)

	require.NotEmpty(t, res.Blocks)
	require.Equal(t, BlockTable, res.Blocks[0].Kind)
	assert.Equal(t, []string{"Name", "Role", "Skills", "Relevance"}, res.Blocks[0].Table.Headers)
	assert.Len(t, res.Blocks[0].Table.Rows, 2)
}

func TestNormalizeTableWithoutNameColumnFallsThrough(t *testing.T) {
	raw := `| Metric | Value |
|--------|-------|
| Total | 12 |`

	res := Normalize(raw)

	assert.False(t, res.Structured)
	assert.Empty(t, res.Candidates)
}

func TestNormalizeTaggedBeatsTable(t *testing.T) {
	raw := `### CANDIDATE: Omar Haddad
- Skills: Go, Kubernetes

| Name | Skills |
|------|--------|
| Someone Else | Rust |`

	res := Normalize(raw)

	require.True(t, res.Structured)
	// the tagged parser claims the response; the stray table below the
	// candidate block must not add a second record
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Omar Haddad", res.Candidates[0].Name)
}

func TestNormalizeSectionedProseDialect(t *testing.T) {
	raw := `### Candidate: Maria Garcia
- **Role**: Frontend Developer
- **Skills**: React, TypeScript
- **Relevance**: High

---

### Candidate: Wei Chen
- **Role**: Platform Engineer
- **Experience**: 6 years`

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "Maria Garcia", res.Candidates[0].Name)
	assert.Equal(t, []string{"React", "TypeScript"}, res.Candidates[0].Skills)
	assert.Equal(t, "Wei Chen", res.Candidates[1].Name)
	assert.Equal(t, "6 years", res.Candidates[1].Experience)
}

func TestNormalizeNumberedListDialect(t *testing.T) {
	raw := `Here are the top candidates:

1. Jane Doe - Senior Engineer
   - Why relevant: Led a Python Django migration.
   - Key Skills: Python, Django
   - Experience: 8 years
   - Relevance Score: High
2. Raj Kumar - Backend Developer
   - Key Skills: Go, PostgreSQL
   - Relevance Score: Medium`

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 2)

	first := res.Candidates[0]
	assert.Equal(t, "Jane Doe", first.Name)
	assert.Equal(t, "Senior Engineer", first.Role)
	assert.Equal(t, []string{"Python", "Django"}, first.Skills)
	assert.Equal(t, "8 years", first.Experience)
	assert.Equal(t, models.RelevanceHigh, first.Relevance)
	assert.Equal(t, "Led a Python Django migration.", first.Justification)

	second := res.Candidates[1]
	assert.Equal(t, "Raj Kumar", second.Name)
	assert.Equal(t, "Backend Developer", second.Role)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, second.Skills)
}

func TestNormalizeNegativeResult(t *testing.T) {
	raw := `No candidates named "Amit Shah" were found. However, a senior backend profile with skills like Go and SQL was located, with 6 years of experience.`

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 1)

	c := res.Candidates[0]
	assert.Equal(t, "Amit Shah", c.Name)
	assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
	assert.Equal(t, models.RelevanceMedium, c.Relevance)
	assert.NotEmpty(t, c.Justification)
}

func TestNormalizeNegativeWithoutRemainderFallsThrough(t *testing.T) {
	res := Normalize(`No candidates named "Amit Shah" were found.`)

	assert.False(t, res.Structured)
	assert.Empty(t, res.Candidates)
}

func TestNormalizeProseFallback(t *testing.T) {
	raw := "The resumes mention several engineers with cloud experience but none stand out for this query."

	res := Normalize(raw)

	assert.False(t, res.Structured)
	assert.Empty(t, res.Candidates)
	require.Len(t, res.Blocks, 1)
	assert.Equal(t, BlockText, res.Blocks[0].Kind)
	assert.Equal(t, raw, res.Blocks[0].Text)
}

func TestNormalizeTotality(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t  ",
		"| | |\n|---|---|\n| | |",
		"**bold** _under_ `code` ||| ###",
		"### :\n### ___:",
		strings.Repeat("|-", 5000),
		"1.\n2.\n3.",
	}
	for _, raw := range inputs {
		res := Normalize(raw)
		for _, c := range res.Candidates {
			assert.True(t, c.Valid(), "input %q produced an invalid candidate", raw)
		}
		for _, block := range res.Blocks {
			if block.Kind == BlockCandidate {
				require.NotNil(t, block.Candidate)
			}
		}
	}
}

func TestNormalizeCRLFInput(t *testing.T) {
	raw := "### CANDIDATE: Lena Fischer\r\n- Role: Data Scientist\r\n"

	res := Normalize(raw)

	require.True(t, res.Structured)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Lena Fischer", res.Candidates[0].Name)
	assert.Equal(t, "Data Scientist", res.Candidates[0].Role)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, splitSkills("Go and SQL"))
	assert.Equal(t, []string{"Python", "Django", "Celery"}, splitSkills("Python, Django; Celery"))
	assert.Equal(t, []string{"React", "TypeScript"}, splitSkills("**React** & _TypeScript_"))
	assert.Empty(t, splitSkills("  "))
}
