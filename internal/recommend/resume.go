package recommend

import (
	"fmt"
	"strings"
)

// ResumeSummary is a templated profile summary for a freelancer.
type ResumeSummary struct {
	Summary       string   `json:"summary"`
	SkillsSection string   `json:"skills_section"`
	Highlights    []string `json:"highlights"`
}

// resumeCategories orders the skill groups in the rendered skills section.
var resumeCategories = []struct {
	name  string
	terms []string
}{
	{"programming", []string{"python", "javascript", "typescript", "java", "c++", "go", "rust", "ruby", "php"}},
	{"frameworks", []string{"react", "angular", "vue", "node", "django", "flask", "spring", "express", "next"}},
	{"databases", []string{"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "dynamodb"}},
	{"cloud", []string{"aws", "gcp", "azure", "docker", "kubernetes", "terraform"}},
}

// GenerateResumeSummary renders a profile summary, a categorized skills
// section, and highlight bullets from a freelancer's track record.
func (s *Service) GenerateResumeSummary(skills []string, experienceYears, completedJobs int, avgRating float64) ResumeSummary {
	level := "emerging"
	if experienceYears > 5 {
		level = "senior"
	} else if experienceYears > 2 {
		level = "mid-level"
	}

	primary := skills
	if len(primary) > 5 {
		primary = primary[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A %s professional with %d+ years of experience", level, experienceYears)
	if len(primary) > 0 {
		fmt.Fprintf(&b, " specializing in %s", strings.Join(primary, ", "))
	}
	if completedJobs > 0 {
		fmt.Fprintf(&b, ". Successfully completed %d projects", completedJobs)
	}
	if avgRating >= 4.5 {
		fmt.Fprintf(&b, " with an outstanding %.1f/5 rating", avgRating)
	} else if avgRating >= 4.0 {
		fmt.Fprintf(&b, " with an excellent %.1f/5 rating", avgRating)
	}
	b.WriteString(".")

	highlights := []string{
		fmt.Sprintf("%d+ years of professional experience", experienceYears),
		fmt.Sprintf("%d projects completed", completedJobs),
		fmt.Sprintf("%.1f/5 average client rating", avgRating),
	}
	if len(primary) > 0 {
		top := primary
		if len(top) > 3 {
			top = top[:3]
		}
		highlights = append(highlights, "Expert in "+strings.Join(top, ", "))
	}

	return ResumeSummary{
		Summary:       b.String(),
		SkillsSection: formatSkillsSection(skills),
		Highlights:    highlights,
	}
}

func formatSkillsSection(skills []string) string {
	grouped := make(map[string][]string)
	var other []string

	for _, skill := range skills {
		lower := strings.ToLower(skill)
		matched := false
		for _, cat := range resumeCategories {
			for _, term := range cat.terms {
				if strings.Contains(lower, term) {
					grouped[cat.name] = append(grouped[cat.name], skill)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			other = append(other, skill)
		}
	}

	var lines []string
	for _, cat := range resumeCategories {
		if group := grouped[cat.name]; len(group) > 0 {
			lines = append(lines, titleCase(cat.name)+": "+strings.Join(group, ", "))
		}
	}
	if len(other) > 0 {
		lines = append(lines, "Other: "+strings.Join(other, ", "))
	}
	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
