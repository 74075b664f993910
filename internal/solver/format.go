package solver

import "strings"

type lineRule struct {
	name  string
	match func(line string) bool
	apply func(line string) string
}

func containsAny(s string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Order matters: a line is rewritten by the first rule that matches it.
var formatRules = []lineRule{
	{
		name:  "step",
		match: func(l string) bool { return strings.HasPrefix(strings.ToUpper(l), "STEP") },
		apply: func(l string) string { return "### 🔹 " + l },
	},
	{
		name:  "explanation",
		match: func(l string) bool { return containsAny(strings.ToLower(l), "explanation", "وضاحت:") },
		apply: func(l string) string { return "**📖 " + l + "**" },
	},
	{
		name:  "solution",
		match: func(l string) bool { return containsAny(strings.ToLower(l), "solution", "حل:") },
		apply: func(l string) string { return "**🧮 " + l + "**" },
	},
	{
		name:  "final_answer",
		match: func(l string) bool { return containsAny(strings.ToUpper(l), "FINAL ANSWER", "حتمی جواب") },
		apply: func(l string) string { return "## 🎯 " + l },
	},
	{
		name:  "application",
		match: func(l string) bool { return containsAny(strings.ToUpper(l), "REAL-WORLD", "حقیقی دنیا", "APPLICATION", "اطلاق") },
		apply: func(l string) string { return "## 🌍 " + l },
	},
	{
		name:  "bullet",
		match: func(l string) bool { return strings.HasPrefix(l, "•") || strings.HasPrefix(l, "-") },
		apply: func(l string) string { return "📌 " + l },
	},
}

// classify returns the first rule that claims line.
func classify(line string) (lineRule, bool) {
	for _, rule := range formatRules {
		if rule.match(line) {
			return rule, true
		}
	}
	return lineRule{}, false
}

// Format rewrites a solution into markdown for display. Sentinels pass through.
func Format(text string) string {
	if IsSentinel(text) {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rule, ok := classify(line); ok {
			line = rule.apply(line)
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n\n")
}
