package skills

import "sort"

// categories is the skill taxonomy: a fixed rule table grouping the skill
// names the platform recognizes. Matching against it is case-insensitive.
var categories = map[string][]string{
	"programming": {
		"python", "javascript", "typescript", "java", "c++", "c#", "go", "golang",
		"rust", "ruby", "php", "swift", "kotlin", "scala", "r", "matlab",
	},
	"frontend": {
		"react", "angular", "vue", "vue.js", "next.js", "nuxt", "svelte",
		"html", "css", "sass", "tailwind", "bootstrap", "jquery",
	},
	"backend": {
		"node.js", "express", "django", "flask", "fastapi", "spring boot",
		"laravel", "rails", "asp.net", "nestjs",
	},
	"database": {
		"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
		"dynamodb", "sqlite", "oracle", "sql server", "cassandra",
	},
	"cloud": {
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
		"docker", "kubernetes", "terraform", "ansible",
	},
	"ai_ml": {
		"machine learning", "deep learning", "tensorflow", "pytorch",
		"scikit-learn", "nlp", "computer vision", "data science",
	},
	"mobile": {
		"react native", "flutter", "ios", "android", "swift", "kotlin",
	},
	"design": {
		"figma", "sketch", "adobe xd", "photoshop", "illustrator",
		"ui design", "ux design", "graphic design",
	},
	"devops": {
		"ci/cd", "jenkins", "github actions", "gitlab ci", "devops",
		"linux", "bash", "monitoring", "prometheus", "grafana",
	},
	"blockchain": {
		"solidity", "ethereum", "web3", "smart contracts", "defi", "nft",
	},
}

// allSkills is the flattened, deduplicated taxonomy in a deterministic
// order (sorted categories, then declaration order). The order matters: the
// cached embedding matrix is indexed by position in this slice.
var allSkills = flatten()

var skillSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allSkills))
	for _, s := range allSkills {
		set[s] = struct{}{}
	}
	return set
}()

func flatten() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]struct{})
	var out []string
	for _, name := range names {
		for _, skill := range categories[name] {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}
