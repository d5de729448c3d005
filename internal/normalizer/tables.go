package normalizer

// Enum tables are keyed by answers.Fold output.

var firstIncomeTimeline = map[string]float64{
	"under 1 month":     1.0,
	"less than 1 month": 1.0,
	"1-2 months":        0.8,
	"3-6 months":        0.6,
	"6-12 months":       0.35,
	"1-2 years":         0.2,
	"no rush":           0.1,
}

var learningPreference = map[string]float64{
	"trial and error":      0.9,
	"figure it out myself": 0.9,
	"online courses":       0.7,
	"books and reading":    0.6,
	"mentorship":           0.5,
	"step-by-step guides":  0.3,
	"step by step guides":  0.3,
}

var workStylePreference = map[string]float64{
	"solo":        0.1,
	"mostly solo": 0.3,
	"mix of both": 0.5,
	"small team":  0.7,
	"large team":  0.9,
}

var incomeTypePreference = map[string]float64{
	"active income":  0.1,
	"mostly active":  0.3,
	"mix of both":    0.5,
	"mostly passive": 0.75,
	"passive income": 1.0,
}

var businessScaleGoal = map[string]float64{
	"side income":        0.2,
	"replace my job":     0.5,
	"full-time business": 0.7,
	"full time business": 0.7,
	"build a company":    0.9,
	"build an empire":    1.0,
}

const (
	answerYes   = 1.0
	answerNo    = 0.0
	answerMaybe = 0.5
)

var yesNoMaybe = map[string]float64{
	"yes":       answerYes,
	"y":         answerYes,
	"true":      answerYes,
	"no":        answerNo,
	"n":         answerNo,
	"false":     answerNo,
	"maybe":     answerMaybe,
	"not sure":  answerMaybe,
	"unsure":    answerMaybe,
	"sometimes": answerMaybe,
	"depends":   answerMaybe,
}

// quantity describes a numeric answer rescaled against a ceiling.
type quantity struct {
	fallback float64
	ceiling  float64
	buckets  map[string]float64
}

var incomeGoal = quantity{
	fallback: 5000,
	ceiling:  15000,
	buckets: map[string]float64{
		"under $500":         250,
		"less than $500":     250,
		"$500-$1,000":        750,
		"under $1,000":       500,
		"less than $1,000":   500,
		"$1,000-$5,000":      3000,
		"$5,000-$10,000":     7500,
		"$10,000+":           15000,
		"more than $10,000":  15000,
		"$10,000-$25,000":    17500,
		"$25,000+":           25000,
		"whatever i can get": 1000,
	},
}

var upfrontInvestment = quantity{
	fallback: 1000,
	ceiling:  5000,
	buckets: map[string]float64{
		"nothing":        0,
		"$0":             0,
		"none":           0,
		"under $100":     50,
		"less than $100": 50,
		"$100-$500":      300,
		"$500-$1,000":    750,
		"$1,000-$5,000":  3000,
		"$5,000+":        5000,
		"over $5,000":    5000,
	},
}

var weeklyTime = quantity{
	fallback: 10,
	ceiling:  25,
	buckets: map[string]float64{
		"less than 5 hours": 3,
		"under 5 hours":     3,
		"5-10 hours":        7.5,
		"10-20 hours":       15,
		"20-30 hours":       25,
		"30-40 hours":       35,
		"30+ hours":         35,
		"40+ hours":         40,
		"full-time":         40,
		"full time":         40,
	},
}

const toolCeiling = 6

var knownTools = map[string]string{
	"canva":              "canva",
	"wordpress":          "wordpress",
	"shopify":            "shopify",
	"excel":              "excel",
	"microsoft excel":    "excel",
	"google sheets":      "google sheets",
	"sheets":             "google sheets",
	"notion":             "notion",
	"zapier":             "zapier",
	"figma":              "figma",
	"chatgpt":            "chatgpt",
	"capcut":             "capcut",
	"photoshop":          "photoshop",
	"adobe photoshop":    "photoshop",
	"premiere pro":       "premiere pro",
	"adobe premiere pro": "premiere pro",
	"webflow":            "webflow",
	"hubspot":            "hubspot",
	"mailchimp":          "mailchimp",
	"github":             "github",
	"vs code":            "vs code",
	"vscode":             "vs code",
	"visual studio code": "vs code",
	"quickbooks":         "quickbooks",
}
