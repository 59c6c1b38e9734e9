package pain

import "regexp"

// 以下关键词表在进程启动时初始化，运行期只读，不允许修改

// frustrationKeywords 挫败情绪关键词
var frustrationKeywords = []string{
	"hate", "hating", "frustrated", "frustrating", "annoying", "annoyed",
	"sick of", "fed up", "terrible", "horrible", "awful", "worst",
	"ridiculous", "stupid", "broken", "sucks", "garbage",
}

// solutionSeekingPhrases 寻求解决方案的表达
var solutionSeekingPhrases = []string{
	"why is there no", "how is there not", "why isn't there",
	"i wish someone would build", "there should be",
	"does anyone know", "looking for a tool", "is there a service",
	"need a way to", "how do you", "what do you use for",
}

// budgetKeywords 预算/付费意愿关键词（包含货币符号）
var budgetKeywords = []string{
	"paying", "pay", "paid", "spend", "spent", "spending",
	"cost", "costs", "expensive", "cheap", "price", "pricing",
	"subscription", "monthly", "annually", "per month", "per year",
	"$", "€", "£", "dollar",
}

// knownPaidTools 已知付费工具（子串匹配）
var knownPaidTools = []string{
	"airtable", "notion", "asana", "trello", "jira", "monday",
	"salesforce", "hubspot", "intercom", "zendesk",
	"stripe", "chargebee", "paddle", "recurly",
	"freshbooks", "quickbooks", "xero", "wave",
	"mailchimp", "convertkit", "sendgrid", "postmark",
	"figma", "sketch", "invision", "adobe", "canva",
	"zoom", "slack", "teams", "discord",
}

// timeInvestmentPhrases 时间投入表达
var timeInvestmentPhrases = []string{
	"spent hours", "wasted", "takes forever", "so much time",
	"always spending", "every day", "daily struggle", "constantly",
}

// productStopwords 大写词启发式里排除的句首常用词
var productStopwords = map[string]struct{}{
	"I": {}, "Why": {}, "How": {}, "What": {}, "When": {}, "There": {}, "This": {}, "That": {},
}

var (
	// $10, $99/mo, $1,000, $12.50/year
	dollarAmountPattern = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?(?:/mo|/month|/yr|/year)?`)
	mentionPattern      = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)
	// RE2 的 \b 只认 ASCII，词边界在 capitalizedWords 中按 Unicode 判断
	capitalizedPattern = regexp.MustCompile(`\p{Lu}\p{Ll}+(?:\p{Lu}\p{Ll}+)*`)
)
