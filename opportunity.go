package forumscope

import "strings"

// Business opportunity categories. The first four are scored from
// keyword hits; the rest are section-based fallbacks used when no
// keyword matches at all, so aggregate counts over the four scored
// buckets can undercount total posts.
const (
	OpportunityProduct     = "product"
	OpportunityService     = "service"
	OpportunityInformation = "information"
	OpportunityCommunity   = "community"

	OpportunityHealthService       = "health_service"
	OpportunityRelationshipService = "relationship_service"
	OpportunityMedicalService      = "medical_service"
	OpportunityGeneral             = "general"
)

// ScoredOpportunities lists the keyword-scored categories in priority
// order. Ties between equal non-zero scores resolve to the earliest
// category in this list.
var ScoredOpportunities = []string{
	OpportunityProduct,
	OpportunityService,
	OpportunityInformation,
	OpportunityCommunity,
}

var opportunityKeywords = map[string][]string{
	OpportunityProduct: {
		"product", "buy", "purchase", "recommend", "brand", "quality",
		"where to find", "best", "review", "comparison",
	},
	OpportunityService: {
		"service", "help", "professional", "expert", "consultation",
		"advice", "guidance", "support", "therapy", "counseling",
	},
	OpportunityInformation: {
		"information", "learn", "understand", "explain", "guide",
		"tutorial", "how to", "what is", "resource", "book",
	},
	OpportunityCommunity: {
		"group", "community", "support", "meet", "connect",
		"share", "experience", "similar", "together",
	},
}

// CategorizeOpportunity assigns a business-opportunity category to a
// post by counting keyword hits in its content and title. The category
// with the highest count wins; ties break by the fixed priority in
// ScoredOpportunities. When nothing matches, the section name decides.
func CategorizeOpportunity(content, title, section string) string {
	text := strings.ToLower(content) + " " + strings.ToLower(title)

	best := ""
	bestScore := 0
	for _, category := range ScoredOpportunities {
		score := 0
		for _, kw := range opportunityKeywords[category] {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return sectionFallback(section)
	}
	return best
}

func sectionFallback(section string) string {
	switch {
	case strings.Contains(section, "pregnancy") || strings.Contains(section, "childbirth"):
		return OpportunityHealthService
	case strings.Contains(section, "married"):
		return OpportunityRelationshipService
	case strings.Contains(section, "infertility"):
		return OpportunityMedicalService
	default:
		return OpportunityGeneral
	}
}
