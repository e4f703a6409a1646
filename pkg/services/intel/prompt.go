package intel

import (
	"fmt"
	"strings"

	"github.com/askcarbuddy/carscout/pkg/models/domain"
)

const (
	maxListingTextChars = 3000
	maxRecallSummaryLen = 120
	maxRecallsInContext = 3
	maxAreasInContext   = 5
)

const systemPrompt = `You are a trusted car-expert friend with 20 years of dealership experience.

PHILOSOPHY: The user found a car they LIKE. Your job is NOT to talk them out of it.
Your job is to arm them with intelligence so they can buy it CONFIDENTLY and SMARTLY.

TONE: Warm, confident, knowledgeable. Like a friend who happens to be a car expert.
NOT: Salesy, fear-mongering, or generic. Never say "check the tires." Be SPECIFIC.

CRITICAL RULES:
1. Be SPECIFIC to this exact vehicle - reference the actual year, make, model, trim, generation, engine.
2. Known issues must be REAL documented issues for this specific generation/engine/transmission.
3. Frame everything as HELPFUL, not scary. "Here's what to know" not "here's what could go wrong."
4. Smart questions should help the buyer feel PREPARED, not adversarial toward the dealer.
5. Cost of ownership should be realistic and practical.
6. If the car is a genuinely good find, SAY SO enthusiastically. If it has real concerns, flag them honestly but constructively.
7. Include SPECIFIC maintenance milestones based on the car's current mileage.

Return VALID JSON matching this exact structure:
{
  "buy_score": {
    "score": <1-10>,
    "label": "<Great Find|Solid Pick|Worth a Look|Proceed with Caution|Think Twice>",
    "one_liner": "<one warm sentence verdict>"
  },
  "at_a_glance": {
    "best_thing": "<the single best thing about this specific car>",
    "know_before_you_go": "<the single most important thing to verify before buying>"
  },
  "market_intel": {
    "summary": "<2-3 sentences on where this price sits vs market>",
    "price_position": "<below_market|competitive|market_price|above_market>",
    "value_factors": ["<why this price makes sense OR what's driving it up/down>"]
  },
  "what_to_know": {
    "generation_overview": "<1-2 sentences about this specific generation>",
    "known_quirks": [
      {
        "item": "<specific known issue or quirk for this generation>",
        "severity": "<minor_quirk|worth_checking|important|serious>",
        "context": "<how common, how expensive IF it happens, what to look for>",
        "what_to_do": "<specific actionable step the buyer should take>"
      }
    ],
    "maintenance_upcoming": [
      {
        "service": "<specific maintenance item due based on current mileage>",
        "typical_cost": "<cost range>",
        "urgency": "<due_now|soon|within_6_months|within_a_year>"
      }
    ]
  },
  "your_game_plan": {
    "before_you_visit": ["<specific prep step 1>", "<step 2>", "<step 3>"],
    "at_the_dealer": [
      {
        "ask": "<specific question to ask>",
        "why": "<why this matters>",
        "good_sign": "<what a reassuring answer sounds like>",
        "heads_up": "<what answer means you should dig deeper>"
      }
    ],
    "on_the_test_drive": ["<specific thing to check/feel/listen for on THIS car>"],
    "at_the_desk": {
      "expected_otd": "<estimated out-the-door price range>",
      "fees_to_expect": ["<legitimate fee and typical amount>"],
      "fees_to_question": ["<fee that's sometimes inflated + what it should cost>"],
      "financing_tip": "<one specific financing tip for this purchase>"
    }
  },
  "cost_to_own": {
    "monthly_fuel": "<estimated monthly fuel cost at current gas prices>",
    "annual_insurance_range": "<estimated annual insurance range>",
    "annual_maintenance": "<estimated annual maintenance cost>",
    "total_annual_estimate": "<total estimated annual running cost range>",
    "ownership_verdict": "<one sentence on whether this is cheap/average/expensive to own>"
  },
  "pro_tips": ["<genuinely useful insider tip specific to THIS car>", "<tip 2>", "<tip 3>"]
}`

// buildContext renders everything fetched about the vehicle into the
// user message the model analyzes.
func buildContext(v domain.VehicleProfile, comps *domain.MarketComps, safety *domain.SafetyRecord, listingText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "VEHICLE: %d %s %s %s\n", v.Year, v.Make, v.Model, v.Trim)
	if v.Price > 0 {
		fmt.Fprintf(&b, "LISTED PRICE: $%d\n", v.Price)
	}
	if v.Mileage > 0 {
		fmt.Fprintf(&b, "MILEAGE: %d miles\n", v.Mileage)
	}
	if v.VIN != "" {
		fmt.Fprintf(&b, "VIN: %s\n", v.VIN)
	}
	if v.Color != "" {
		fmt.Fprintf(&b, "COLOR: %s\n", v.Color)
	}
	if v.Zip != "" {
		fmt.Fprintf(&b, "LOCATION ZIP: %s\n", v.Zip)
	}
	if v.DealerName != "" {
		fmt.Fprintf(&b, "DEALER: %s\n", v.DealerName)
	}
	if v.Engine != "" {
		fmt.Fprintf(&b, "ENGINE: %s\n", v.Engine)
	}
	if v.Transmission != "" {
		fmt.Fprintf(&b, "TRANSMISSION: %s\n", v.Transmission)
	}
	if v.Drivetrain != "" {
		fmt.Fprintf(&b, "DRIVETRAIN: %s\n", v.Drivetrain)
	}
	if v.FuelType != "" {
		fmt.Fprintf(&b, "FUEL: %s\n", v.FuelType)
	}
	if v.MPGCity > 0 && v.MPGHighway > 0 {
		fmt.Fprintf(&b, "MPG: %d city / %d hwy\n", v.MPGCity, v.MPGHighway)
	}
	if v.BodyType != "" {
		fmt.Fprintf(&b, "BODY: %s\n", v.BodyType)
	}

	if comps != nil {
		b.WriteString("\nMARKET DATA:\n")
		fmt.Fprintf(&b, "  Regional average price: $%d\n", comps.AvgPrice)
		fmt.Fprintf(&b, "  Price range: $%d - $%d\n", comps.MinPrice, comps.MaxPrice)
		if comps.Percentile != nil {
			fmt.Fprintf(&b, "  This listing is at the %dth percentile (higher = more expensive)\n", *comps.Percentile)
		}
		fmt.Fprintf(&b, "  Comparable listings found: %d (total market: %d)\n", comps.CompCount, comps.TotalMarket)
		fmt.Fprintf(&b, "  Demand score: %d/10\n", comps.DemandScore)
	}

	if safety != nil {
		b.WriteString("\nSAFETY DATA (NHTSA):\n")
		fmt.Fprintf(&b, "  Recalls: %d\n", safety.RecallCount)
		fmt.Fprintf(&b, "  Consumer complaints: %d\n", safety.ComplaintCount)
		if len(safety.TopComplaintAreas) > 0 {
			parts := make([]string, 0, maxAreasInContext)
			for i, area := range safety.TopComplaintAreas {
				if i == maxAreasInContext {
					break
				}
				parts = append(parts, fmt.Sprintf("%s (%d)", area.Component, area.Count))
			}
			fmt.Fprintf(&b, "  Top complaint areas: %s\n", strings.Join(parts, ", "))
		}
		for i, r := range safety.Recalls {
			if i == maxRecallsInContext {
				break
			}
			fmt.Fprintf(&b, "  Recall: %s - %s\n", r.Component, truncate(r.Summary, maxRecallSummaryLen))
		}
	}

	if listingText != "" {
		b.WriteString("\nRAW LISTING TEXT (from dealer page):\n")
		b.WriteString(truncate(listingText, maxListingTextChars))
	}

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
