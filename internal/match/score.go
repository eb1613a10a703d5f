package match

import (
	"sort"
	"strings"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
)

// scoring weights, sum to 1.0
const (
	weightSkills   = 0.5
	weightIndustry = 0.2
	weightBudget   = 0.2
	weightRating   = 0.1
)

// Score one team's fit against a project, 0-100.
type Score struct {
	TeamId      int64   `json:"team_id"`
	Total       float64 `json:"total"`
	SkillFit    float64 `json:"skill_fit"`
	IndustryFit float64 `json:"industry_fit"`
	BudgetFit   float64 `json:"budget_fit"`
	RatingFit   float64 `json:"rating_fit"`

	MatchedSkills []string `json:"matched_skills"`
}

// Rank scores every team against the project, highest first. Ties break on
// team id so the ordering is stable.
func Rank(project *model.ProjectModel, teams []model.TeamModel) []Score {
	scores := make([]Score, 0, len(teams))
	for i := range teams {
		scores = append(scores, ScoreTeam(project, &teams[i]))
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].TeamId < scores[j].TeamId
	})
	return scores
}

// ScoreTeam computes the weighted fit of one team.
func ScoreTeam(project *model.ProjectModel, team *model.TeamModel) Score {
	skillFit, matched := skillOverlap(project.SkillsRequired, team.Skills)
	industryFit := industryMatch(project.Industry, team.Industries)
	budgetFit := budgetFit(project.BudgetAmount, team.RateMin, team.RateMax)
	ratingFit := team.Rating / 5.0

	total := (skillFit*weightSkills +
		industryFit*weightIndustry +
		budgetFit*weightBudget +
		ratingFit*weightRating) * 100

	return Score{
		TeamId:        team.Id,
		Total:         total,
		SkillFit:      skillFit,
		IndustryFit:   industryFit,
		BudgetFit:     budgetFit,
		RatingFit:     ratingFit,
		MatchedSkills: matched,
	}
}

// skillOverlap is the fraction of required skills the team covers.
func skillOverlap(required, offered []string) (float64, []string) {
	if len(required) == 0 {
		return 0, nil
	}

	offeredSet := make(map[string]struct{}, len(offered))
	for _, s := range offered {
		offeredSet[normalize(s)] = struct{}{}
	}

	var matched []string
	for _, s := range required {
		if _, ok := offeredSet[normalize(s)]; ok {
			matched = append(matched, s)
		}
	}
	return float64(len(matched)) / float64(len(required)), matched
}

func industryMatch(industry string, industries []string) float64 {
	if industry == "" {
		return 0
	}
	for _, ind := range industries {
		if normalize(ind) == normalize(industry) {
			return 1
		}
	}
	return 0
}

// budgetFit is 1 when the project budget clears the team's declared band,
// scaled down linearly below the minimum.
func budgetFit(budget, rateMin, rateMax int64) float64 {
	if rateMin == 0 && rateMax == 0 {
		return 0.5 // no band declared, neutral
	}
	if budget >= rateMin {
		return 1
	}
	if rateMin == 0 {
		return 1
	}
	return float64(budget) / float64(rateMin)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
