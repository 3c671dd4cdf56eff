package tools

import (
	"math/rand"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"

	"go.uber.org/zap"
)

// GoogleJobsTool serves fabricated job-market data from static tables and a
// symbol-seeded generator. Like GoogleFinanceTool this is demo-only: no
// network call is ever made and every record is marked simulated.
type GoogleJobsTool struct {
	toolBase
}

func NewGoogleJobsTool(name, description string, configuration map[string]string, logger *zap.Logger) *GoogleJobsTool {
	return &GoogleJobsTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
	}
}

var jobCategories = []string{
	"Software Engineering",
	"Data Science",
	"Product Management",
	"Design",
	"Marketing",
	"Sales",
	"Customer Support",
	"Operations",
	"Finance",
	"Human Resources",
}

var jobTitles = []string{
	"Senior Software Engineer",
	"Machine Learning Engineer",
	"Data Analyst",
	"Product Manager",
	"UX Designer",
	"DevOps Engineer",
	"Engineering Manager",
	"Technical Writer",
	"Security Engineer",
	"Site Reliability Engineer",
	"Solutions Architect",
	"QA Engineer",
}

var jobLocations = []string{
	"Remote",
	"New York, NY",
	"San Francisco, CA",
	"Austin, TX",
	"Seattle, WA",
	"London, UK",
	"Berlin, Germany",
}

func (t *GoogleJobsTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"list_categories", "trending_jobs", "company_info"},
			Description: "The jobs operation to perform (default: list_categories)",
			Required:    false,
		},
		{
			Name:        "limit",
			Type:        "integer",
			Description: "Number of trending jobs between 1 and 20 (default: 10)",
			Required:    false,
		},
		{
			Name:        "company",
			Type:        "string",
			MaxLength:   80,
			Description: "Company name, required for company_info",
			Required:    false,
		},
	}
}

type trendingJob struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Location  string `json:"location"`
	Openings  int    `json:"openings"`
	Simulated bool   `json:"simulated"`
}

type companyInfo struct {
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Headcount   int      `json:"headcount"`
	OpenRoles   int      `json:"open_roles"`
	TopCategory string   `json:"top_category"`
	Locations   []string `json:"locations"`
	Simulated   bool     `json:"simulated"`
}

func (t *GoogleJobsTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Google Jobs tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string `json:"operation"`
		Limit     int    `json:"limit"`
		Company   string `json:"company"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "", "list_categories":
		return entities.OK(jobCategories).JSON(), nil
	case "trending_jobs":
		return entities.OK(t.trendingJobs(args.Limit)).JSON(), nil
	case "company_info":
		return t.companyInfo(args.Company)
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

func (t *GoogleJobsTool) trendingJobs(limit int) []trendingJob {
	if limit == 0 {
		limit = 10
	}
	limit = clamp(limit, 1, 20)

	rng := rand.New(rand.NewSource(symbolSeed("trending")))
	jobs := make([]trendingJob, 0, limit)
	for i := 0; i < limit; i++ {
		jobs = append(jobs, trendingJob{
			Title:     jobTitles[rng.Intn(len(jobTitles))],
			Category:  jobCategories[rng.Intn(len(jobCategories))],
			Location:  jobLocations[rng.Intn(len(jobLocations))],
			Openings:  10 + rng.Intn(490),
			Simulated: true,
		})
	}
	return jobs
}

func (t *GoogleJobsTool) companyInfo(company string) (string, error) {
	if company == "" {
		err := errors.InvalidInputErrorf("company is required")
		return entities.Failed(err, nil).JSON(), nil
	}

	rng := rand.New(rand.NewSource(symbolSeed(strings.ToLower(company))))

	locationCount := 1 + rng.Intn(3)
	locations := make([]string, 0, locationCount)
	for _, i := range rng.Perm(len(jobLocations))[:locationCount] {
		locations = append(locations, jobLocations[i])
	}

	info := companyInfo{
		Name:        company,
		Industry:    jobCategories[rng.Intn(len(jobCategories))],
		Headcount:   50 + rng.Intn(49950),
		OpenRoles:   1 + rng.Intn(200),
		TopCategory: jobCategories[rng.Intn(len(jobCategories))],
		Locations:   locations,
		Simulated:   true,
	}
	return entities.OK(info).JSON(), nil
}
