package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when required settings are missing or inconsistent
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults for optional settings
const (
	DefaultTTLTagKey = "TTL"
	DefaultIssueType = "Service Request"
	DefaultLogLevel  = "info"
)

// Config holds every setting of one ebsreaper invocation.
// It is built once at startup and passed to each component.
type Config struct {
	JiraURL       string
	JiraUser      string
	Domain        string
	JiraTokenName string // SSM SecureString holding the Jira API token
	ProjectKey    string
	IssueType     string

	FirstNotificationDays  int
	SecondNotificationDays int
	DeletionAfterDays      int // also the TTL horizon given to new volumes
	Period                 int

	Prefix    string
	TTLTagKey string

	Region           string
	MetricsNamespace string
	ReportBucket     string
	EstimateCost     bool
	LogLevel         string
}

// envBindings maps config keys to the environment variables they are read from
var envBindings = map[string]string{
	"jira_url":          "JIRA_SERVICEDESK_URL",
	"jira_user":         "JIRA_SERVICEDESK_USER",
	"domain":            "DOMAIN",
	"jira_token":        "JIRA_TOKEN",
	"project_key":       "SD",
	"issue_type":        "JIRA_ISSUE_TYPE",
	"first_days":        "FIRST_NOTIFICATION_DAYS",
	"second_days":       "SECOND_NOTIFICATION_DAYS",
	"deletion_days":     "DELETION_AFTER_DAYS",
	"period":            "PERIOD",
	"prefix":            "PREFIX",
	"ttl_tag_key":       "TTL_TAG_KEY",
	"region":            "AWS_REGION",
	"metrics_namespace": "METRICS_NAMESPACE",
	"report_bucket":     "REPORT_BUCKET",
	"estimate_cost":     "ESTIMATE_COST",
	"log_level":         "LOG_LEVEL",
}

var requiredStrings = []string{"jira_url", "jira_user", "domain", "jira_token", "project_key"}

var requiredInts = []string{"first_days", "second_days", "deletion_days", "period"}

// New returns a viper instance bound to the ebsreaper environment variables
func New() *viper.Viper {
	v := viper.New()
	for key, env := range envBindings {
		// BindEnv only fails when called without a key
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("ttl_tag_key", DefaultTTLTagKey)
	v.SetDefault("issue_type", DefaultIssueType)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("estimate_cost", false)
	return v
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	return FromViper(New())
}

// FromViper builds and validates a Config from v
func FromViper(v *viper.Viper) (*Config, error) {
	var problems []string

	for _, key := range requiredStrings {
		if strings.TrimSpace(v.GetString(key)) == "" {
			problems = append(problems, fmt.Sprintf("%s is required", envBindings[key]))
		}
	}

	rawPrefix := strings.TrimSpace(v.GetString("prefix"))
	prefix := strings.Trim(rawPrefix, "/")
	switch {
	case rawPrefix == "":
		problems = append(problems, "PREFIX is required")
	case prefix == "":
		problems = append(problems, fmt.Sprintf("PREFIX must contain more than slashes, got %q", rawPrefix))
	}

	ints := make(map[string]int, len(requiredInts))
	for _, key := range requiredInts {
		raw := strings.TrimSpace(v.GetString(key))
		if raw == "" {
			problems = append(problems, fmt.Sprintf("%s is required", envBindings[key]))
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s must be an integer, got %q", envBindings[key], raw))
			continue
		}
		if n <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be greater than zero, got %d", envBindings[key], n))
			continue
		}
		ints[key] = n
	}

	cfg := &Config{
		JiraURL:                strings.TrimSpace(v.GetString("jira_url")),
		JiraUser:               strings.TrimSpace(v.GetString("jira_user")),
		Domain:                 strings.TrimSpace(v.GetString("domain")),
		JiraTokenName:          strings.TrimSpace(v.GetString("jira_token")),
		ProjectKey:             strings.TrimSpace(v.GetString("project_key")),
		IssueType:              v.GetString("issue_type"),
		FirstNotificationDays:  ints["first_days"],
		SecondNotificationDays: ints["second_days"],
		DeletionAfterDays:      ints["deletion_days"],
		Period:                 ints["period"],
		Prefix:                 prefix,
		TTLTagKey:              v.GetString("ttl_tag_key"),
		Region:                 v.GetString("region"),
		MetricsNamespace:       v.GetString("metrics_namespace"),
		ReportBucket:           v.GetString("report_bucket"),
		EstimateCost:           v.GetBool("estimate_cost"),
		LogLevel:               v.GetString("log_level"),
	}

	if len(ints) == len(requiredInts) {
		problems = append(problems, cfg.offsetProblems()...)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return cfg, nil
}

// offsetProblems reports offsets that would make two state transitions fire on the same day
func (c *Config) offsetProblems() []string {
	var problems []string
	if c.FirstNotificationDays == c.SecondNotificationDays {
		problems = append(problems, "FIRST_NOTIFICATION_DAYS and SECOND_NOTIFICATION_DAYS must differ")
	}
	if c.FirstNotificationDays == c.DeletionAfterDays {
		problems = append(problems, "FIRST_NOTIFICATION_DAYS and DELETION_AFTER_DAYS must differ")
	}
	if c.SecondNotificationDays == c.DeletionAfterDays {
		problems = append(problems, "SECOND_NOTIFICATION_DAYS and DELETION_AFTER_DAYS must differ")
	}
	return problems
}

// InitialDateParam is the SSM parameter holding the first-detection date
func (c *Config) InitialDateParam() string {
	return fmt.Sprintf("/%s/initial_date", c.Prefix)
}

// TicketIDParam is the SSM parameter holding the open ticket key
func (c *Config) TicketIDParam() string {
	return fmt.Sprintf("/%s/ticket_id", c.Prefix)
}

// JiraLogin is the basic-auth username used against the tracker
func (c *Config) JiraLogin() string {
	return fmt.Sprintf("%s@%s", c.JiraUser, c.Domain)
}
