package lifecycle

import (
	"context"

	"github.com/younsl/ebsreaper/internal/models"
)

// VolumeProvider lists, tags and deletes block storage volumes
type VolumeProvider interface {
	ListAvailableVolumes(ctx context.Context) ([]models.ListedVolume, error)
	SetTag(ctx context.Context, volumeID, key, value string) error
	DeleteVolume(ctx context.Context, volumeID string) error
}

// ParameterStore is a flat key-value store. Get reports found=false for missing keys.
type ParameterStore interface {
	Get(ctx context.Context, name string) (value string, found bool, err error)
	Put(ctx context.Context, name, value, description string) error
	Delete(ctx context.Context, name string) error
}

// Ticket is the content of an issue opened for a cleanup cycle
type Ticket struct {
	Project     string
	Summary     string
	Description string
	IssueType   string
	PriorityID  string
}

// IssueTracker opens tickets and comments on them
type IssueTracker interface {
	CreateIssue(ctx context.Context, ticket Ticket) (string, error)
	AddComment(ctx context.Context, issueID, body string) error
}

// CostEstimator prices a volume per month, returning the cost and where the price came from
type CostEstimator interface {
	MonthlyCost(volumeType string, sizeGB int, region string) (float64, string)
}

// MetricsPublisher records the outcome of a run
type MetricsPublisher interface {
	Publish(ctx context.Context, account string, metrics RunMetrics) error
}

// ReportArchiver stores deletion reports outside the ticket
type ReportArchiver interface {
	Archive(ctx context.Context, key, body string) error
}
