package lifecycle

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"github.com/younsl/ebsreaper/internal/config"
	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// DefaultPriorityID is the tracker priority of cleanup tickets
const DefaultPriorityID = "3"

// RunMetrics summarizes a run for the metrics publisher
type RunMetrics struct {
	TrackedVolumes int
	ZeroTTLVolumes int
	DeletedVolumes int
	TrackedGiB     int
}

// Result describes what one run did
type Result struct {
	Account  string                `json:"account"`
	Date     string                `json:"date"`
	State    string                `json:"state"`
	Action   string                `json:"action"`
	TicketID string                `json:"ticketId,omitempty"`
	Volumes  []models.VolumeRecord `json:"volumes"`
	Deleted  []string              `json:"deleted,omitempty"`
}

// Tracker runs the volume lifecycle once per invocation
type Tracker struct {
	cfg      *config.Config
	scanner  *Scanner
	executor *Executor
	store    *StateStore
	issues   IssueTracker

	clock     clock.Clock
	estimator CostEstimator
	metrics   MetricsPublisher
	archiver  ReportArchiver
	log       *logrus.Entry
}

// Option configures optional Tracker collaborators
type Option func(*Tracker)

// WithClock overrides the wall clock used to determine today
func WithClock(c clock.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithCostEstimator adds monthly cost estimates to records and ticket descriptions
func WithCostEstimator(e CostEstimator) Option {
	return func(t *Tracker) { t.estimator = e }
}

// WithMetrics publishes run metrics after each run
func WithMetrics(m MetricsPublisher) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithReportArchiver stores deletion reports before they are posted
func WithReportArchiver(a ReportArchiver) Option {
	return func(t *Tracker) { t.archiver = a }
}

// WithLogger sets the base log entry
func WithLogger(log *logrus.Entry) Option {
	return func(t *Tracker) { t.log = log }
}

// NewTracker wires a Tracker from cfg and its collaborators
func NewTracker(cfg *config.Config, volumes VolumeProvider, params ParameterStore, issues IssueTracker, opts ...Option) *Tracker {
	t := &Tracker{
		cfg:    cfg,
		issues: issues,
		clock:  clock.WallClock,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.scanner = NewScanner(volumes, cfg.TTLTagKey, cfg.DeletionAfterDays, cfg.Period, t.log)
	t.executor = NewExecutor(volumes, t.log)
	t.store = NewStateStore(params, cfg.InitialDateParam(), cfg.TicketIDParam())
	return t
}

func (t *Tracker) offsets() Offsets {
	return Offsets{
		FirstNotice:  t.cfg.FirstNotificationDays,
		SecondNotice: t.cfg.SecondNotificationDays,
		Deletion:     t.cfg.DeletionAfterDays,
	}
}

// Run scans the volumes and performs today's action for account
func (t *Tracker) Run(ctx context.Context, account string) (*Result, error) {
	log := t.log.WithField("account", account)
	today := utils.TruncateToDate(t.clock.Now())

	records, err := t.scanner.Scan(ctx)
	if err != nil {
		log.WithError(err).Error("Volume scan failed")
		return nil, err
	}
	t.estimate(records)

	description := Describe(records, account, today, t.cfg.DeletionAfterDays, t.estimator != nil)

	tracking, err := t.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load tracking state")
		return nil, err
	}

	decision, err := Decide(tracking, today, t.offsets(), len(records) > 0)
	if err != nil {
		log.WithError(err).Error("Cannot decide on tracking state")
		return nil, err
	}

	result := &Result{
		Account:  account,
		Date:     utils.FormatDate(today),
		State:    decision.State.String(),
		Action:   decision.Action.String(),
		TicketID: tracking.TicketID,
		Volumes:  records,
	}
	log = log.WithFields(logrus.Fields{"action": decision.Action.String(), "tracked": len(records)})

	switch decision.Action {
	case ActionOpenTicket:
		ticketID, err := t.issues.CreateIssue(ctx, Ticket{
			Project:     t.cfg.ProjectKey,
			Summary:     TicketSummary,
			Description: description,
			IssueType:   t.cfg.IssueType,
			PriorityID:  DefaultPriorityID,
		})
		if err != nil {
			log.WithError(err).Error("Failed to open ticket")
			return nil, fmt.Errorf("error opening ticket: %w", err)
		}
		if err := t.store.Open(ctx, ticketID, today); err != nil {
			log.WithError(err).WithField("ticket_id", ticketID).Error("Ticket opened but tracking state not saved")
			return nil, err
		}
		result.TicketID = ticketID
		log.WithField("ticket_id", ticketID).Info("Opened cleanup ticket")

	case ActionRemind:
		if err := t.issues.AddComment(ctx, tracking.TicketID, ReminderPrefix+description); err != nil {
			log.WithError(err).WithField("ticket_id", tracking.TicketID).Error("Failed to post reminder")
			return nil, fmt.Errorf("error posting reminder to %s: %w", tracking.TicketID, err)
		}
		log.WithField("ticket_id", tracking.TicketID).Info("Posted reminder")

	case ActionDelete:
		deleted, err := t.deleteExpired(ctx, log, records, account, today, tracking.TicketID)
		result.Deleted = deleted
		if err != nil {
			return nil, err
		}

	default:
		log.Debug("Nothing to do today")
	}

	t.publish(ctx, log, account, records, result.Deleted)
	return result, nil
}

func (t *Tracker) deleteExpired(ctx context.Context, log *logrus.Entry, records []models.VolumeRecord, account string, today time.Time, ticketID string) ([]string, error) {
	deleted, report, err := t.executor.Execute(ctx, records, account, today)
	if err != nil {
		return deleted, err
	}

	if t.archiver != nil {
		key := path.Join(t.cfg.Prefix, "reports", ticketID, utils.FormatDate(today)+".txt")
		if err := t.archiver.Archive(ctx, key, report); err != nil {
			log.WithError(err).WithField("key", key).Warn("Failed to archive deletion report")
		}
	}

	if err := t.issues.AddComment(ctx, ticketID, report); err != nil {
		log.WithError(err).WithField("ticket_id", ticketID).Error("Failed to post deletion report")
		return deleted, fmt.Errorf("error posting deletion report to %s: %w", ticketID, err)
	}
	if err := t.store.Clear(ctx); err != nil {
		log.WithError(err).Error("Failed to clear tracking state")
		return deleted, err
	}
	log.WithFields(logrus.Fields{"ticket_id": ticketID, "deleted": len(deleted)}).Info("Closed cleanup cycle")
	return deleted, nil
}

func (t *Tracker) estimate(records []models.VolumeRecord) {
	if t.estimator == nil {
		return
	}
	for i := range records {
		cost, source := t.estimator.MonthlyCost(records[i].VolumeType, records[i].Size, records[i].Region)
		records[i].EstimatedMonthlyCost = cost
		records[i].PricingSource = source
	}
}

func (t *Tracker) publish(ctx context.Context, log *logrus.Entry, account string, records []models.VolumeRecord, deleted []string) {
	if t.metrics == nil {
		return
	}
	m := RunMetrics{TrackedVolumes: len(records), DeletedVolumes: len(deleted)}
	for _, r := range records {
		m.TrackedGiB += r.Size
		if r.Expired() {
			m.ZeroTTLVolumes++
		}
	}
	if err := t.metrics.Publish(ctx, account, m); err != nil {
		log.WithError(err).Warn("Failed to publish run metrics")
	}
}
