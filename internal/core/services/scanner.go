package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cdsupport/poscan/internal/core/domain"
	"github.com/cdsupport/poscan/internal/core/ports/driven"
	"github.com/cdsupport/poscan/internal/core/ports/driving"
	"github.com/cdsupport/poscan/internal/logger"
)

// DefaultWorkers is the worker pool size used when no override is
// configured.
const DefaultWorkers = 4

var emailSplit = regexp.MustCompile(`[;/]`)

// Scanner drives a full pipeline run: list intake, extract and classify
// in parallel, persist the run shard, merge outstanding shards into the
// ledger, file flagged documents, then retire the batch from intake.
type Scanner struct {
	intake     driven.Intake
	ledger     driven.LedgerStore
	shards     driven.ShardStore
	filer      driven.Filer
	sink       driven.ErrorSink
	extractor  *Extractor
	classifier *Classifier
	workers    int
}

var _ driving.Scanner = (*Scanner)(nil)

// NewScanner creates a scanner over the given ports. A workers value
// below one falls back to DefaultWorkers.
func NewScanner(
	intake driven.Intake,
	ledger driven.LedgerStore,
	shards driven.ShardStore,
	filer driven.Filer,
	sink driven.ErrorSink,
	extractor *Extractor,
	classifier *Classifier,
	workers int,
) *Scanner {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Scanner{
		intake:     intake,
		ledger:     ledger,
		shards:     shards,
		filer:      filer,
		sink:       sink,
		extractor:  extractor,
		classifier: classifier,
		workers:    workers,
	}
}

// result carries one successfully processed document between pipeline
// stages.
type result struct {
	desc     domain.Descriptor
	fields   domain.Fields
	buyer    string
	folder   string
	decision domain.Decision
}

// Run executes one pipeline pass. Individual document failures are
// recorded and skipped; Run itself fails only on infrastructure errors
// such as an unreadable intake or a ledger that cannot be written.
func (s *Scanner) Run(ctx context.Context) (*driving.ScanReport, error) {
	report := &driving.ScanReport{RunID: uuid.NewString()}

	descriptors, err := s.intake.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing intake: %w", err)
	}
	logger.Info("run %s: %d documents in intake", report.RunID, len(descriptors))

	knownKeys, err := s.knownKeys(ctx)
	if err != nil {
		return nil, err
	}

	results, failed := s.processBatch(ctx, descriptors)
	report.Processed = len(results)
	report.Failed = failed
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entries := make([]domain.LedgerEntry, 0, len(results))
	for i := range results {
		entry := toEntry(&results[i], now)
		if _, known := knownKeys[entry.PONumber]; known {
			// The entry is relabelled, but the computed decision on the
			// result still drives filing below.
			entry.Decision = domain.DecisionRevised
			report.Revised++
		} else if entry.Decision == domain.DecisionRequired {
			report.Required++
		}
		entries = append(entries, entry)
	}

	if len(entries) > 0 {
		shard := domain.Shard{ID: report.RunID, CreatedAt: now, Entries: entries}
		if err := s.shards.Save(ctx, shard); err != nil {
			return nil, fmt.Errorf("saving run shard: %w", err)
		}
	}

	merged, err := s.mergeOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	report.Merged = merged

	report.Filed = s.fileFlagged(results)
	s.consumeProcessed(ctx, results)
	return report, nil
}

// knownKeys collects every PO number already recorded, in the ledger or
// in a shard left over from an earlier run. A repeat of one of these is
// a revision.
func (s *Scanner) knownKeys(ctx context.Context) (map[string]struct{}, error) {
	keys, err := s.ledger.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ledger keys: %w", err)
	}
	shards, err := s.shards.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading outstanding shards: %w", err)
	}
	for _, shard := range shards {
		for _, entry := range shard.Entries {
			keys[entry.PONumber] = struct{}{}
		}
	}
	return keys, nil
}

// processBatch fans the descriptors out over the worker pool. A failed
// document is recorded in the error sink and does not abort the batch.
func (s *Scanner) processBatch(ctx context.Context, descriptors []domain.Descriptor) ([]result, int) {
	resultsCh := make(chan result, len(descriptors))
	failures := make(chan struct{}, len(descriptors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, desc := range descriptors {
		desc := desc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			res, err := s.processOne(gctx, desc)
			if err != nil {
				logger.Warn("document %s: %v", desc.ExternalID, err)
				s.sink.Record(desc.ExternalID, err)
				failures <- struct{}{}
				return nil
			}
			resultsCh <- res
			return nil
		})
	}
	_ = g.Wait() // workers swallow their own errors
	close(resultsCh)
	close(failures)

	results := make([]result, 0, len(resultsCh))
	for res := range resultsCh {
		results = append(results, res)
	}
	return results, len(failures)
}

// processOne opens, extracts, and classifies a single document.
func (s *Scanner) processOne(ctx context.Context, desc domain.Descriptor) (result, error) {
	doc, err := s.intake.Open(ctx, desc)
	if err != nil {
		return result{}, err
	}

	fields := s.extractor.Extract(doc)
	res := result{
		desc:   desc,
		fields: fields,
		buyer:  domain.Unknown,
		folder: domain.Unknown,
	}
	if entity := s.classifier.ClassifyBuyer(doc.FirstLine()); entity != nil {
		res.buyer = entity.Name
		res.folder = entity.Folder
	}
	res.decision = s.classifier.Decide(fields)
	return res, nil
}

// mergeOutstanding folds every persisted shard into the ledger in one
// transaction, then deletes the shards. A shard that survives deletion
// is merged again next run, which the last-write-wins merge absorbs.
func (s *Scanner) mergeOutstanding(ctx context.Context) (int, error) {
	shards, err := s.shards.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading outstanding shards: %w", err)
	}
	if len(shards) == 0 {
		return 0, nil
	}

	entries := MergeShards(shards)
	if err := s.ledger.Merge(ctx, entries); err != nil {
		return 0, fmt.Errorf("merging into ledger: %w", err)
	}
	for _, shard := range shards {
		if err := s.shards.Delete(ctx, shard.ID); err != nil {
			logger.Warn("deleting merged shard %s: %v", shard.ID, err)
		}
	}
	return len(entries), nil
}

// fileFlagged moves documents whose computed decision requires support
// into their entity folder. A resubmission is filed on its computed
// decision even though its ledger entry is recorded as revised; the
// notification boundary still needs to locate it. Filing failures are
// recorded and do not fail the run.
func (s *Scanner) fileFlagged(results []result) int {
	filed := 0
	for _, res := range results {
		if res.decision != domain.DecisionRequired {
			continue
		}
		dest, err := s.filer.File(res.desc.Location, res.folder)
		if err != nil {
			logger.Warn("filing %s: %v", res.desc.ExternalID, err)
			s.sink.Record(res.desc.ExternalID, fmt.Errorf("filing: %w", err))
			continue
		}
		logger.Debug("filed %s to %s", res.desc.ExternalID, dest)
		filed++
	}
	return filed
}

// consumeProcessed retires every processed document from intake so the
// next run only sees genuinely new or resubmitted documents. A document
// left behind by a consume failure would be re-scanned and wrongly
// relabelled as revised, so failures are surfaced through the sink.
func (s *Scanner) consumeProcessed(ctx context.Context, results []result) {
	for _, res := range results {
		if err := s.intake.Consume(ctx, res.desc); err != nil {
			logger.Warn("consuming %s: %v", res.desc.ExternalID, err)
			s.sink.Record(res.desc.ExternalID, fmt.Errorf("consuming: %w", err))
		}
	}
}

// toEntry builds the ledger entry for one processed document.
func toEntry(res *result, now time.Time) domain.LedgerEntry {
	po := res.fields.PONumber
	if po == "" {
		po = domain.Unknown
	}
	return domain.LedgerEntry{
		PONumber:       po,
		Buyer:          res.buyer,
		Seller:         res.fields.Seller,
		VAT:            res.fields.VAT,
		Currency:       res.fields.Currency,
		UOM:            res.fields.UOM,
		MaxUnitPrice:   res.fields.MaxUnitPrice,
		Decision:       res.decision,
		SupplierEmails: normaliseEmails(strings.Join(res.desc.Recipients, "; ")),
		EndUserEmail:   normaliseEmails(res.fields.EndUserEmail),
		ReceivedAt:     res.desc.ReceivedAt,
		RecordedAt:     now,
	}
}

// normaliseEmails splits a raw address list on semicolons and slashes,
// keeps anything that looks like an address, and rejoins with a uniform
// separator.
func normaliseEmails(raw string) string {
	var addrs []string
	for _, part := range emailSplit.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" || !strings.Contains(part, "@") {
			continue
		}
		addrs = append(addrs, part)
	}
	return strings.Join(addrs, "; ")
}
