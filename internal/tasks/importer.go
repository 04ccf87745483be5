package tasks

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fathomlabs/churnlens/internal/models"
	"github.com/fathomlabs/churnlens/internal/repositories"
	"github.com/fathomlabs/churnlens/internal/shared"
)

// Importer loads the CRM dataset from CSV into the dataset tables and records
// an import batch per load.
type Importer struct {
	customers *repositories.CustomerRepository
	links     *repositories.RepLinkRepository
	imports   *repositories.ImportRepository
	logger    *log.Logger
}

// NewImporter creates an Importer over the given database connection.
func NewImporter(db *sql.DB, logger *log.Logger) *Importer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Importer{
		customers: repositories.NewCustomerRepository(db),
		links:     repositories.NewRepLinkRepository(db),
		imports:   repositories.NewImportRepository(db),
		logger:    logger,
	}
}

// ImportCustomers loads customer records from r. Rows with malformed or
// out-of-range values are skipped with a warning and counted in the batch.
func (im *Importer) ImportCustomers(r io.Reader, sourceFile string) (*models.ImportBatch, error) {
	header, records, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, "id", "name", "loss_reason", "industry", "age_days", "engagement_pct", "adoption_pct", "type", "plan", "churned")
	if err != nil {
		return nil, err
	}

	var customers []models.Customer
	skipped := 0
	for n, record := range records {
		customer, err := parseCustomer(record, cols)
		if err != nil {
			im.logger.Warn("skipping malformed customer row", "line", n+2, "error", err)
			skipped++
			continue
		}
		customers = append(customers, customer)
	}

	if err := im.customers.InsertMany(customers); err != nil {
		return nil, fmt.Errorf("failed to store customers: %w", err)
	}

	return im.record(models.ImportKindCustomers, sourceFile, len(customers), skipped)
}

// ImportReps loads representative ownership links from r.
func (im *Importer) ImportReps(r io.Reader, sourceFile string) (*models.ImportBatch, error) {
	header, records, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, "customer_id", "owner")
	if err != nil {
		return nil, err
	}

	var links []models.RepLink
	skipped := 0
	for n, record := range records {
		link := models.RepLink{
			CustomerID: strings.TrimSpace(record[cols["customer_id"]]),
			Owner:      strings.TrimSpace(record[cols["owner"]]),
		}
		if err := link.Validate(); err != nil {
			im.logger.Warn("skipping malformed rep link row", "line", n+2, "error", err)
			skipped++
			continue
		}
		links = append(links, link)
	}

	if err := im.links.InsertMany(links); err != nil {
		return nil, fmt.Errorf("failed to store rep links: %w", err)
	}

	return im.record(models.ImportKindReps, sourceFile, len(links), skipped)
}

func (im *Importer) record(kind, sourceFile string, rows, skipped int) (*models.ImportBatch, error) {
	batch := models.ImportBatch{
		ID:           shared.GenerateID(),
		Kind:         kind,
		SourceFile:   sourceFile,
		RowCount:     rows,
		SkippedCount: skipped,
		LoadedAt:     time.Now().UTC(),
	}
	if err := im.imports.Insert(batch); err != nil {
		return nil, fmt.Errorf("failed to record import batch: %w", err)
	}

	im.logger.Info("import complete", "kind", kind, "rows", rows, "skipped", skipped, "batch", batch.ID)
	return &batch, nil
}

// readCSV returns the header row and all data records.
func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no header row", shared.ErrMissingHeader)
	}

	return rows[0], rows[1:], nil
}

// columnIndex maps required header names to their positions, case-insensitively.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrMissingHeader, name)
		}
	}

	return index, nil
}

func parseCustomer(record []string, cols map[string]int) (models.Customer, error) {
	field := func(name string) string { return strings.TrimSpace(record[cols[name]]) }

	age, err := strconv.Atoi(field("age_days"))
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: age_days %q", shared.ErrMalformedValue, field("age_days"))
	}

	engagement, err := strconv.ParseFloat(field("engagement_pct"), 64)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: engagement_pct %q", shared.ErrMalformedValue, field("engagement_pct"))
	}

	adoption, err := strconv.ParseFloat(field("adoption_pct"), 64)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: adoption_pct %q", shared.ErrMalformedValue, field("adoption_pct"))
	}

	churned, err := models.ParseChurned(field("churned"))
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %v", shared.ErrMalformedValue, err)
	}

	lossReason := field("loss_reason")
	if lossReason == "" {
		lossReason = models.LossReasonNA
	}

	customer := models.Customer{
		ID:            field("id"),
		Name:          field("name"),
		LossReason:    lossReason,
		Industry:      field("industry"),
		AgeDays:       age,
		EngagementPct: engagement,
		AdoptionPct:   adoption,
		Type:          field("type"),
		Plan:          field("plan"),
		Churned:       churned,
	}

	if err := customer.Validate(); err != nil {
		return models.Customer{}, err
	}

	return customer, nil
}
