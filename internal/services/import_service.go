package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ledgerlens/internal/chart"
	"ledgerlens/internal/classifier"
	"ledgerlens/internal/config"
	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/logger"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
)

// LedgerRow is one raw bank-ledger row as submitted. Amounts are decimal
// strings; at most one of Debit or Credit should be non-zero.
type LedgerRow struct {
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"required"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// YearAmount is one year-labeled value on a report sheet row.
type YearAmount struct {
	Year   int    `json:"year" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// SheetRowInput is one row of a structured report sheet.
type SheetRowInput struct {
	Label   string       `json:"label"`
	Depth   int          `json:"depth" binding:"min=0"`
	Amounts []YearAmount `json:"amounts"`
}

// ReportSheet is one sheet of an imported report. Section names the base
// account section for the sheet; rows may still switch sections via header
// labels.
type ReportSheet struct {
	Name    string          `json:"name"`
	Section string          `json:"section"`
	Rows    []SheetRowInput `json:"rows" binding:"required"`
}

// dateLayouts are the accepted ledger date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2 Jan 2006",
	"2 January 2006",
}

type importService struct {
	db         *gorm.DB
	categories CategoryService
	audit      AuditService
}

// NewImportService creates an import service over the given database.
func NewImportService(db *gorm.DB, categories CategoryService, audit AuditService) ImportService {
	return &importService{db: db, categories: categories, audit: audit}
}

// ImportLedger ingests raw bank-ledger rows: parse, dedup, classify, and
// bulk insert. Rows that fail to parse are rejected; exact duplicates of
// already-imported rows are skipped; rows the classifier rejects are still
// inserted, uncategorized. One ImportRun records the outcome.
func (s *importService) ImportLedger(userID uint, source string, rows []LedgerRow) (*models.ImportRun, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyImport
	}

	if err := s.categories.EnsureDefaults(userID); err != nil {
		return nil, err
	}
	tree, err := s.categories.LoadTree(userID)
	if err != nil {
		return nil, err
	}
	idx := classifier.BuildIndex(tree)
	cls := classifier.Default()

	seen, err := s.existingRowKeys(userID)
	if err != nil {
		return nil, err
	}

	var (
		batch    []models.Transaction
		rejected int
		skipped  int
	)
	for _, row := range rows {
		tx, err := parseLedgerRow(userID, row)
		if err != nil {
			logger.Get().Debugw("ledger row rejected", "date", row.Date, "reason", err)
			rejected++
			continue
		}
		key := rowKey(tx.Date, tx.Description, tx.Debit)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		batch = append(batch, tx)
	}

	// Classification is pure per row, so chunks run in parallel over
	// disjoint slices of the batch.
	chunkSize := config.Get().ImportChunkSize
	var g errgroup.Group
	for start := 0; start < len(batch); start += chunkSize {
		end := min(start+chunkSize, len(batch))
		chunk := batch[start:end]
		g.Go(func() error {
			for i := range chunk {
				outcome := cls.Classify(chunk[i].Description, idx)
				if outcome.Rejected {
					logger.Get().Debugw("classification miss", "reason", outcome.Reason)
					continue
				}
				id := outcome.CategoryID
				chunk[i].CategoryID = &id
			}
			return nil
		})
	}
	_ = g.Wait()

	imported, insertFailures := s.insertChunks(batch, chunkSize)
	rejected += insertFailures

	run := &models.ImportRun{
		UserID:       userID,
		Source:       source,
		Status:       runStatus(rejected),
		RowsImported: imported,
		RowsRejected: rejected,
		RowsSkipped:  skipped,
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(userID, "ledger_import", "import_run", 0, "", run.ID)
	logger.Get().Infow("ledger import finished",
		"user_id", userID,
		"run_id", run.ID,
		"imported", imported,
		"rejected", rejected,
		"skipped", skipped,
	)
	return run, nil
}

// ImportReport ingests structured report sheets: each sheet is resolved
// into categories and the annual facts are upserted as category summaries.
func (s *importService) ImportReport(userID uint, source string, sheets []ReportSheet) (*models.ImportRun, error) {
	if len(sheets) == 0 {
		return nil, apperrors.ErrEmptyImport
	}

	if err := s.categories.EnsureDefaults(userID); err != nil {
		return nil, err
	}
	tree, err := s.categories.LoadTree(userID)
	if err != nil {
		return nil, err
	}
	resolver := chart.NewResolver(tree, s.categories.Creator(userID))

	var facts []chart.AnnualFact
	for _, sheet := range sheets {
		base := models.CategoryType(strings.ToLower(sheet.Section))
		if !models.ValidCategoryType(base) {
			base = models.CategoryTypeExpense
		}
		facts = append(facts, resolver.ResolveSheet(sheetRows(sheet.Rows), base)...)
	}

	for _, fact := range facts {
		summary := models.CategorySummary{
			UserID:     userID,
			CategoryID: fact.CategoryID,
			Year:       fact.Year,
			Amount:     fact.Amount,
			Section:    fact.Section,
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "section", "updated_at"}),
		}).Create(&summary).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	run := &models.ImportRun{
		UserID:       userID,
		Source:       source,
		Status:       models.ImportRunStatusCompleted,
		RowsImported: len(facts),
	}
	if err := s.db.Create(run).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.audit.Log(userID, "report_import", "import_run", 0, "", run.ID)
	return run, nil
}

func (s *importService) GetRun(userID uint, id string) (*models.ImportRun, error) {
	var run models.ImportRun
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &run, nil
}

func (s *importService) ListRuns(userID uint, page pagination.PageRequest) (pagination.PageResponse[models.ImportRun], error) {
	page.Defaults()

	query := s.db.Model(&models.ImportRun{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.ImportRun]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var runs []models.ImportRun
	if err := query.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&runs).Error; err != nil {
		return pagination.PageResponse[models.ImportRun]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pagination.NewPageResponse(runs, page.Page, page.PageSize, total), nil
}

// insertChunks writes the batch in bounded chunks. A failed chunk retries
// row by row so one bad row cannot sink its neighbours.
func (s *importService) insertChunks(batch []models.Transaction, chunkSize int) (imported, failed int) {
	for start := 0; start < len(batch); start += chunkSize {
		end := min(start+chunkSize, len(batch))
		chunk := batch[start:end]
		if err := s.db.Create(&chunk).Error; err != nil {
			logger.Get().Warnw("chunk insert failed, retrying rows individually", "error", err)
			for i := range chunk {
				if err := s.db.Create(&chunk[i]).Error; err != nil {
					failed++
					continue
				}
				imported++
			}
			continue
		}
		imported += len(chunk)
	}
	return imported, failed
}

// existingRowKeys loads the dedup keys of every already-imported row.
func (s *importService) existingRowKeys(userID uint) (map[string]bool, error) {
	var existing []models.Transaction
	if err := s.db.Select("date", "description", "debit", "credit").
		Where("user_id = ?", userID).
		Find(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	seen := make(map[string]bool, len(existing))
	for _, tx := range existing {
		seen[rowKey(tx.Date, tx.Description, tx.Debit)] = true
	}
	return seen, nil
}

func parseLedgerRow(userID uint, row LedgerRow) (models.Transaction, error) {
	description := strings.TrimSpace(row.Description)
	if description == "" {
		return models.Transaction{}, errors.New("empty description")
	}
	date, err := parseDate(row.Date)
	if err != nil {
		return models.Transaction{}, err
	}
	debit, err := parseCents(row.Debit)
	if err != nil {
		return models.Transaction{}, err
	}
	credit, err := parseCents(row.Credit)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Debit:       debit,
		Credit:      credit,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseCents converts a decimal amount string to cents. Empty means zero.
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// rowKey is the duplicate-detection key: date, normalized description,
// and debit amount.
func rowKey(date time.Time, description string, debit int64) string {
	var b strings.Builder
	b.WriteString(date.Format("2006-01-02"))
	b.WriteString("|")
	b.WriteString(strings.ToLower(strings.TrimSpace(description)))
	b.WriteString("|")
	b.WriteString(decimal.NewFromInt(debit).String())
	return b.String()
}

func runStatus(rejected int) models.ImportRunStatus {
	if rejected > 0 {
		return models.ImportRunStatusPartial
	}
	return models.ImportRunStatusCompleted
}

func sheetRows(rows []SheetRowInput) []chart.SheetRow {
	out := make([]chart.SheetRow, 0, len(rows))
	for _, r := range rows {
		amounts := make(map[int]int64, len(r.Amounts))
		for _, a := range r.Amounts {
			cents, err := parseCents(a.Amount)
			if err != nil {
				continue
			}
			amounts[a.Year] = cents
		}
		out = append(out, chart.SheetRow{Label: r.Label, Depth: r.Depth, YearAmounts: amounts})
	}
	return out
}
