package services

import (
	"testing"

	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/models"
	"ledgerlens/internal/pagination"
	"ledgerlens/internal/testutil"
)

func TestImportLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	categories := NewCategoryService(db)
	audit := NewAuditService(db)
	svc := NewImportService(db, categories, audit)

	rows := []LedgerRow{
		{Date: "2026-07-05", Description: "SP Services Bill", Debit: "150.00"},
		{Date: "2026-07-10", Description: "John Tan July", Debit: "4000.00"},
		{Date: "2026-07-12", Description: "IRAS late payment penalty", Debit: "300.00"},
		{Date: "2026-07-15", Description: "Invoice 4501 settlement X9", Credit: "8000.00"},
		{Date: "not-a-date", Description: "broken row", Debit: "10.00"},
	}

	t.Run("imports_and_classifies", func(t *testing.T) {
		run, err := svc.ImportLedger(user.ID, "bank_csv", rows)
		testutil.AssertNoError(t, err)

		if run.RowsImported != 4 {
			t.Fatalf("expected 4 imported rows, got %d", run.RowsImported)
		}
		if run.RowsRejected != 1 {
			t.Fatalf("expected 1 rejected row, got %d", run.RowsRejected)
		}
		if run.Status != models.ImportRunStatusPartial {
			t.Fatalf("expected partial status, got %s", run.Status)
		}

		var utility models.Transaction
		testutil.AssertNoError(t, db.Where("user_id = ? AND description = ?", user.ID, "SP Services Bill").First(&utility).Error)
		if utility.CategoryID == nil {
			t.Fatal("expected utility row to be classified")
		}
		if utility.Debit != 15000 {
			t.Fatalf("expected 15000 cents, got %d", utility.Debit)
		}
	})

	t.Run("skips_exact_duplicates", func(t *testing.T) {
		run, err := svc.ImportLedger(user.ID, "bank_csv", rows)
		testutil.AssertNoError(t, err)

		if run.RowsImported != 0 {
			t.Fatalf("expected 0 imported rows on re-import, got %d", run.RowsImported)
		}
		if run.RowsSkipped != 4 {
			t.Fatalf("expected 4 skipped duplicates, got %d", run.RowsSkipped)
		}
	})

	t.Run("keeps_unmatched_rows_uncategorized", func(t *testing.T) {
		var tx models.Transaction
		testutil.AssertNoError(t, db.Where("user_id = ? AND description = ?", user.ID, "Invoice 4501 settlement X9").First(&tx).Error)
		if tx.CategoryID != nil {
			t.Fatal("expected unmatched row to stay uncategorized")
		}
	})

	t.Run("rejects_empty_import", func(t *testing.T) {
		_, err := svc.ImportLedger(user.ID, "bank_csv", nil)
		testutil.AssertAppError(t, err, apperrors.ErrEmptyImport)
	})

	t.Run("records_runs", func(t *testing.T) {
		page, err := svc.ListRuns(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Fatalf("expected 2 runs, got %d", page.TotalItems)
		}
	})
}

func TestImportReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	categories := NewCategoryService(db)
	audit := NewAuditService(db)
	svc := NewImportService(db, categories, audit)

	sheets := []ReportSheet{
		{
			Name:    "P&L FY2024",
			Section: "income",
			Rows: []SheetRowInput{
				{Label: "Revenue", Depth: 0},
				{Label: "Project Sales", Depth: 1, Amounts: []YearAmount{{Year: 2024, Amount: "120000.00"}}},
				{Label: "Total Revenue", Depth: 0, Amounts: []YearAmount{{Year: 2024, Amount: "120000.00"}}},
				{Label: "Expenses", Depth: 0},
				{Label: "Marketing", Depth: 1, Amounts: []YearAmount{{Year: 2024, Amount: "8000.00"}}},
			},
		},
	}

	t.Run("resolves_categories_and_summaries", func(t *testing.T) {
		run, err := svc.ImportReport(user.ID, "xlsx", sheets)
		testutil.AssertNoError(t, err)
		if run.Status != models.ImportRunStatusCompleted {
			t.Fatalf("expected completed run, got %s", run.Status)
		}

		var sales models.Category
		testutil.AssertNoError(t, db.Where("user_id = ? AND name = ?", user.ID, "Project Sales").First(&sales).Error)
		if sales.Type != models.CategoryTypeIncome {
			t.Fatalf("expected income category, got %s", sales.Type)
		}
		if sales.ParentID == nil {
			t.Fatal("expected Project Sales to be nested under a parent")
		}

		var summary models.CategorySummary
		testutil.AssertNoError(t, db.Where("category_id = ? AND year = ?", sales.ID, 2024).First(&summary).Error)
		if summary.Amount != 12000000 {
			t.Fatalf("expected 12000000 cents, got %d", summary.Amount)
		}
	})

	t.Run("upserts_on_reimport", func(t *testing.T) {
		sheets[0].Rows[1].Amounts[0].Amount = "150000.00"
		_, err := svc.ImportReport(user.ID, "xlsx", sheets)
		testutil.AssertNoError(t, err)

		var sales models.Category
		testutil.AssertNoError(t, db.Where("user_id = ? AND name = ?", user.ID, "Project Sales").First(&sales).Error)

		var summaries []models.CategorySummary
		testutil.AssertNoError(t, db.Where("category_id = ? AND year = ?", sales.ID, 2024).Find(&summaries).Error)
		if len(summaries) != 1 {
			t.Fatalf("expected a single upserted summary, got %d", len(summaries))
		}
		if summaries[0].Amount != 15000000 {
			t.Fatalf("expected updated amount 15000000, got %d", summaries[0].Amount)
		}
	})

	t.Run("skips_subtotal_rows", func(t *testing.T) {
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Category{}).
			Where("user_id = ? AND name = ?", user.ID, "Total Revenue").
			Count(&count).Error)
		if count != 0 {
			t.Fatal("expected subtotal row to be skipped")
		}
	})
}
