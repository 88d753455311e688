package services

import (
	"testing"

	"ledgerlens/internal/classifier"
	apperrors "ledgerlens/internal/errors"
	"ledgerlens/internal/models"
	"ledgerlens/internal/testutil"
)

func TestEnsureDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewCategoryService(db)

	t.Run("seeds_starter_chart", func(t *testing.T) {
		testutil.AssertNoError(t, svc.EnsureDefaults(user.ID))

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&count).Error)
		if count == 0 {
			t.Fatal("expected seeded categories")
		}
	})

	t.Run("is_idempotent", func(t *testing.T) {
		var before int64
		testutil.AssertNoError(t, db.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&before).Error)

		testutil.AssertNoError(t, svc.EnsureDefaults(user.ID))

		var after int64
		testutil.AssertNoError(t, db.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&after).Error)
		if before != after {
			t.Fatalf("expected %d categories after re-seed, got %d", before, after)
		}
	})

	t.Run("covers_every_cascade_target", func(t *testing.T) {
		tree, err := svc.LoadTree(user.ID)
		testutil.AssertNoError(t, err)

		idx := classifier.BuildIndex(tree)
		targets := []classifier.Target{
			classifier.TargetUtilities,
			classifier.TargetFinesPenalties,
			classifier.TargetLoanInterest,
			classifier.TargetStaffMeals,
			classifier.TargetPayrollLiability,
			classifier.TargetSalaries,
		}
		for _, target := range targets {
			if _, ok := idx.Target(target); !ok {
				t.Errorf("seeded chart does not resolve target %s", target)
			}
		}
	})
}

func TestCategoryCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewCategoryService(db)

	t.Run("creates_root_category", func(t *testing.T) {
		category, err := svc.Create(user.ID, CreateCategoryRequest{Name: "Consulting Income", Type: "income"})
		testutil.AssertNoError(t, err)
		if category.ID == 0 {
			t.Fatal("expected assigned ID")
		}
	})

	t.Run("rejects_unknown_type", func(t *testing.T) {
		_, err := svc.Create(user.ID, CreateCategoryRequest{Name: "Misc", Type: "equity"})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidCategoryType)
	})

	t.Run("rejects_cross_section_parent", func(t *testing.T) {
		parent, err := svc.Create(user.ID, CreateCategoryRequest{Name: "Rent", Type: "expense"})
		testutil.AssertNoError(t, err)

		_, err = svc.Create(user.ID, CreateCategoryRequest{Name: "Rental Income", Type: "income", ParentID: &parent.ID})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}

func TestCategoryDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewCategoryService(db)

	parent := testutil.CreateTestCategory(t, db, user.ID, "Operating Expenses", models.CategoryTypeExpense, nil)
	child := testutil.CreateTestCategory(t, db, user.ID, "Utilities", models.CategoryTypeExpense, &parent.ID)

	t.Run("refuses_parent_with_children", func(t *testing.T) {
		err := svc.Delete(user.ID, parent.ID)
		testutil.AssertAppError(t, err, apperrors.ErrCategoryHasChildren)
	})

	t.Run("deletes_leaf", func(t *testing.T) {
		testutil.AssertNoError(t, svc.Delete(user.ID, child.ID))
		_, err := svc.GetByID(user.ID, child.ID)
		testutil.AssertAppError(t, err, apperrors.ErrCategoryNotFound)
	})

	t.Run("scopes_by_user", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		err := svc.Delete(other.ID, parent.ID)
		testutil.AssertAppError(t, err, apperrors.ErrCategoryNotFound)
	})
}

func TestCategoryUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewCategoryService(db)

	category := testutil.CreateTestCategory(t, db, user.ID, "Transport", models.CategoryTypeExpense, nil)

	t.Run("rejects_self_parent", func(t *testing.T) {
		_, err := svc.Update(user.ID, category.ID, UpdateCategoryRequest{ParentID: &category.ID})
		testutil.AssertAppError(t, err, apperrors.ErrSelfParentCategory)
	})

	t.Run("renames", func(t *testing.T) {
		name := "Vehicle Expenses"
		updated, err := svc.Update(user.ID, category.ID, UpdateCategoryRequest{Name: &name})
		testutil.AssertNoError(t, err)
		if updated.Name != "Vehicle Expenses" {
			t.Fatalf("expected renamed category, got %q", updated.Name)
		}
	})
}
