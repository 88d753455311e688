package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ledgerlens/internal/models"
)

var fixtureCounter int64

func nextFixtureID() int64 {
	return atomic.AddInt64(&fixtureCounter, 1)
}

// CreateTestUser inserts a user with a unique email. The plaintext
// password is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextFixtureID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := &models.User{
		Email:       fmt.Sprintf("user%d@acme.test", n),
		Password:    string(hash),
		FirstName:   "Test",
		LastName:    fmt.Sprintf("User%d", n),
		CompanyName: "Acme Trading Pte Ltd",
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory inserts a category for the given user. Pass a nil
// parent for root categories.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, name string, typ models.CategoryType, parentID *uint) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:   userID,
		Name:     name,
		Type:     typ,
		ParentID: parentID,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction inserts a ledger transaction. Amounts are in cents.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, date time.Time, description string, debit, credit int64, categoryID *uint) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		CategoryID:  categoryID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestEmployee inserts an employee with a unique code.
func CreateTestEmployee(t *testing.T, db *gorm.DB, userID uint, name string) *models.Employee {
	t.Helper()

	n := nextFixtureID()
	emp := &models.Employee{
		UserID:       userID,
		Name:         name,
		EmployeeCode: fmt.Sprintf("EMP-%04d", n),
		Position:     "Staff",
		CPFRate:      0.2,
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}
