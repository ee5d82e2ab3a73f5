package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"complianceai/internal/decision"
	"complianceai/internal/models"
)

// CreateTransaction records a pending transaction owned by the actor.
func (e *Engine) CreateTransaction(ctx context.Context, actorID string, meta Meta, amount float64, txType, description string) (*models.Transaction, error) {
	txType = strings.TrimSpace(txType)
	if txType == "" {
		return nil, fmt.Errorf("%w: type required", ErrValidation)
	}
	t := models.Transaction{
		UserID:      actorID,
		Amount:      amount,
		Type:        txType,
		Status:      models.TxStatusPending,
		Description: description,
		CreatedAt:   time.Now(),
	}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Transaction: %s %g", txType, amount), meta, map[string]any{
			"transaction_id": t.ID,
		}))
	})
	if err != nil {
		return nil, err
	}
	e.lg.Infow("transaction recorded", "transaction_id", t.ID, "user_id", actorID)
	return &t, nil
}

// TransactionPage is the paginated listing envelope.
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Pages        int                  `json:"pages"`
	CurrentPage  int                  `json:"current_page"`
}

// ListTransactions returns the actor's own transactions newest first.
func (e *Engine) ListTransactions(ctx context.Context, actorID string, page, perPage int) (TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	q := e.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", actorID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return TransactionPage{}, err
	}
	var txs []models.Transaction
	if err := q.Order("created_at desc").Limit(perPage).Offset((page - 1) * perPage).Find(&txs).Error; err != nil {
		return TransactionPage{}, err
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return TransactionPage{Transactions: txs, Total: total, Pages: pages, CurrentPage: page}, nil
}

// CheckCompliance runs the decision stub against a pending transaction
// and applies the one-shot terminal transition. A reviewed transaction
// cannot be checked again.
func (e *Engine) CheckCompliance(ctx context.Context, actorID string, meta Meta, transactionID string) (decision.Verdict, error) {
	var t models.Transaction
	if err := e.db.WithContext(ctx).First(&t, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decision.Verdict{}, ErrNotFound
		}
		return decision.Verdict{}, err
	}
	if t.Status != models.TxStatusPending {
		return decision.Verdict{}, ErrAlreadyReviewed
	}

	// The external stub is consulted before anything is staged, so its
	// failure leaves the transaction untouched.
	verdict, err := e.decider.CheckTransaction(ctx, transactionID)
	if err != nil {
		return decision.Verdict{}, err
	}
	status := models.TxStatusNonCompliant
	if verdict.Compliant {
		status = models.TxStatusCompliant
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", transactionID, models.TxStatusPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReviewed
		}
		return e.rec.Append(tx, e.entry(actorID, fmt.Sprintf("Compliance check: Transaction %s", transactionID), meta, map[string]any{
			"transaction_id": transactionID,
			"is_compliant":   verdict.Compliant,
		}))
	})
	if err != nil {
		return decision.Verdict{}, err
	}
	e.lg.Infow("compliance check performed", "transaction_id", transactionID, "actor", actorID, "compliant", verdict.Compliant)
	return verdict, nil
}

// TypeSummary aggregates one transaction type.
type TypeSummary struct {
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Summary aggregates the actor's transactions.
type Summary struct {
	TotalTransactions  int64                  `json:"total_transactions"`
	TotalAmount        float64                `json:"total_amount"`
	TransactionsByType map[string]TypeSummary `json:"transactions_by_type"`
}

// SummarizeTransactions groups the actor's transactions by type.
func (e *Engine) SummarizeTransactions(ctx context.Context, actorID string) (Summary, error) {
	var rows []struct {
		TransactionType string
		Count           int64
		TotalAmount     float64
	}
	err := e.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transaction_type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Where("user_id = ?", actorID).
		Group("transaction_type").
		Scan(&rows).Error
	if err != nil {
		return Summary{}, err
	}
	s := Summary{TransactionsByType: make(map[string]TypeSummary, len(rows))}
	for _, r := range rows {
		s.TotalTransactions += r.Count
		s.TotalAmount += r.TotalAmount
		s.TransactionsByType[r.TransactionType] = TypeSummary{Count: r.Count, TotalAmount: r.TotalAmount}
	}
	return s, nil
}
