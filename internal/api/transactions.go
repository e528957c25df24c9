package api

import (
	"errors"
	"net/http"
	"time"

	"finance-tracker/internal/core"
	"finance-tracker/internal/domain/models"
	"finance-tracker/internal/storage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CreateTransactionRequest struct {
	Amount      models.Money           `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        *time.Time             `json:"date"`
}

// UpdateTransactionRequest carries only the fields present in the
// request body; nil means "leave unchanged". There is no owner field:
// ownership is fixed at creation.
type UpdateTransactionRequest struct {
	Amount      *models.Money           `json:"amount"`
	Type        *models.TransactionType `json:"type"`
	Category    *string                 `json:"category"`
	Description *string                 `json:"description"`
	Date        *time.Time              `json:"date"`
}

type TransactionResponse struct {
	Message     string             `json:"message"`
	Transaction models.Transaction `json:"transaction"`
}

func (s *APIServer) createTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		var req CreateTransactionRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Amount == 0 || req.Type == "" || req.Category == "" {
			respondError(w, http.StatusBadRequest, "Amount, type, and category are required")
			return
		}
		if !req.Type.Valid() {
			respondError(w, http.StatusBadRequest, "Type must be 'income' or 'expense'")
			return
		}
		if req.Amount <= 0 {
			respondError(w, http.StatusBadRequest, "Amount must be greater than 0")
			return
		}

		now := time.Now().UTC()
		date := now
		if req.Date != nil {
			date = *req.Date
		}

		transaction := &models.Transaction{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Amount:      req.Amount,
			Type:        req.Type,
			Category:    req.Category,
			Description: req.Description,
			Date:        date,
			CreatedAt:   now,
		}

		if err := s.storage.SaveTransaction(r.Context(), transaction); err != nil {
			s.logger.Error("Failed to save transaction", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusCreated, TransactionResponse{
			Message:     "Transaction added successfully",
			Transaction: *transaction,
		})
	}
}

func (s *APIServer) listTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		transactions, err := s.storage.ListTransactions(r.Context(), user.ID)
		if err != nil {
			s.logger.Error("Failed to list transactions", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		respondJSON(w, http.StatusOK, transactions)
	}
}

func (s *APIServer) getTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		transaction, err := s.storage.GetTransaction(r.Context(), mux.Vars(r)["id"], user.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			s.logger.Error("Failed to get transaction", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, transaction)
	}
}

func (s *APIServer) updateTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		var req UpdateTransactionRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		// Supplied fields are validated before anything is read or
		// written, so a bad partial update leaves the record untouched.
		if req.Type != nil && !req.Type.Valid() {
			respondError(w, http.StatusBadRequest, "Type must be 'income' or 'expense'")
			return
		}
		if req.Amount != nil && *req.Amount <= 0 {
			respondError(w, http.StatusBadRequest, "Amount must be greater than 0")
			return
		}

		transaction, err := s.storage.GetTransaction(r.Context(), mux.Vars(r)["id"], user.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			s.logger.Error("Failed to get transaction", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		if req.Amount != nil {
			transaction.Amount = *req.Amount
		}
		if req.Type != nil {
			transaction.Type = *req.Type
		}
		if req.Category != nil {
			transaction.Category = *req.Category
		}
		if req.Description != nil {
			transaction.Description = *req.Description
		}
		if req.Date != nil {
			transaction.Date = *req.Date
		}

		if err := s.storage.UpdateTransaction(r.Context(), transaction); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			s.logger.Error("Failed to update transaction", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, TransactionResponse{
			Message:     "Transaction updated successfully",
			Transaction: *transaction,
		})
	}
}

func (s *APIServer) deleteTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		if err := s.storage.DeleteTransaction(r.Context(), mux.Vars(r)["id"], user.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			s.logger.Error("Failed to delete transaction", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
	}
}

func (s *APIServer) summaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		transactions, err := s.storage.ListTransactions(r.Context(), user.ID)
		if err != nil {
			s.logger.Error("Failed to list transactions", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, core.Summarize(transactions))
	}
}
